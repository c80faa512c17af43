package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Подставляется при сборке: -ldflags "-X main.version=1.0.0".
var version = "dev" //nolint:gochecknoglobals

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ratingctl",
		Short: "Classify course ratings the way ClassConnect renders them",
		Long: `ratingctl runs the rating classifier locally, without the service.

Every argument is classified as a raw rating value:
  ratingctl classify 4.5 "3.2" abc 0`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newClassifyCmd(), newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ratingctl %s\n", version)
		},
	}
}
