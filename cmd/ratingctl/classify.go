package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"classconnect/internal/domain/service/rating"
	"classconnect/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	outputTerminal = "terminal"
	outputJSON     = "json"
	outputHTML     = "html"
)

//nolint:gochecknoglobals
var terminalCategoryStyles = map[value.Category]lipgloss.Style{
	value.CategoryNeutral: lipgloss.NewStyle().Background(lipgloss.Color("250")).Foreground(lipgloss.Color("235")),
	value.CategoryLow:     lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("231")),
	value.CategoryMedium:  lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("235")),
	value.CategoryHigh:    lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("231")),
}

//nolint:gochecknoglobals
var terminalSizeStyles = map[value.Size]lipgloss.Style{
	value.SizeSmall: lipgloss.NewStyle().Padding(0, 1),
	value.SizeLarge: lipgloss.NewStyle().Padding(0, 2).Bold(true),
}

type classifyOptions struct {
	size   string
	output string
}

func newClassifyCmd() *cobra.Command {
	var opts classifyOptions

	cmd := &cobra.Command{
		Use:   "classify [rating...]",
		Short: "Print display text, category and classes for each rating",
		Long: `Classify treats each argument as a raw rating string. An empty argument
("") or a value that does not start with a number is shown as N/A.

Without arguments a single absent rating is classified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.size, "size", "s", value.SizeLarge.String(), "badge size (small|large)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTerminal, "output format (terminal|json|html)")

	return cmd
}

type classifiedRating struct {
	Input string       `json:"input"`
	Badge rating.Badge `json:"badge"`
}

func runClassify(w io.Writer, opts classifyOptions, args []string) error {
	size := value.ParseSize(opts.size)

	results := make([]classifiedRating, 0, max(len(args), 1))

	if len(args) == 0 {
		results = append(results, classifiedRating{Badge: rating.NewBadge(value.NoRating(), size)})
	}

	for _, arg := range args {
		results = append(results, classifiedRating{
			Input: arg,
			Badge: rating.NewBadge(value.TextRating(arg), size),
		})
	}

	switch opts.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("json.Encode: %w", err)
		}
	case outputHTML:
		for _, r := range results {
			fmt.Fprintln(w, r.Badge.HTML())
		}
	case outputTerminal:
		for _, r := range results {
			fmt.Fprintf(w, "%-10q %s  %-7s %s\n",
				r.Input,
				renderTerminal(r.Badge),
				r.Badge.Category,
				strings.Join(r.Badge.Classes()[:3], " "),
			)
		}
	default:
		return fmt.Errorf("unknown output %q", opts.output)
	}

	return nil
}

func renderTerminal(b rating.Badge) string {
	// Inherit не переносит отступы, поэтому база - стиль размера.
	return terminalSizeStyles[b.Size].
		Inherit(terminalCategoryStyles[b.Category]).
		Render(b.Text)
}
