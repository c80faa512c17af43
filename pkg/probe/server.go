package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"classconnect/pkg/contextx"
	"classconnect/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	httpServerReadHeaderTimeout = 5 * time.Second
	defaultCheckTimeout         = 2 * time.Second
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Check проверяет доступность зависимости (postgres, redis).
type Check func(ctx context.Context) error

type Server struct {
	listenAddress string
	options       Options
	state         []byte
}

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	// Checks выполняются на /ready; /healthz их не вызывает.
	Checks       map[string]Check `json:"-"`
	CheckTimeout time.Duration    `json:"-"`
}

type readyState struct {
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

func NewServer(
	listenAddress string,
	options Options,
) Server {
	stateJSON, _ := json.Marshal(options) //nolint:errcheck,errchkjson

	if options.CheckTimeout <= 0 {
		options.CheckTimeout = defaultCheckTimeout
	}

	return Server{
		listenAddress: listenAddress,
		options:       options,
		state:         stateJSON,
	}
}

func (s Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handlerHealthz)
	mux.HandleFunc("/ready", s.handlerReady)

	httpServer := &http.Server{
		//nolint:exhaustruct
		Addr:              s.listenAddress,
		Handler:           mux,
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		if err := httpServer.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger(ctx).Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	logger(ctx).Info(
		"probe server started",
		slog.String("address", s.listenAddress),
		slog.Any("checks", lo.Keys(s.options.Checks)),
	)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	logger(ctx).Info("probe server stopped")

	return nil
}

func (s Server) handlerHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write(s.state) //nolint:errcheck
}

func (s Server) handlerReady(w http.ResponseWriter, r *http.Request) {
	if len(s.options.Checks) == 0 {
		w.WriteHeader(http.StatusOK)
		w.Write(s.state) //nolint:errcheck

		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.options.CheckTimeout)
	defer cancel()

	names := lo.Keys(s.options.Checks)
	sort.Strings(names)

	state := readyState{
		Name:    s.options.Name,
		Version: s.options.Version,
		Checks:  make(map[string]string, len(names)),
	}
	status := http.StatusOK

	for _, name := range names {
		if err := s.options.Checks[name](ctx); err != nil {
			logger(ctx).Warn("readiness check failed", slog.String("check", name), logx.Error(err))

			state.Checks[name] = err.Error()
			status = http.StatusServiceUnavailable

			continue
		}

		state.Checks[name] = "ok"
	}

	body, _ := json.Marshal(state) //nolint:errcheck,errchkjson

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body) //nolint:errcheck
}
