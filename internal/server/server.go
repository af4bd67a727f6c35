package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"github.com/rgehrsitz/wealthtax/internal/breakeven"
	"github.com/rgehrsitz/wealthtax/internal/calculation"
	"github.com/rgehrsitz/wealthtax/internal/compare"
	"github.com/rgehrsitz/wealthtax/internal/domain"
)

var log = logrus.WithField("module", "server")

// DefaultRequestTimeout bounds a single engine call.
const DefaultRequestTimeout = 10 * time.Second

// Options configures a Server
type Options struct {
	Defaults       domain.ReformParameters
	Workers        int
	RequestTimeout time.Duration
}

// Server exposes the engine over HTTP
type Server struct {
	datasets []*domain.CountryDataset
	memo     *calculation.Memo
	compare  *compare.CompareEngine
	solver   *breakeven.Solver
	opts     Options
}

// New creates a server over the loaded datasets
func New(datasets []*domain.CountryDataset, engine *calculation.Engine, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	return &Server{
		datasets: datasets,
		memo:     calculation.NewMemo(engine),
		compare:  compare.NewCompareEngine(engine),
		solver:   breakeven.NewDefaultSolver(engine),
		opts:     opts,
	}
}

// Handler routes requests to the API endpoints
func (s *Server) Handler() fasthttp.RequestHandler {
	routes := map[string]map[string]fasthttp.RequestHandler{
		"/health":         {fasthttp.MethodGet: s.handleHealth},
		"/api/countries":  {fasthttp.MethodGet: s.handleCountries},
		"/api/simulate":   {fasthttp.MethodPost: s.handleSimulate},
		"/api/compare":    {fasthttp.MethodGet: s.handleCompare},
		"/api/break-even": {fasthttp.MethodPost: s.handleBreakEven},
	}

	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		path := string(ctx.Path())

		methods, ok := routes[path]
		switch {
		case !ok:
			writeError(ctx, fasthttp.StatusNotFound, "Not found: "+path)
		case methods[string(ctx.Method())] == nil:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		default:
			methods[string(ctx.Method())](ctx)
		}

		log.WithFields(logrus.Fields{
			"method":   string(ctx.Method()),
			"path":     path,
			"status":   ctx.Response.StatusCode(),
			"duration": time.Since(start),
		}).Debug("request")
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler: s.Handler(),
		Name:    "wealthtax",
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s with %d countries", addr, len(s.datasets))
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return srv.Shutdown()
	}
}

// requestContext bounds an engine call. RequestCtx itself is not used as a
// context since its cancellation is tied to server shutdown.
func (s *Server) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.opts.RequestTimeout)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to encode response: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

// errorStatus maps engine and solver errors to HTTP statuses
func errorStatus(err error) int {
	var beErr *breakeven.BreakEvenError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fasthttp.StatusServiceUnavailable
	case errors.Is(err, breakeven.ErrTargetUnreachable):
		return fasthttp.StatusUnprocessableEntity
	case errors.As(err, &beErr):
		return fasthttp.StatusBadRequest
	default:
		return fasthttp.StatusInternalServerError
	}
}

func decodeBody(ctx *fasthttp.RequestCtx, v any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return fmt.Errorf("request body is empty")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
