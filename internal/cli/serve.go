package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	apperr "github.com/dynsig/dynsig/pkg/errors"
	"github.com/dynsig/dynsig/pkg/observability"
	"github.com/dynsig/dynsig/pkg/pattern"
	"github.com/dynsig/dynsig/pkg/pipeline"
)

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pattern pipeline as an HTTP API",
		Long: `Serve starts an HTTP server with two endpoints:

  POST /v1/pattern   Run the pipeline; the body is a pipeline options
                     JSON object ({"spec": ...} or {"events": ...})
  GET  /healthz      Liveness probe

The server shares the CLI cache backend, so repeated requests for the
same network are answered from cache.

Example:
  dynsig serve --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.serve(cmd.Context(), addr, runner)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

func (c *CLI) serve(ctx context.Context, addr string, runner *pipeline.Runner) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hookMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/v1/pattern", c.handlePattern(runner))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// patternResponse is the /v1/pattern response body. Artifact bytes are
// base64-encoded by the JSON encoder.
type patternResponse struct {
	RunID       string            `json:"run_id"`
	NetworkHash string            `json:"network_hash"`
	PatternHash string            `json:"pattern_hash"`
	Names       []string          `json:"names"`
	Record      pattern.Record    `json:"record"`
	Artifacts   map[string][]byte `json:"artifacts,omitempty"`
	Stats       statsResponse     `json:"stats"`
	Cache       cacheResponse     `json:"cache"`
}

type statsResponse struct {
	Nodes       int    `json:"nodes"`
	Edges       int    `json:"edges"`
	PatternSize int    `json:"pattern_size"`
	DecodeMS    int64  `json:"decode_ms"`
	PatternMS   int64  `json:"pattern_ms"`
	RenderMS    int64  `json:"render_ms"`
	Source      string `json:"source"`
}

type cacheResponse struct {
	DecodeHit  bool `json:"decode_hit"`
	PatternHit bool `json:"pattern_hit"`
	RenderHit  bool `json:"render_hit"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *CLI) handlePattern(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var opts pipeline.Options
		if err := json.NewDecoder(req.Body).Decode(&opts); err != nil {
			writeError(w, apperr.New(apperr.ErrCodeInvalidInput, "malformed request body: %v", err))
			return
		}
		opts.Logger = c.Logger

		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, patternResponse{
			RunID:       result.RunID.String(),
			NetworkHash: result.NetworkHash,
			PatternHash: result.PatternHash,
			Names:       result.Names,
			Record:      result.Record,
			Artifacts:   result.Artifacts,
			Stats: statsResponse{
				Nodes:       result.Stats.NodeCount,
				Edges:       result.Stats.EdgeCount,
				PatternSize: result.Stats.PatternSize,
				DecodeMS:    result.Stats.DecodeTime.Milliseconds(),
				PatternMS:   result.Stats.PatternTime.Milliseconds(),
				RenderMS:    result.Stats.RenderTime.Milliseconds(),
				Source:      opts.Source(),
			},
			Cache: cacheResponse{
				DecodeHit:  result.CacheInfo.DecodeHit,
				PatternHit: result.CacheInfo.PatternHit,
				RenderHit:  result.CacheInfo.RenderHit,
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps structured error codes to HTTP statuses: input
// problems are the client's fault, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	code := apperr.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperr.ErrCodeEmptyInput, apperr.ErrCodeMalformedSpec, apperr.ErrCodeUnknownNode,
		apperr.ErrCodeInvalidInput, apperr.ErrCodeInvalidInterval, apperr.ErrCodeInvalidFormat,
		apperr.ErrCodeCyclicGraph, apperr.ErrCodeAmbiguousLabel:
		status = http.StatusBadRequest
	case apperr.ErrCodeNotFound, apperr.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case "":
		code = apperr.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: apperr.UserMessage(err),
	}})
}

// hookMiddleware reports request lifecycle events to the registered
// observability hooks.
func hookMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(req.Context(), req.Method, req.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		observability.HTTP().OnResponse(req.Context(), req.Method, req.URL.Path, ww.Status(), time.Since(start))
	})
}
