package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	argmaperrors "github.com/argmaplab/argmap/pkg/errors"
	"github.com/argmaplab/argmap/pkg/payload"
	"github.com/argmaplab/argmap/pkg/pipeline"
	"github.com/argmaplab/argmap/pkg/store"
)

const defaultServeAddr = ":8080"

// maxRequestBody bounds layout request documents at 10 MB.
const maxRequestBody = 10 << 20

// newServeCmd creates the serve command for the HTTP API.
func newServeCmd() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the argmap HTTP API",
		Long: `Run the argmap HTTP API.

Endpoints:
  POST /v1/layout       run the pipeline on a document, returns the result
  GET  /v1/runs/{id}    fetch a stored result by run id
  GET  /healthz         liveness probe

Results are stored in MongoDB when [store] is configured, otherwise in
memory. The cache backend follows the [cache] config section.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080 or [server] addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func runServe(ctx context.Context, addr string, noCache bool) error {
	cfg := configFromContext(ctx)
	logger := loggerFromContext(ctx)

	if addr == "" {
		addr = cfg.Server.Addr
	}
	if addr == "" {
		addr = defaultServeAddr
	}

	runner, err := newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var st store.Store = store.NewMemoryStore()
	if cfg.Store.MongoURI != "" {
		ms, err := store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
		if err != nil {
			return err
		}
		st = ms
	}
	defer st.Close(context.Background())

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServerHandler(runner, st, cfg.Options(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// newServerHandler builds the chi router for the API.
func newServerHandler(runner *pipeline.Runner, st store.Store, baseOpts pipeline.Options, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/layout", func(w http.ResponseWriter, req *http.Request) {
		var doc payload.Document
		body := http.MaxBytesReader(w, req.Body, maxRequestBody)
		if err := json.NewDecoder(body).Decode(&doc); err != nil {
			writeError(w, http.StatusBadRequest, argmaperrors.New(argmaperrors.ErrCodeInvalidFormat, "parse document: %v", err))
			return
		}

		opts := baseOpts
		opts.Logger = logger
		opts.Refresh = req.URL.Query().Get("refresh") == "true"

		res, err := runner.Execute(req.Context(), doc, opts)
		if err != nil {
			status := http.StatusInternalServerError
			if argmaperrors.GetCode(err) == argmaperrors.ErrCodeInvalidConfig {
				status = http.StatusBadRequest
			}
			writeError(w, status, err)
			return
		}

		if err := st.SaveResult(req.Context(), res.Output); err != nil {
			logger.Error("store result", "run_id", res.Output.RunID, "err", err)
		}
		writeJSON(w, http.StatusOK, res.Output)
	})

	r.Get("/v1/runs/{runID}", func(w http.ResponseWriter, req *http.Request) {
		runID := chi.URLParam(req, "runID")
		res, err := st.GetResult(req.Context(), runID)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, argmaperrors.New(argmaperrors.ErrCodeRunNotFound, "run %s not found", runID))
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	})

	return r
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: argmaperrors.UserMessage(err),
		Code:  string(argmaperrors.GetCode(err)),
	})
}
