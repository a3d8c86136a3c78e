package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/Ortofta/kaoto/pkg/buildinfo"
	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/graph"
	"github.com/Ortofta/kaoto/pkg/icons"
	"github.com/Ortofta/kaoto/pkg/links"
	"github.com/Ortofta/kaoto/pkg/mapping"
	"github.com/Ortofta/kaoto/pkg/metrics"
	"github.com/Ortofta/kaoto/pkg/observability"
	"github.com/Ortofta/kaoto/pkg/pipeline"
)

const (
	maxRequestBytes = 4 << 20
	shutdownTimeout = 5 * time.Second
)

var contentTypes = map[string]string{
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve graph building and link extraction over HTTP",
		Long: `Start an HTTP server with the following endpoints:

  POST /graph    build a route graph from an inline definition
  POST /render   render a route graph in one format
  POST /links    compute mapping connections from inline documents
  GET  /healthz  liveness and build information
  GET  /metrics  Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	reg := metrics.NewRegistry()
	observability.SetPipelineHooks(reg)
	observability.SetLinkHooks(reg)
	observability.SetCacheHooks(reg)
	observability.SetHTTPHooks(reg)
	defer observability.Reset()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.newServer(runner, reg).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// server - HTTP handlers
// =============================================================================

type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	icons   icons.Resolver
	view    links.ViewConfig
	metrics *metrics.Registry
}

func (c *CLI) newServer(runner *pipeline.Runner, reg *metrics.Registry) *server {
	return &server{
		runner:  runner,
		logger:  c.Logger,
		icons:   c.Config.IconResolver(),
		view:    c.Config.ViewConfig(),
		metrics: reg,
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Post("/graph", s.handleGraph)
	r.Post("/render", s.handleRender)
	r.Post("/links", s.handleLinks)
	return r
}

// instrument reports every request to the HTTP hooks, labelled with its
// route pattern, and logs it at debug level.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), s.logger)))

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type graphRequest struct {
	Definition string `json:"definition"`
	Entity     string `json:"entity,omitempty"`
	Root       string `json:"root,omitempty"`
}

func (req graphRequest) options(ctx context.Context, s *server) pipeline.Options {
	return pipeline.Options{
		Definition: req.Definition,
		Entity:     req.Entity,
		Root:       req.Root,
		Icons:      s.icons,
		Logger:     loggerFromContext(ctx),
	}
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Definition == "" {
		s.writeError(w, kerrors.New(kerrors.ErrCodeInvalidInput, "definition is required"))
		return
	}

	opts := req.options(r.Context(), s)
	_, def, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	g, hit, err := s.runner.BuildWithCacheInfo(r.Context(), def, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := graph.MarshalGraph(g)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeBytes(w, contentTypes[pipeline.FormatJSON], hit, data)
}

type renderRequest struct {
	graphRequest
	Format    string  `json:"format,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Detailed  bool    `json:"detailed,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Definition == "" {
		s.writeError(w, kerrors.New(kerrors.ErrCodeInvalidInput, "definition is required"))
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}

	opts := req.options(r.Context(), s)
	opts.Formats = []string{req.Format}
	opts.Direction = req.Direction
	opts.Detailed = req.Detailed
	opts.Scale = req.Scale

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeBytes(w, contentTypes[req.Format], res.CacheInfo.RenderHit, res.Artifacts[req.Format])
}

// linksRequest carries documents and the mapping inline, each as YAML or
// JSON text.
type linksRequest struct {
	Documents []string `json:"documents"`
	Mapping   string   `json:"mapping"`
	Collapsed []string `json:"collapsed,omitempty"`
}

func (s *server) handleLinks(w http.ResponseWriter, r *http.Request) {
	var req linksRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := pipeline.MappingOptions{Collapsed: req.Collapsed, View: s.view}
	for i, text := range req.Documents {
		d, err := mapping.ParseDocument([]byte(text))
		if err != nil {
			s.writeError(w, fmt.Errorf("documents[%d]: %w", i, err))
			return
		}
		opts.Documents = append(opts.Documents, d)
	}
	tree, err := mapping.ParseTree([]byte(req.Mapping))
	if err != nil {
		s.writeError(w, fmt.Errorf("mapping: %w", err))
		return
	}
	opts.Tree = tree

	m, err := s.runner.OpenMapping(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := m.Refresh(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := graph.MarshalLinks(res, m.View.Canvas())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeBytes(w, contentTypes[pipeline.FormatJSON], false, data)
}

// =============================================================================
// Response helpers
// =============================================================================

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "decode request"))
		return false
	}
	return true
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := kerrors.StatusCode(err)
	code := kerrors.GetCode(err)
	switch {
	case code == kerrors.ErrCodeMissingContext:
		// The client left out a document the mapping names.
		status = http.StatusUnprocessableEntity
	case code == "":
		code = kerrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Code: string(code), Message: err.Error()})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

func (s *server) writeBytes(w http.ResponseWriter, contentType string, cached bool, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}
