package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yourusername/product-catalog-client/internal/domain/repository"
	"github.com/yourusername/product-catalog-client/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultSessionIdle = 24 * time.Hour
	maxUploadSize      = 10 << 20
	shutdownTimeout    = 5 * time.Second
)

// Config web server bog'liqliklari
type Config struct {
	Addr            string
	Repo            repository.ProductRepository
	Parser          repository.ExcelParser
	Writer          repository.ExcelWriter
	Logger          *zap.Logger
	ItemsPerPage    int
	NotificationTTL time.Duration
	SessionIdle     time.Duration
	Registerer      prometheus.Registerer
	Gatherer        prometheus.Gatherer
	Now             func() time.Time
}

// Server kartalar sahifasi va dashboard uchun HTTP server
type Server struct {
	cfg     Config
	logger  *zap.Logger
	store   *sessionStore
	pages   map[string]*template.Template
	handler http.Handler
}

// NewServer yangi web server yaratish
func NewServer(cfg Config) (*Server, error) {
	if cfg.Repo == nil {
		return nil, errors.New("web: repository is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = 3 * time.Second
	}
	if cfg.SessionIdle == 0 {
		cfg.SessionIdle = defaultSessionIdle
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger.Named("web"),
		pages:  pages,
	}
	s.store = newSessionStore(cfg.SessionIdle, cfg.Now, s.newSession)

	mux := http.NewServeMux()
	s.routes(mux, cfg.Gatherer)
	s.handler = chain(mux,
		logging(s.logger, newHTTPMetrics(cfg.Registerer)),
		recoverer(s.logger),
	)
	return s, nil
}

// Handler barcha marshrutlar middleware bilan
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run ctx bekor qilinguncha tinglash
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web server shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}

func (s *Server) routes(mux *http.ServeMux, gatherer prometheus.Gatherer) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /products", s.handleListSubmit)
	mux.HandleFunc("POST /products/reset", s.handleListReset)
	mux.HandleFunc("POST /products/{id}/edit", s.handleListEdit)
	mux.HandleFunc("GET /products/{id}/delete", s.handleListDeleteConfirm)
	mux.HandleFunc("POST /products/{id}/delete", s.handleListDelete)
	mux.HandleFunc("POST /reload", s.handleListReload)

	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("POST /dashboard/reload", s.handleDashboardReload)
	mux.HandleFunc("POST /dashboard/sort/{column}", s.handleSort)
	mux.HandleFunc("POST /dashboard/page/{n}", s.handleGoToPage)
	mux.HandleFunc("POST /dashboard/prev", s.handlePrevPage)
	mux.HandleFunc("POST /dashboard/next", s.handleNextPage)
	mux.HandleFunc("POST /dashboard/per-page", s.handlePerPage)
	mux.HandleFunc("POST /dashboard/modal/open", s.handleModalOpen)
	mux.HandleFunc("POST /dashboard/modal/close", s.handleModalClose)
	mux.HandleFunc("POST /dashboard/modal/backdrop", s.handleModalBackdrop)
	mux.HandleFunc("POST /dashboard/products", s.handleDashboardSubmit)
	mux.HandleFunc("POST /dashboard/products/{id}/edit", s.handleDashboardEdit)
	mux.HandleFunc("GET /dashboard/products/{id}/delete", s.handleDashboardDeleteConfirm)
	mux.HandleFunc("POST /dashboard/products/{id}/delete", s.handleDashboardDelete)
	mux.HandleFunc("POST /dashboard/import", s.handleImport)
	mux.HandleFunc("GET /dashboard/export.xlsx", s.handleExport)

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
}

// newSession sessiya uchun controllerlar va sahifa buferlari
func (s *Server) newSession() *session {
	opts := []usecase.Option{
		usecase.WithLogger(s.logger),
		usecase.WithClock(s.cfg.Now),
		usecase.WithItemsPerPage(s.cfg.ItemsPerPage),
		usecase.WithExcel(s.cfg.Parser, s.cfg.Writer),
	}

	lp := &listPage{toasts: toasts{ttl: s.cfg.NotificationTTL, now: s.cfg.Now}}
	dp := &dashboardPage{toasts: toasts{ttl: s.cfg.NotificationTTL, now: s.cfg.Now}}
	return &session{
		list:     usecase.NewListController(s.cfg.Repo, lp, usecase.ContextConfirm, opts...),
		listPage: lp,
		dash:     usecase.NewDashboardController(s.cfg.Repo, dp, usecase.ContextConfirm, opts...),
		dashPage: dp,
	}
}
