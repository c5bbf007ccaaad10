package http

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"realz/internal/config"
	"realz/internal/domain"
	"realz/internal/infra/metrics"
	"realz/internal/infra/ratelimit"
	"realz/internal/infra/verifyclient"
	"realz/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg     config.Config
	r       *gin.Engine
	logger  *zap.Logger
	render  *usecase.RenderVerification
	metrics *metrics.Recorder
	closers []io.Closer

	endpointHost string

	rateLimiter         domain.RateLimiter
	rateLimitRequests   int
	rateLimitWindow     time.Duration
	rateLimitFailClosed bool
}

type ServerDeps struct {
	Render       *usecase.RenderVerification
	Metrics      *metrics.Recorder
	RateLimiter  domain.RateLimiter
	Logger       *zap.Logger
	EndpointHost string
}

// NewServer wires the verification client, metrics and rate limiter from
// cfg. cfg must already be valid.
func NewServer(cfg config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	client, err := verifyclient.New(cfg.EndpointURL,
		verifyclient.WithTimeout(cfg.VerifyTimeout),
		verifyclient.WithLogger(logger.Named("verifyclient")),
	)
	if err != nil {
		return nil, err
	}
	recorder := metrics.NewRecorder()

	var (
		limiter domain.RateLimiter
		closers []io.Closer
	)
	if cfg.RateLimitRequests > 0 {
		if cfg.RedisAddr != "" {
			redisLimiter, redisClient, err := ratelimit.NewRedisLimiter(ratelimit.RedisConfig{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			if err == nil {
				limiter = redisLimiter
				closers = append(closers, redisClient)
			} else {
				logger.Warn("redis rate limiter unavailable, using memory", zap.Error(err))
			}
		}
		if limiter == nil {
			limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{MaxKeys: cfg.RateLimitMaxKeys})
		}
	}

	s := NewServerWithDeps(cfg, ServerDeps{
		Render: &usecase.RenderVerification{
			Verifier:        client,
			Recorder:        recorder,
			Logger:          logger.Named("render"),
			DisplayLocation: loc,
		},
		Metrics:      recorder,
		RateLimiter:  limiter,
		Logger:       logger,
		EndpointHost: client.Host(),
	})
	s.closers = closers
	return s, nil
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	s := &Server{
		cfg:          cfg,
		r:            r,
		logger:       deps.Logger,
		render:       deps.Render,
		metrics:      deps.Metrics,
		endpointHost: deps.EndpointHost,
		rateLimiter:  deps.RateLimiter,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.render == nil {
		s.render = &usecase.RenderVerification{Logger: s.logger}
	}
	s.rateLimitRequests = cfg.RateLimitRequests
	s.rateLimitWindow = cfg.RateLimitWindow()
	s.rateLimitFailClosed = cfg.RateLimitFailClosed

	r.Use(gin.Recovery(), requestID(), accessLog(s.logger))
	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl")))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.r.GET("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	s.r.GET("/api/v1/view", s.handleViewAPI)
	s.r.GET("/", s.handlePage)
	s.r.GET("/v/*path", s.handlePage)

	s.r.NoRoute(s.handleNoRoute)
}

func (s *Server) Handler() http.Handler {
	return s.r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("verification page listening", zap.String("addr", s.cfg.HTTPAddr), zap.String("endpoint_host", s.endpointHost))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) close() {
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.logger.Warn("close dependency", zap.Error(err))
		}
	}
	s.closers = nil
}
