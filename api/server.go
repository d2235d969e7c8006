// Package api - Thin HTTP layer over the rating service
// The API is ONLY responsible for: request decoding, calling the service,
// response shaping. It never computes premiums itself.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"rating-engine/core/output"
	"rating-engine/core/rating"
	apierrors "rating-engine/internal/errors"
)

// Route paths
const (
	RatingPath = "/rating-engine"

	// FunctionsRatingPath is where existing UI clients invoke the rating function.
	FunctionsRatingPath = "/functions/v1/rating-engine"
)

const (
	msgMethodNotAllowed = "Method not allowed. Use POST."
	msgInternal         = "Internal server error"
	msgNotFound         = "Not found"
)

// Options configures a Server
type Options struct {
	Version        string
	CORSOrigin     string
	MetricsEnabled bool

	// RateLimitRPS of zero disables rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Registry receives the server's collectors; a fresh one is used when nil
	Registry *prometheus.Registry
	Logger   *zap.Logger
	QuoteID  rating.QuoteIDFunc
}

// Server is the API server
type Server struct {
	engine  *gin.Engine
	service *rating.Service
	logger  *zap.Logger
	metrics *Metrics
	quoteID rating.QuoteIDFunc
	version string
}

// NewServer creates a new API server around service
func NewServer(service *rating.Service, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.QuoteID == nil {
		opts.QuoteID = rating.NewQuoteID
	}
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true

	s := &Server{
		engine:  engine,
		service: service,
		logger:  opts.Logger,
		metrics: NewMetrics(opts.Registry),
		quoteID: opts.QuoteID,
		version: opts.Version,
	}

	engine.Use(s.recovery(), requestID(), cors(opts.CORSOrigin), s.accessLog())
	if opts.RateLimitRPS > 0 {
		engine.Use(s.rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst)))
	}

	s.registerRoutes(opts)
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes(opts Options) {
	// Core endpoint
	s.engine.POST(RatingPath, s.handleRate)
	s.engine.POST(FunctionsRatingPath, s.handleRate)

	// Supporting endpoints
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/version", s.handleVersion)
	s.engine.GET("/rates", s.handleRates)
	if opts.MetricsEnabled {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	}

	s.engine.NoMethod(s.handleMethodNotAllowed)
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgNotFound})
	})
}

// handleRate handles POST /rating-engine
func (s *Server) handleRate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.metrics.observeOutcome(outcomeFailed)
		s.fail(c, apierrors.Internal("read rating request", err))
		return
	}
	req, err := rating.DecodeRequest(body)
	if err != nil {
		s.metrics.observeOutcome(outcomeFailed)
		s.fail(c, err)
		return
	}

	result, err := s.service.Rate(req)
	if err != nil {
		if apierrors.HTTPStatus(err) < http.StatusInternalServerError {
			s.metrics.observeOutcome(outcomeRejected)
		} else {
			s.metrics.observeOutcome(outcomeFailed)
		}
		s.fail(c, err)
		return
	}

	s.metrics.observeQuote(result)
	c.JSON(http.StatusOK, output.NewQuoteDocument(result, s.quoteID()))
}

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: s.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Version:    s.version,
		Engine:     "rating-engine",
		APIVersion: "v1",
	})
}

// handleRates handles GET /rates
func (s *Server) handleRates(c *gin.Context) {
	c.JSON(http.StatusOK, output.NewTableDocument(s.service.Table()))
}

func (s *Server) handleMethodNotAllowed(c *gin.Context) {
	msg := "Method not allowed"
	if path := c.Request.URL.Path; path == RatingPath || path == FunctionsRatingPath {
		msg = msgMethodNotAllowed
	}
	s.fail(c, apierrors.MethodNotAllowed(msg))
}

// fail writes err as {"error": reason}. Internal failures are logged and
// reported with a generic message.
func (s *Server) fail(c *gin.Context, err error) {
	status := apierrors.HTTPStatus(err)
	msg := msgInternal
	if status < http.StatusInternalServerError {
		if e, ok := apierrors.As(err); ok {
			msg = e.Message
		}
	} else {
		s.logger.Error("Error processing rating request",
			zap.Error(err),
			zap.String(ctxRequestID, c.GetString(ctxRequestID)))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
