// Package server exposes the discovery agent over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/cache"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/complexity"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/config"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/genetic"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/logging"
)

const apiVersion = "1.0.0"

// OptimizationSink persists finished optimization runs and serves them
// back newest first.
type OptimizationSink interface {
	SaveOptimization(ctx context.Context, result agent.OptimizationResult) error
	RecentOptimizations(ctx context.Context, limit int) ([]agent.OptimizationResult, error)
}

// Server wires the discovery agent, the evolutionary optimizer and the
// complexity predictor behind a gin router.
type Server struct {
	config    *config.Config
	agent     *agent.Agent
	predictor *complexity.Predictor
	analyses  cache.Cache
	sink      OptimizationSink
	logger    *logging.Logger
}

// New builds a Server. sink may be nil when optimization runs should not
// be persisted.
func New(cfg *config.Config, discoveryAgent *agent.Agent, sink OptimizationSink) (*Server, error) {
	if cfg == nil {
		return nil, errors.New(errors.InvalidInput, "config cannot be nil")
	}
	if discoveryAgent == nil {
		return nil, errors.New(errors.InvalidInput, "agent cannot be nil")
	}
	return &Server{
		config:    cfg,
		agent:     discoveryAgent,
		predictor: complexity.NewPredictor(),
		analyses:  cache.NewMemoryCache(cache.Config{MaxEntries: 1024, DefaultTTL: time.Hour}),
		sink:      sink,
		logger:    logging.GetLogger(),
	}, nil
}

// Router assembles the route table.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleIndex)
	router.GET("/health", s.handleHealth)
	router.POST("/discover", s.handleDiscover)
	router.POST("/optimize", s.handleOptimize)
	router.POST("/evaluate", s.handleEvaluate)
	router.POST("/feedback", s.handleFeedback)
	router.GET("/history", s.handleHistory)
	router.GET("/optimizations", s.handleOptimizations)
	router.GET("/best", s.handleBest)

	return router
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	addr := s.config.Server.Addr
	s.logger.Info(context.Background(), "Listening on %s", addr)
	if err := s.Router().Run(addr); err != nil {
		return errors.Wrap(err, errors.Unknown, "http server failed")
	}
	return nil
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "AI Algorithm Discovery Agent API",
		"version": apiVersion,
		"endpoints": gin.H{
			"/discover":      "POST - Discover algorithms for a problem category",
			"/optimize":      "POST - Optimize algorithm parameters",
			"/evaluate":      "POST - Evaluate algorithm source complexity",
			"/feedback":      "POST - Report measured reward for a discovery",
			"/history":       "GET - Recent discoveries",
			"/optimizations": "GET - Recent optimization runs",
			"/best":          "GET - Best known algorithm for a state",
			"/health":        "GET - Health check",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "ai-algorithm-agent"})
}

// statusFor maps structured error codes onto HTTP statuses.
func statusFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.InvalidInput, errors.ValidationFailed:
		return http.StatusBadRequest
	case errors.UnknownCategory, errors.ResourceNotFound, errors.NoData:
		return http.StatusNotFound
	case errors.NoLegalActions, errors.NoTemplates:
		return http.StatusUnprocessableEntity
	case errors.Canceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) abortWithError(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "Request failed: %v", err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// mutationConfig converts configured bounds into optimizer mutation params,
// falling back to the server-wide defaults.
func (s *Server) mutationConfig(bounds map[string]config.MutationBound) genetic.MutationConfig {
	if len(bounds) == 0 {
		bounds = s.config.Evolution.MutationBounds
	}
	mutation := make(genetic.MutationConfig, len(bounds))
	for name, b := range bounds {
		mutation[name] = genetic.MutationParams{Std: b.Std, Min: b.Min, Max: b.Max}
	}
	return mutation
}
