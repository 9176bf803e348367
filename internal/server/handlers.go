package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/cache"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/complexity"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/config"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/errors"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/genetic"
)

// DiscoverRequest asks the agent to pick an algorithm for a problem.
type DiscoverRequest struct {
	Category  string `json:"category" binding:"required"`
	InputSize int    `json:"input_size" binding:"required,min=1"`
}

func (s *Server) handleDiscover(c *gin.Context) {
	var req DiscoverRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := s.agent.Discover(c.Request.Context(), req.Category, req.InputSize)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "discovery": record})
}

// OptimizeRequest tunes an algorithm's parameters against caller-supplied
// target values. The service cannot execute arbitrary algorithms, so the
// objective is a surrogate: negative squared distance to the targets.
type OptimizeRequest struct {
	Algorithm      string                          `json:"algorithm" binding:"required"`
	InitialParams  map[string]float64              `json:"initial_params" binding:"required"`
	Targets        map[string]float64              `json:"targets" binding:"required"`
	Bounds         map[string]config.MutationBound `json:"bounds"`
	PopulationSize int                             `json:"population_size"`
	Generations    int                             `json:"generations"`
}

func (s *Server) handleOptimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	evo := s.config.Evolution
	cfg := &genetic.Config{
		PopulationSize:   evo.PopulationSize,
		Generations:      evo.Generations,
		MutationRate:     evo.MutationRate,
		CrossoverRate:    evo.CrossoverRate,
		TournamentSize:   evo.TournamentSize,
		ConcurrencyLevel: evo.ConcurrencyLevel,
		Seed:             evo.Seed,
	}
	if req.PopulationSize > 0 {
		cfg.PopulationSize = req.PopulationSize
	}
	if req.Generations > 0 {
		cfg.Generations = req.Generations
	}

	optimizer, err := agent.NewParameterOptimizer(req.Algorithm, req.InitialParams, cfg)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	targets := req.Targets
	fitness := func(params map[string]float64) (float64, error) {
		total := 0.0
		for name, target := range targets {
			value, ok := params[name]
			if !ok {
				return 0, errors.WithFields(
					errors.New(errors.InvalidInput, "target refers to unknown parameter"),
					errors.Fields{"parameter": name},
				)
			}
			diff := value - target
			total += diff * diff
		}
		return -math.Sqrt(total), nil
	}

	result, err := optimizer.Optimize(c.Request.Context(), fitness, s.mutationConfig(req.Bounds))
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	if s.sink != nil {
		if err := s.sink.SaveOptimization(c.Request.Context(), *result); err != nil {
			s.logger.Warn(c.Request.Context(), "Failed to persist optimization %s: %v", result.ID, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "result": result})
}

// EvaluateRequest submits source text for complexity classification.
type EvaluateRequest struct {
	Algorithm string `json:"algorithm"`
	Code      string `json:"code" binding:"required"`
}

func (s *Server) handleEvaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	key := cache.AnalysisKey(req.Code)

	var analysis complexity.Analysis
	cached := false
	if data, found, err := s.analyses.Get(ctx, key); err == nil && found {
		cached = json.Unmarshal(data, &analysis) == nil
	}
	if !cached {
		analysis = s.predictor.Analyze(req.Code)
		if data, err := json.Marshal(analysis); err == nil {
			if err := s.analyses.Set(ctx, key, data, 0); err != nil {
				s.logger.Warn(ctx, "Failed to cache analysis: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"algorithm": req.Algorithm,
		"analysis":  analysis,
		"cached":    cached,
	})
}

// FeedbackRequest reports a measured reward for an earlier discovery.
type FeedbackRequest struct {
	Category  string  `json:"category" binding:"required"`
	InputSize int     `json:"input_size" binding:"required,min=1"`
	Algorithm string  `json:"algorithm" binding:"required"`
	Reward    float64 `json:"reward"`
}

func (s *Server) handleFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.agent.ObserveReward(c.Request.Context(), req.Category, req.InputSize, req.Algorithm, req.Reward); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	history := s.agent.History(limit)
	c.JSON(http.StatusOK, gin.H{"status": "success", "history": history, "count": len(history)})
}

func (s *Server) handleOptimizations(c *gin.Context) {
	if s.sink == nil {
		c.JSON(http.StatusOK, gin.H{"status": "success", "optimizations": []any{}, "count": 0})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	runs, err := s.sink.RecentOptimizations(c.Request.Context(), limit)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "optimizations": runs, "count": len(runs)})
}

func (s *Server) handleBest(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	inputSize, err := strconv.Atoi(c.Query("input_size"))
	if err != nil || inputSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input_size must be a positive integer"})
		return
	}

	algorithm, err := s.agent.BestAlgorithm(category, inputSize)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"category":   category,
		"input_size": inputSize,
		"algorithm":  algorithm,
	})
}
