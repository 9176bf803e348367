package main

import (
	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/internal/server"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/agent"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/policy"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Starts the discovery agent's HTTP API. Discoveries, learning events
and optimization runs are persisted to the configured SQLite database.

Examples:
  algoctl serve
  algoctl serve --addr :9090
  algoctl -c config.yaml serve`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	db, err := store.New(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	discoveryAgent, err := agent.New(&agent.Config{
		Policy: &policy.Config{
			LearningRate:   cfg.Learning.LearningRate,
			DiscountFactor: cfg.Learning.DiscountFactor,
			Epsilon:        cfg.Learning.Epsilon,
			Seed:           cfg.Learning.Seed,
		},
		Sink: db,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, discoveryAgent, db)
	if err != nil {
		return err
	}
	return srv.Run()
}
