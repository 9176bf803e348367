// algoctl is the command line interface to the algorithm discovery agent.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/config"
	"github.com/HIMANSHU895060/ai-algorithm-discovery-agent/pkg/logging"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "algoctl",
	Short: "Algorithm discovery agent",
	Long: `algoctl runs the AI algorithm discovery agent: reinforcement-learned
algorithm selection, evolutionary parameter tuning and complexity analysis,
backed by a local SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.Default()
		}

		logging.SetLogger(logging.NewLogger(logging.Config{
			Severity: logging.ParseSeverity(cfg.Logging.Level),
			Outputs:  []logging.Output{logging.NewConsoleOutput(true)},
		}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to YAML config file (defaults apply when omitted)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(saveSolutionCmd)
	rootCmd.AddCommand(solutionsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
