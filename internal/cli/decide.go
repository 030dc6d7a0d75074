package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrifield/advisor/internal/core/config"
	"github.com/agrifield/advisor/internal/core/domain"
	"github.com/agrifield/advisor/internal/decision/engine"
	"github.com/agrifield/advisor/internal/decision/scenario"
)

var requestPath string

var decideCmd = &cobra.Command{
	Use:   "decide",
	Short: "Rank application methods for a JSON decision request",
	Long:  `Reads a decision request from a JSON file (or stdin with -) and prints the ranked recommendation without starting the service.`,
	Run:   runDecide,
}

func init() {
	decideCmd.Flags().StringVar(&requestPath, "request", "-", "decision request JSON file, - for stdin")
	rootCmd.AddCommand(decideCmd)
}

func runDecide(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	var raw []byte
	if requestPath == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(requestPath)
	}
	if err != nil {
		slog.Error("Failed to read request", "error", err)
		os.Exit(1)
	}

	var req domain.DecisionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		slog.Error("Failed to parse request", "error", err)
		os.Exit(1)
	}

	eng := engine.New(engine.Config{
		DefaultRule:     domain.DecisionRule(cfg.Decision.DefaultRule),
		MaxAlternatives: cfg.Decision.MaxAlternatives,
		CostCeiling:     cfg.Decision.CostCeiling,
		ConfidenceCap:   cfg.Decision.ConfidenceCap,
	})

	result, err := eng.Decide(req)
	if err != nil {
		slog.Error("Decision failed", "error", err)
		os.Exit(1)
	}

	if req.IncludeScenario {
		analysis, err := scenario.New(eng).Analyze(req, scenario.DefaultPerturbations())
		if err != nil {
			slog.Warn("Scenario analysis failed", "error", err)
		} else {
			result.Scenario = analysis
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.Error("Failed to encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
