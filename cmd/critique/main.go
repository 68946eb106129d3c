package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fadilmartias/resume-critique/internal/config"
	"github.com/fadilmartias/resume-critique/internal/critique"
	"github.com/fadilmartias/resume-critique/internal/logger"
	"github.com/fadilmartias/resume-critique/internal/service"
	"github.com/fadilmartias/resume-critique/internal/usecase"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const app = "critique"

var rootCmd = &cobra.Command{
	Use:   app + " <file>",
	Short: "critique scores a plain-text resume and prints the critique as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("filename", "", "filename shown to the model (default is the base name of <file>)")
	flags.Bool("fallback-only", false, "skip the model and use the heuristic scorer")
	flags.String("provider", "", "llm provider: openai, openrouter or gemini")
	flags.String("model", "", "model name")
	flags.BoolP("debug", "d", false, "verbose/debug output")
	flags.BoolP("json", "j", false, "json format for logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, flag := range map[string]string{
		"llm_provider": "provider",
		"model_name":   "model",
		"log_debug":    "debug",
		"log_json":     "json",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	filename, _ := cmd.Flags().GetString("filename")
	if filename == "" {
		filename = filepath.Base(path)
	}

	record, err := critiqueText(cmd, cfg, log, string(data), filename)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

func critiqueText(cmd *cobra.Command, cfg *config.Config, log *zap.Logger, text, filename string) (*critique.Record, error) {
	if fallbackOnly, _ := cmd.Flags().GetBool("fallback-only"); fallbackOnly {
		return critique.ComputeFallback(text, filename), nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	content, err := service.NewContentGenerator(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	policy, err := critique.ParseScorePolicy(cfg.LLM.ScorePolicy)
	if err != nil {
		return nil, err
	}

	uc := usecase.NewCritiqueUsecase(nil, nil, critique.NewGenerator(content, critique.Config{ScorePolicy: policy}, log), usecase.RetryPolicyFromConfig(cfg.LLM), log)
	return uc.Critique(ctx, text, filename)
}
