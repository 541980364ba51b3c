// Command journalviz turns journal entries into animated drawings.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/journalviz/internal/config"
	"github.com/MikeSquared-Agency/journalviz/internal/lexicon"
	"github.com/MikeSquared-Agency/journalviz/internal/processor"
	"github.com/MikeSquared-Agency/journalviz/internal/summary"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "journalviz",
		Short:        "Turn journal entries into animated hand-drawn visualizations",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newRenderCmd(), newBatchCmd())
	return root
}

func setupLogging(level string) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(level)})
	slog.SetDefault(slog.New(handler))
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// loadLexicon returns the built-in tables unless a YAML override is set.
func loadLexicon(path string) (*lexicon.Lexicon, error) {
	if path == "" {
		return lexicon.Default(), nil
	}
	lx, err := lexicon.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}
	return lx, nil
}

// newCollaborator builds the configured summary provider, or nil when none
// is available.
func newCollaborator(ctx context.Context, cfg config.Config) (summary.Collaborator, error) {
	identity, err := summary.LoadIdentity(cfg.IdentityPath)
	if err != nil {
		return nil, err
	}
	return summary.New(ctx, summary.Options{
		Provider:        cfg.SummaryProvider,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GeminiModel:     cfg.GeminiModel,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		Identity:        identity,
	})
}

// baseOptions wires the lexicon and collaborator shared by every command.
func baseOptions(ctx context.Context, cfg config.Config, logger *slog.Logger) (processor.Options, error) {
	lx, err := loadLexicon(cfg.LexiconPath)
	if err != nil {
		return processor.Options{}, err
	}
	collab, err := newCollaborator(ctx, cfg)
	if err != nil {
		return processor.Options{}, err
	}
	if collab != nil {
		logger.Info("summary collaborator ready", "provider", collab.Name())
	} else {
		logger.Info("no summary collaborator configured, using fallback summaries")
	}
	return processor.Options{
		Lexicon:        lx,
		Collaborator:   collab,
		SummaryTimeout: cfg.SummaryTimeout,
		Logger:         logger,
	}, nil
}
