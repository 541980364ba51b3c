package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/journalviz/internal/batch"
	"github.com/MikeSquared-Agency/journalviz/internal/config"
	"github.com/MikeSquared-Agency/journalviz/internal/processor"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
	"github.com/MikeSquared-Agency/journalviz/internal/slack"
)

const dateLayout = "2006-01-02"

type batchFlags struct {
	dir        string
	outDir     string
	statePath  string
	mode       string
	inputStyle string
	since      string
	until      string
	workers    int
	dryRun     bool
}

func newBatchCmd() *cobra.Command {
	var f batchFlags
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render every journal entry in a directory",
		Long: `Walks --dir for .txt and .md entries (with an optional .csv table of the
same name, or a .csv on its own) and writes a .js drawing program and a .json
result for each into --out. Progress is kept in a state file so an
interrupted run picks up where it stopped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			return runBatch(cmd, cfg, f)
		},
	}
	cmd.Flags().StringVar(&f.dir, "dir", "", "directory of journal entries")
	cmd.Flags().StringVar(&f.outDir, "out", "", "output directory (defaults to --dir)")
	cmd.Flags().StringVar(&f.statePath, "state", batch.DefaultStatePath, "resume state file (empty to disable)")
	cmd.Flags().StringVar(&f.mode, "mode", schema.ModeAuto, "mode applied to every entry")
	cmd.Flags().StringVar(&f.inputStyle, "input-style", "", "story or table_time_series")
	cmd.Flags().StringVar(&f.since, "since", "", "only entries modified on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.until, "until", "", "only entries modified before this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.workers, "workers", 4, "entries rendered concurrently")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "render without writing outputs or state")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func runBatch(cmd *cobra.Command, cfg config.Config, f batchFlags) error {
	since, err := parseDate(f.since)
	if err != nil {
		return fmt.Errorf("--since: %w", err)
	}
	until, err := parseDate(f.until)
	if err != nil {
		return fmt.Errorf("--until: %w", err)
	}
	if err := processor.Validate(processor.Submission{Mode: f.mode, Text: "-"}); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	opts, err := baseOptions(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(batch.Config{
		Dir:        f.dir,
		OutDir:     f.outDir,
		StatePath:  f.statePath,
		Mode:       f.mode,
		InputStyle: f.inputStyle,
		Since:      since,
		Until:      until,
		Workers:    f.workers,
		DryRun:     f.dryRun,
	}, processor.New(opts), logger)

	rep, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	report := batch.FormatReport(rep)
	if _, err := fmt.Fprint(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	postReport(cmd.Context(), cfg, rep, report, logger)
	return nil
}

// postReport sends the summary to Slack when a channel is configured.
// Failures are logged, never returned.
func postReport(ctx context.Context, cfg config.Config, rep batch.Report, report string, logger *slog.Logger) {
	if cfg.SlackBotToken == "" || cfg.SlackChannel == "" || rep.DryRun {
		return
	}
	poster := slack.NewPoster(cfg.SlackBotToken, cfg.SlackChannel, logger)
	ts, err := poster.PostReport(ctx, "journalviz batch", report)
	if err != nil {
		logger.Warn("failed to post batch report to slack", "error", err)
		return
	}
	if len(rep.Errors) > 0 {
		if err := poster.PostThread(ctx, ts, strings.Join(rep.Errors, "\n")); err != nil {
			logger.Warn("failed to post batch errors to slack", "error", err)
		}
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.Local)
}
