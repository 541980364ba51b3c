// Package batch renders a directory of journal entries in one pass,
// resuming from where a previous run stopped.
package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/journalviz/internal/processor"
)

const (
	defaultWorkers = 4
	programExt     = ".js"
	resultExt      = ".json"
)

// Visualizer turns one submission into a drawing.
type Visualizer interface {
	Visualize(ctx context.Context, sub processor.Submission) (*processor.Result, error)
}

// Config controls a batch run.
type Config struct {
	Dir        string
	OutDir     string
	StatePath  string
	Mode       string
	InputStyle string
	Since      time.Time
	Until      time.Time
	Workers    int
	DryRun     bool
}

// Entry is one journal file found on disk. TextPath or CSVPath may be empty
// but not both.
type Entry struct {
	Key      string // slash-separated path relative to Config.Dir, without extension
	TextPath string
	CSVPath  string
	ModTime  time.Time
}

// Report summarises a finished run.
type Report struct {
	Discovered int
	Skipped    int
	Empty      int
	Rendered   int
	Failed     int
	ByMode     map[string]int
	Errors     []string
	DryRun     bool
	StatePath  string
}

type Runner struct {
	cfg    Config
	vis    Visualizer
	logger *slog.Logger
}

func NewRunner(cfg Config, vis Visualizer, logger *slog.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.OutDir == "" {
		cfg.OutDir = cfg.Dir
	}
	return &Runner{cfg: cfg, vis: vis, logger: logger}
}

// Run renders every pending entry. Per-entry failures are recorded in the
// state file and the report; only discovery, state and cancellation errors
// are returned.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	state, err := LoadState(r.cfg.StatePath)
	if err != nil {
		return Report{}, fmt.Errorf("load state: %w", err)
	}

	entries, err := Discover(r.cfg.Dir)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Discovered: len(entries),
		ByMode:     make(map[string]int),
		DryRun:     r.cfg.DryRun,
		StatePath:  state.Path(),
	}

	var pending []Entry
	for _, e := range entries {
		if !inRange(e.ModTime, r.cfg.Since, r.cfg.Until) || state.IsProcessed(e.Key) {
			rep.Skipped++
			continue
		}
		pending = append(pending, e)
	}
	state.setRemaining(len(pending))

	r.logger.Info("batch starting",
		"dir", r.cfg.Dir,
		"discovered", len(entries),
		"pending", len(pending),
		"workers", r.cfg.Workers,
		"dry_run", r.cfg.DryRun,
	)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, e := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mode, err := r.renderEntry(gctx, e)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, processor.ErrEmptyInput):
				r.logger.Info("skipping empty entry", "entry", e.Key)
				rep.Empty++
			case err != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				r.logger.Error("render failed", "entry", e.Key, "error", err)
				msg := fmt.Sprintf("%s: %v", e.Key, err)
				state.AddError(msg)
				rep.Errors = append(rep.Errors, msg)
				rep.Failed++
			default:
				rep.Rendered++
				rep.ByMode[mode]++
				if !r.cfg.DryRun {
					state.MarkProcessed(e.Key, mode)
				}
			}
			if !r.cfg.DryRun {
				if err := state.Save(); err != nil {
					r.logger.Warn("save state failed", "error", err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if !r.cfg.DryRun {
			_ = state.Save()
		}
		return rep, err
	}

	r.logger.Info("batch complete",
		"rendered", rep.Rendered,
		"failed", rep.Failed,
		"skipped", rep.Skipped,
		"empty", rep.Empty,
		"dry_run", r.cfg.DryRun,
	)
	return rep, nil
}

func (r *Runner) renderEntry(ctx context.Context, e Entry) (string, error) {
	sub := processor.Submission{Mode: r.cfg.Mode, InputStyle: r.cfg.InputStyle}
	if e.TextPath != "" {
		b, err := os.ReadFile(e.TextPath)
		if err != nil {
			return "", fmt.Errorf("read text: %w", err)
		}
		sub.Text = string(b)
	}
	if e.CSVPath != "" {
		b, err := os.ReadFile(e.CSVPath)
		if err != nil {
			return "", fmt.Errorf("read csv: %w", err)
		}
		sub.CSV = string(b)
	}

	res, err := r.vis.Visualize(ctx, sub)
	if err != nil {
		return "", err
	}
	mode := string(res.Schema.Mode)
	if r.cfg.DryRun {
		return mode, nil
	}
	if err := r.writeOutputs(e.Key, res); err != nil {
		return "", err
	}
	return mode, nil
}

func (r *Runner) writeOutputs(key string, res *processor.Result) error {
	base := filepath.Join(r.cfg.OutDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(base+programExt, []byte(res.DrawingProgram), 0o644); err != nil {
		return fmt.Errorf("write program: %w", err)
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(base+resultExt, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// Discover walks dir for journal entries. A .txt or .md file is an entry;
// a .csv with the same stem becomes its table. A .csv with no text sibling
// is a table-only entry. Hidden files and directories are ignored.
func Discover(dir string) ([]Entry, error) {
	byKey := make(map[string]*Entry)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".txt" && ext != ".md" && ext != ".csv" {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))

		info, err := d.Info()
		if err != nil {
			return err
		}

		e, ok := byKey[key]
		if !ok {
			e = &Entry{Key: key}
			byKey[key] = e
		}
		if ext == ".csv" {
			e.CSVPath = path
		} else if e.TextPath == "" {
			e.TextPath = path
		}
		if info.ModTime().After(e.ModTime) {
			e.ModTime = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(byKey))
	for _, e := range byKey {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

func inRange(t, since, until time.Time) bool {
	if !since.IsZero() && t.Before(since) {
		return false
	}
	if !until.IsZero() && !t.Before(until) {
		return false
	}
	return true
}

// FormatReport renders a human-readable summary of a run.
func FormatReport(rep Report) string {
	var sb strings.Builder
	sb.WriteString("=== Batch Summary ===\n")
	fmt.Fprintf(&sb, "Entries discovered: %d\n", rep.Discovered)
	fmt.Fprintf(&sb, "Rendered: %d\n", rep.Rendered)
	fmt.Fprintf(&sb, "Skipped: %d\n", rep.Skipped)
	if rep.Empty > 0 {
		fmt.Fprintf(&sb, "Empty: %d\n", rep.Empty)
	}
	fmt.Fprintf(&sb, "Failed: %d\n", rep.Failed)

	modes := make([]string, 0, len(rep.ByMode))
	for m := range rep.ByMode {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	for _, m := range modes {
		fmt.Fprintf(&sb, "  - %s: %d\n", m, rep.ByMode[m])
	}

	if rep.DryRun {
		sb.WriteString("Mode: DRY RUN (no files written)\n")
	}
	if rep.StatePath != "" {
		fmt.Fprintf(&sb, "State file: %s\n", rep.StatePath)
	}
	return sb.String()
}
