package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/journalviz/internal/config"
	"github.com/MikeSquared-Agency/journalviz/internal/processor"
	"github.com/MikeSquared-Agency/journalviz/internal/render"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
)

type renderFlags struct {
	mode        string
	textFile    string
	csvFile     string
	schemaFile  string
	inputStyle  string
	programOnly bool
}

func newRenderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one journal entry and print the result",
		Long: `Reads a journal entry (and optionally a CSV table) and prints the
visualization result as JSON, or only the drawing program with --program-only.
With --schema-file, an existing schema is drawn directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			// Logs go to stderr so stdout stays machine-readable.
			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			return runRender(cmd, cfg, f, logger)
		},
	}
	cmd.Flags().StringVar(&f.mode, "mode", schema.ModeAuto, "week, stress, dream, attendance, stats or auto")
	cmd.Flags().StringVar(&f.textFile, "text-file", "", "journal text file (- for stdin)")
	cmd.Flags().StringVar(&f.csvFile, "csv-file", "", "optional CSV table")
	cmd.Flags().StringVar(&f.schemaFile, "schema-file", "", "render an existing schema JSON instead of extracting one")
	cmd.Flags().StringVar(&f.inputStyle, "input-style", "", "story or table_time_series")
	cmd.Flags().BoolVar(&f.programOnly, "program-only", false, "print only the drawing program")
	return cmd
}

func runRender(cmd *cobra.Command, cfg config.Config, f renderFlags, logger *slog.Logger) error {
	out := cmd.OutOrStdout()

	if f.schemaFile != "" {
		raw, err := readInput(cmd, f.schemaFile)
		if err != nil {
			return err
		}
		var s schema.Schema
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return fmt.Errorf("decode schema: %w", err)
		}
		program := render.Render(s)
		if f.programOnly {
			_, err = fmt.Fprintln(out, program)
			return err
		}
		return writeJSON(out, map[string]string{"drawingProgram": program})
	}

	text, err := readInput(cmd, f.textFile)
	if err != nil {
		return err
	}
	csvText, err := readInput(cmd, f.csvFile)
	if err != nil {
		return err
	}

	opts, err := baseOptions(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	res, err := processor.New(opts).Visualize(cmd.Context(), processor.Submission{
		Mode:       f.mode,
		Text:       text,
		CSV:        csvText,
		InputStyle: f.inputStyle,
	})
	if err != nil {
		return err
	}

	if f.programOnly {
		_, err = fmt.Fprintln(out, res.DrawingProgram)
		return err
	}
	return writeJSON(out, res)
}

// readInput returns the file contents, stdin for "-", or "" for no path.
func readInput(cmd *cobra.Command, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
