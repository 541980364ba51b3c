// Package processor runs a journal submission through the full pipeline:
// collaborator summary, mode resolution, extraction, schema assembly,
// rendering and notification.
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/journalviz/internal/extractor"
	"github.com/MikeSquared-Agency/journalviz/internal/hermes"
	"github.com/MikeSquared-Agency/journalviz/internal/lexicon"
	"github.com/MikeSquared-Agency/journalviz/internal/render"
	"github.com/MikeSquared-Agency/journalviz/internal/resolver"
	"github.com/MikeSquared-Agency/journalviz/internal/schema"
	"github.com/MikeSquared-Agency/journalviz/internal/store"
	"github.com/MikeSquared-Agency/journalviz/internal/summary"
)

// ErrEmptyInput is returned when a submission has neither text nor a table.
var ErrEmptyInput = errors.New("provide input")

// Summary sources reported on every Result.
const (
	SourceNone     = "none"
	SourceFallback = "fallback"
)

const notifyTimeout = 5 * time.Second

// Publisher announces completed renders.
type Publisher interface {
	PublishRendered(ev hermes.RenderedEvent) error
}

// Ledger records render metadata.
type Ledger interface {
	RecordRender(ctx context.Context, r store.RenderRecord) error
}

// Submission is the inbound request from a UI shell.
type Submission struct {
	Mode       string `json:"mode"`
	Text       string `json:"rawText"`
	CSV        string `json:"csvText"`
	InputStyle string `json:"inputStyle"`
}

// Result is the outbound payload for one submission.
type Result struct {
	ID                 string        `json:"id"`
	Summary            string        `json:"summary"`
	MoodWord           string        `json:"moodWord"`
	MoodIntensity      int           `json:"moodIntensity"`
	SummarySource      string        `json:"summarySource"`
	CollaboratorFailed bool          `json:"collaboratorFailed"`
	ResolvedBy         resolver.Rule `json:"resolvedBy"`
	Schema             schema.Schema `json:"schema"`
	DrawingProgram     string        `json:"drawingProgram"`
}

// Options wires a Processor. Only Lexicon and Logger are expected; every
// other field may be left zero.
type Options struct {
	Lexicon        *lexicon.Lexicon
	Collaborator   summary.Collaborator
	SummaryTimeout time.Duration
	Publisher      Publisher
	Ledger         Ledger
	Logger         *slog.Logger
}

// Processor holds no per-submission state; Visualize is safe for concurrent
// use.
type Processor struct {
	extractor    *extractor.Extractor
	resolver     *resolver.Resolver
	collaborator summary.Collaborator
	timeout      time.Duration
	publisher    Publisher
	ledger       Ledger
	logger       *slog.Logger
	now          func() time.Time
}

func New(opts Options) *Processor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ext := extractor.New(opts.Lexicon, logger)
	return &Processor{
		extractor:    ext,
		resolver:     resolver.New(ext.Lexicon().Resolver),
		collaborator: opts.Collaborator,
		timeout:      opts.SummaryTimeout,
		publisher:    opts.Publisher,
		ledger:       opts.Ledger,
		logger:       logger,
		now:          time.Now,
	}
}

// CollaboratorName returns the configured provider, or "" when none is.
func (p *Processor) CollaboratorName() string {
	if p.collaborator == nil {
		return ""
	}
	return p.collaborator.Name()
}

// LexiconVersion returns the version of the keyword tables in use.
func (p *Processor) LexiconVersion() string {
	return p.extractor.Lexicon().Version
}

// Validate rejects submissions that cannot be rendered.
func Validate(sub Submission) error {
	if strings.TrimSpace(sub.Text) == "" && strings.TrimSpace(sub.CSV) == "" {
		return ErrEmptyInput
	}
	mode := strings.TrimSpace(sub.Mode)
	if mode == "" || strings.EqualFold(mode, schema.ModeAuto) {
		return nil
	}
	if _, err := schema.ParseMode(mode); err != nil {
		return fmt.Errorf("mode %q: %w", sub.Mode, err)
	}
	return nil
}

// Visualize turns a submission into a schema and drawing program. The only
// errors are validation errors; collaborator failures degrade to the
// fallback summary.
func (p *Processor) Visualize(ctx context.Context, sub Submission) (*Result, error) {
	if err := Validate(sub); err != nil {
		return nil, err
	}
	id := uuid.New()

	sum, source, failed := p.summarize(ctx, sub)

	decision := p.resolver.Resolve(resolver.Input{
		Requested: sub.Mode,
		Text:      sub.Text,
		CSV:       sub.CSV,
		Hint:      sum.JournalType,
	})
	p.logger.Debug("mode resolved", "id", id, "mode", decision.Mode, "rule", decision.Rule)

	dims := p.extractor.Extract(decision.Mode, sub.Text, sub.CSV)
	style := schema.ParseInputStyle(sub.InputStyle, strings.TrimSpace(sub.CSV) != "")
	s := schema.Assemble(decision.Mode, style, dims, sub.Text)
	program := render.Render(s)

	p.logger.Info("render complete",
		"id", id,
		"mode", s.Mode,
		"visual_standard", s.VisualStandard,
		"items", dims.Len(),
		"program_bytes", len(program),
		"summary_source", source,
	)

	res := &Result{
		ID:                 id.String(),
		Summary:            sum.Summary,
		MoodWord:           sum.MoodWord,
		MoodIntensity:      sum.MoodIntensity,
		SummarySource:      source,
		CollaboratorFailed: failed,
		ResolvedBy:         decision.Rule,
		Schema:             s,
		DrawingProgram:     program,
	}
	p.notify(ctx, id, res)
	return res, nil
}

// summarize makes the single collaborator call under the configured timeout.
// Any failure is equivalent and yields the fallback.
func (p *Processor) summarize(ctx context.Context, sub Submission) (summary.Result, string, bool) {
	if p.collaborator == nil {
		return summary.Fallback(), SourceNone, false
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	res, err := p.collaborator.Summarize(ctx, summary.Request{Mode: sub.Mode, Text: sub.Text, CSV: sub.CSV})
	if err != nil {
		p.logger.Warn("summary collaborator failed", "provider", p.collaborator.Name(), "error", err)
		return summary.Fallback(), SourceFallback, true
	}
	return res, p.collaborator.Name(), false
}

func (p *Processor) notify(ctx context.Context, id uuid.UUID, res *Result) {
	if p.publisher == nil && p.ledger == nil {
		return
	}
	ev := hermes.RenderedEvent{
		ID:             id.String(),
		Mode:           string(res.Schema.Mode),
		VisualStandard: string(res.Schema.VisualStandard),
		InputStyle:     string(res.Schema.InputStyle),
		ItemCount:      res.Schema.Dimensions.Len(),
		SummarySource:  res.SummarySource,
		ProgramBytes:   len(res.DrawingProgram),
		RenderedAt:     p.now().UTC(),
	}

	if p.publisher != nil {
		if err := p.publisher.PublishRendered(ev); err != nil {
			p.logger.Warn("failed to publish rendered event", "id", ev.ID, "error", err)
		}
	}
	if p.ledger != nil {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		rec := store.RenderRecord{
			ID:             id,
			Mode:           ev.Mode,
			VisualStandard: ev.VisualStandard,
			InputStyle:     ev.InputStyle,
			ItemCount:      ev.ItemCount,
			SummarySource:  ev.SummarySource,
			ProgramBytes:   ev.ProgramBytes,
			RenderedAt:     ev.RenderedAt,
		}
		if err := p.ledger.RecordRender(ctx, rec); err != nil {
			p.logger.Warn("failed to record render", "id", ev.ID, "error", err)
		}
	}
}

// HandleSubmission is the NATS handler for hermes.SubjectRequested. The drawing
// program is not sent back; subscribers learn about the render through
// the rendered event.
func (p *Processor) HandleSubmission(subject string, data []byte) {
	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		p.logger.Warn("failed to parse submission", "subject", subject, "error", err)
		return
	}
	if _, err := p.Visualize(context.Background(), sub); err != nil {
		p.logger.Warn("submission rejected", "subject", subject, "error", err)
	}
}
