package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RenderRecord is one ledger row.
type RenderRecord struct {
	ID             uuid.UUID
	Mode           string
	VisualStandard string
	InputStyle     string
	ItemCount      int
	SummarySource  string
	ProgramBytes   int
	RenderedAt     time.Time
}

// RecordRender inserts a ledger row. A zero RenderedAt is stamped by the
// database.
func (s *Store) RecordRender(ctx context.Context, r RenderRecord) error {
	var renderedAt *time.Time
	if !r.RenderedAt.IsZero() {
		renderedAt = &r.RenderedAt
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO journalviz_renders (id, mode, visual_standard, input_style, item_count, summary_source, program_bytes, rendered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()))`,
		r.ID, r.Mode, r.VisualStandard, r.InputStyle, r.ItemCount, r.SummarySource, r.ProgramBytes, renderedAt,
	)
	if err != nil {
		return fmt.Errorf("insert render: %w", err)
	}
	return nil
}

// GetRender fetches a ledger row by ID.
func (s *Store) GetRender(ctx context.Context, id uuid.UUID) (*RenderRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, mode, visual_standard, input_style, item_count, summary_source, program_bytes, rendered_at
		FROM journalviz_renders WHERE id = $1`, id)

	var r RenderRecord
	err := row.Scan(&r.ID, &r.Mode, &r.VisualStandard, &r.InputStyle, &r.ItemCount, &r.SummarySource, &r.ProgramBytes, &r.RenderedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CountByMode returns the number of renders per mode since the given time.
func (s *Store) CountByMode(ctx context.Context, since time.Time) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT mode, count(*) FROM journalviz_renders
		WHERE rendered_at >= $1
		GROUP BY mode`, since)
	if err != nil {
		return nil, fmt.Errorf("count renders: %w", err)
	}

	counts := make(map[string]int)
	var (
		mode string
		n    int
	)
	_, err = pgx.ForEachRow(rows, []any{&mode, &n}, func() error {
		counts[mode] = n
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan render counts: %w", err)
	}
	return counts, nil
}
