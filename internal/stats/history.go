package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/retype/internal/model"
	"github.com/verte-zerg/retype/internal/store"
)

// History contains loaded data for history rendering.
type History struct {
	Sessions []model.SessionRecord
	Chars    []model.CharAggregate
}

// BuildHistory loads sessions matching cfg and their per-character totals.
func BuildHistory(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (History, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return History{}, fmt.Errorf("list sessions: %w", err)
	}
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	chars, err := st.ListCharAggregates(ctx, ids)
	if err != nil {
		return History{}, fmt.Errorf("list char results: %w", err)
	}
	return History{Sessions: sessions, Chars: chars}, nil
}

// Render writes the summary, trend and weakest characters.
func (h History) Render(w io.Writer, cfg model.HistoryConfig, color bool) error {
	if err := RenderSummary(w, h.Sessions); err != nil {
		return err
	}
	if len(h.Sessions) == 0 {
		return nil
	}
	if err := RenderTrend(w, h.Sessions, cfg.Window, color); err != nil {
		return err
	}
	return RenderCharTable(w, h.Chars, cfg.Top)
}
