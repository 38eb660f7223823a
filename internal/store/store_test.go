package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/retype/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "retype.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
		rec := model.SessionRecord{
			StartedAt:   start,
			FinishedAt:  start.Add(30 * time.Second),
			Source:      "file",
			Chars:       10,
			Words:       2,
			ErrorEvents: i,
			Accuracy:    float64(10-i) / 10,
			WPM:         4,
			DurationMs:  30000,
		}
		id, err := st.InsertSession(ctx, rec, []model.CharRecord{
			{Char: "a", Correct: 4 - i, Total: 5},
			{Char: " ", Correct: 1, Total: 1},
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		ids = append(ids, id)
	}

	all, err := st.ListSessions(ctx, model.HistoryConfig{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[0], all[0].ID)
	assert.Equal(t, 2, all[2].ErrorEvents)
	assert.True(t, all[1].FinishedAt.Equal(time.Unix(90, 0)))

	last, err := st.ListSessions(ctx, model.HistoryConfig{Last: 2})
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, ids[1], last[0].ID)
	assert.Equal(t, ids[2], last[1].ID)

	since := time.Unix(60, 0).UTC()
	recent, err := st.ListSessions(ctx, model.HistoryConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 2)

	aggs, err := st.ListCharAggregates(ctx, ids[1:])
	require.NoError(t, err)
	assert.Equal(t, []model.CharAggregate{
		{Char: " ", Correct: 2, Total: 2},
		{Char: "a", Correct: 5, Total: 10},
	}, aggs)
}

func TestListSessionsOrdersByInstant(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	plus2 := time.FixedZone("UTC+2", 2*60*60)
	base := time.Date(2024, 3, 31, 12, 0, 0, 0, plus2)

	// Inserted out of order: a half second after base, base itself, and an
	// earlier instant whose local clock reading is later than base's.
	plus5 := time.FixedZone("UTC+5", 5*60*60)
	finishes := map[string]time.Time{
		"half":  base.Add(500 * time.Millisecond),
		"whole": base,
		"east":  base.Add(-30 * time.Minute).In(plus5),
	}
	for _, id := range []string{"half", "whole", "east"} {
		_, err := st.InsertSession(ctx, model.SessionRecord{ID: id, StartedAt: finishes[id], FinishedAt: finishes[id]}, nil)
		require.NoError(t, err)
	}

	sessions, err := st.ListSessions(ctx, model.HistoryConfig{})
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "east", sessions[0].ID)
	assert.Equal(t, "whole", sessions[1].ID)
	assert.Equal(t, "half", sessions[2].ID)
	assert.True(t, sessions[2].FinishedAt.Equal(finishes["half"]))

	since := base.Add(250 * time.Millisecond)
	recent, err := st.ListSessions(ctx, model.HistoryConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "half", recent[0].ID)
}

func TestInsertSessionKeepsGivenID(t *testing.T) {
	st := openTestStore(t)
	id, err := st.InsertSession(context.Background(), model.SessionRecord{ID: "fixed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	_, err = st.InsertSession(context.Background(), model.SessionRecord{ID: "fixed"}, nil)
	require.Error(t, err)
}

func TestListCharAggregatesEmpty(t *testing.T) {
	st := openTestStore(t)
	aggs, err := st.ListCharAggregates(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, aggs)
}

func TestRecordFromReport(t *testing.T) {
	start := time.Unix(10, 0)
	report := model.Report{
		Accuracy:     0.5,
		CorrectChars: 1,
		TotalChars:   2,
		ErrorEvents:  1,
		Words:        1,
		WPM:          12,
		StartedAt:    start,
		FinishedAt:   start.Add(5 * time.Second),
		Duration:     5 * time.Second,
		Chars:        []model.CharResult{{Char: 'a', Correct: 0, Total: 1}, {Char: 'b', Correct: 1, Total: 1}},
	}
	rec, chars := RecordFromReport(report, "clipboard")
	assert.Equal(t, "clipboard", rec.Source)
	assert.Equal(t, int64(5000), rec.DurationMs)
	assert.Equal(t, 2, rec.Chars)
	assert.Equal(t, []model.CharRecord{{Char: "a", Correct: 0, Total: 1}, {Char: "b", Correct: 1, Total: 1}}, chars)
}
