package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okhlin/cloze/internal/model"
	"github.com/okhlin/cloze/internal/store"
)

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{}, 80); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No practice runs") {
		t.Fatalf("expected empty-state notice, got %q", buf.String())
	}
}

func TestBuildReportWindowUsesRecentRuns(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "cloze.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if cerr := st.Close(); cerr != nil {
			t.Errorf("failed to close store: %v", cerr)
		}
	})

	ctx := context.Background()
	base := time.Now()
	insert := func(endedAt time.Time, words []model.WordStat) {
		t.Helper()
		if _, err := st.InsertRun(ctx, model.RunStats{
			StartedAt: endedAt.Add(-time.Minute),
			EndedAt:   endedAt,
			Source:    "book.txt",
			Sentences: 5,
		}, words); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
	}
	insert(base, []model.WordStat{{Word: "stale", Incorrect: 2}})
	insert(base.Add(time.Hour), []model.WordStat{{Word: "fresh", Incorrect: 1}})

	report, err := BuildReport(ctx, st, model.StatsConfig{Window: 1})
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	words := map[string]bool{}
	for _, agg := range report.WordAggs {
		words[agg.Word] = true
	}
	if !words["fresh"] || words["stale"] {
		t.Fatalf("window 1 should only aggregate the latest run, got %v", report.WordAggs)
	}

	report, err = BuildReport(ctx, st, model.StatsConfig{})
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if len(report.WordAggs) != 2 {
		t.Fatalf("zero window should aggregate all runs, got %v", report.WordAggs)
	}
}

func TestRenderReportTotals(t *testing.T) {
	now := time.Now()
	report := Report{
		Runs: []model.RunAggregate{
			{RunID: 1, EndedAt: now, Source: "book.txt", Correct: 8, Incorrect: 2},
			{RunID: 2, EndedAt: now, Source: "book.txt", Correct: 7, Incorrect: 3},
		},
		WordAggs: []model.WordAggregate{
			{Word: "misnomer", Correct: 0, Incorrect: 3},
		},
	}
	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 80); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	out := buf.String()
	for _, needle := range []string{"Runs: 2", "Drills: 20", "Accuracy: 75.0%", "misnomer"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("report missing %q:\n%s", needle, out)
		}
	}
}
