// Package stats contains run statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/okhlin/cloze/internal/model"
	"github.com/okhlin/cloze/internal/store"
)

const hardWordsTop = 10

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs     []model.RunAggregate
	WordAggs []model.WordAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}

	var wordAggs []model.WordAggregate
	if cfg.Window > 0 {
		wordAggs, err = st.GetHardWords(ctx, cfg.Window, cfg.Source)
	} else {
		ids := make([]int64, len(runs))
		for i, r := range runs {
			ids[i] = r.RunID
		}
		wordAggs, err = st.ListWordAggregatesForRuns(ctx, ids)
	}
	if err != nil {
		return Report{}, err
	}

	return Report{Runs: runs, WordAggs: wordAggs}, nil
}

// RenderReport writes the plain-text stats report sized to the given width.
func RenderReport(w io.Writer, report Report, width int) error {
	if len(report.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No practice runs recorded yet.")
		return err
	}

	var correct, incorrect int
	accuracies := make([]float64, len(report.Runs))
	for i, run := range report.Runs {
		correct += run.Correct
		incorrect += run.Incorrect
		accuracies[i] = Accuracy(run.Correct, run.Incorrect)
	}

	if _, err := fmt.Fprintf(w, "Runs: %d   Drills: %d   Accuracy: %.1f%%\n",
		len(report.Runs), correct+incorrect, Accuracy(correct, incorrect)*100); err != nil {
		return err
	}

	if len(accuracies) > 1 {
		spark := accuracies
		if width > 0 && len(spark) > width {
			spark = spark[len(spark)-width:]
		}
		if _, err := fmt.Fprintf(w, "Accuracy per run: %s\n", Sparkline(spark)); err != nil {
			return err
		}
	}

	hard := SelectHardWords(report.WordAggs, hardWordsTop)
	if len(hard) > 0 {
		if _, err := fmt.Fprintln(w, "Hardest words:"); err != nil {
			return err
		}
		for _, agg := range hard {
			if _, err := fmt.Fprintf(w, "  %-20s %3d/%-3d %.0f%%\n",
				agg.Word, agg.Correct, agg.Correct+agg.Incorrect, wordAccuracy(agg)*100); err != nil {
				return err
			}
		}
	}
	return nil
}
