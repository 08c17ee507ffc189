package stats

import (
	"sort"

	"github.com/okhlin/cloze/internal/model"
)

// SelectHardWords returns the lowest-accuracy words from aggregates,
// hardest first.
func SelectHardWords(aggs []model.WordAggregate, top int) []model.WordAggregate {
	if len(aggs) == 0 {
		return nil
	}
	candidates := make([]model.WordAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ai := wordAccuracy(candidates[i])
		aj := wordAccuracy(candidates[j])
		if ai == aj {
			return candidates[i].Word < candidates[j].Word
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}

func wordAccuracy(agg model.WordAggregate) float64 {
	total := agg.Correct + agg.Incorrect
	if total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(total)
}
