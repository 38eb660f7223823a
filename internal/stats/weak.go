package stats

import (
	"sort"

	"github.com/verte-zerg/retype/internal/model"
)

// WeakestChars returns the top lowest-accuracy characters. A non-positive
// top returns all of them.
func WeakestChars(aggs []model.CharAggregate, top int) []model.CharAggregate {
	candidates := make([]model.CharAggregate, len(aggs))
	copy(candidates, aggs)
	sort.Slice(candidates, func(i, j int) bool {
		ai := aggregateAccuracy(candidates[i])
		aj := aggregateAccuracy(candidates[j])
		if ai == aj {
			return candidates[i].Char < candidates[j].Char
		}
		return ai < aj
	})
	if top <= 0 || top > len(candidates) {
		top = len(candidates)
	}
	return candidates[:top]
}

func aggregateAccuracy(agg model.CharAggregate) float64 {
	if agg.Total == 0 {
		return 1.0
	}
	return float64(agg.Correct) / float64(agg.Total)
}
