package engine

import (
	"math"

	"github.com/agrifield/advisor/internal/core/domain"
)

// topsisRank ranks candidates by their relative closeness to the
// ideal solution: build the weighted vector-normalized matrix, find
// the per-criterion ideal-best and ideal-worst values, and score each
// candidate as d⁻/(d⁺+d⁻). All criteria are benefit criteria (higher
// raw score is better).
func topsisRank(
	methods []domain.ApplicationMethod,
	matrix map[domain.MethodType]map[string]float64,
	weights map[string]float64,
	criteria []string,
) []domain.Recommendation {
	n := len(methods)

	// Vector normalization denominators per criterion.
	norms := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		sum := 0.0
		for _, m := range methods {
			v := matrix[m.Type][c]
			sum += v * v
		}
		norms[c] = math.Sqrt(sum)
	}

	// Weighted normalized matrix.
	weighted := make([]map[string]float64, n)
	for i, m := range methods {
		row := make(map[string]float64, len(criteria))
		for _, c := range criteria {
			if norms[c] == 0 {
				row[c] = 0
				continue
			}
			row[c] = weights[c] * matrix[m.Type][c] / norms[c]
		}
		weighted[i] = row
	}

	// Ideal best and worst per criterion.
	best := make(map[string]float64, len(criteria))
	worst := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		best[c] = math.Inf(-1)
		worst[c] = math.Inf(1)
		for i := range methods {
			v := weighted[i][c]
			if v > best[c] {
				best[c] = v
			}
			if v < worst[c] {
				worst[c] = v
			}
		}
	}

	recs := make([]domain.Recommendation, n)
	for i, m := range methods {
		var dBest, dWorst float64
		for _, c := range criteria {
			dBest += (weighted[i][c] - best[c]) * (weighted[i][c] - best[c])
			dWorst += (weighted[i][c] - worst[c]) * (weighted[i][c] - worst[c])
		}
		dBest = math.Sqrt(dBest)
		dWorst = math.Sqrt(dWorst)

		closeness := 0.0
		if dBest+dWorst > 0 {
			closeness = dWorst / (dBest + dWorst)
		}

		recs[i] = domain.Recommendation{
			Method: m.Type,
			Total:  closeness,
			Scores: matrix[m.Type],
		}
	}
	return recs
}
