// internal/engine/ranking.go
package engine

import "sort"

// Spot is a POI candidate with the popularity signals used for ranking.
type Spot struct {
	Name       string  `json:"name"`
	Rating     float64 `json:"rating"`
	Popularity float64 `json:"popularity"`
}

// ScoreAndRankSpots orders spots by popularity then rating, both descending,
// with name as the stable tail. Returns at most topK entries; topK <= 0
// means no bound.
func ScoreAndRankSpots(spots []Spot, topK int) []Spot {
	ranked := make([]Spot, len(spots))
	copy(ranked, spots)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Popularity != ranked[j].Popularity {
			return ranked[i].Popularity > ranked[j].Popularity
		}
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Name < ranked[j].Name
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// Option is one transport or stay alternative in a comparison.
type Option struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	DurationMin float64 `json:"durationMin"`
	Rating      float64 `json:"rating"`
}

// RankOptionsByValue orders options by price ascending, then duration
// ascending, then rating descending. Options with zero price sort after
// priced ones so missing data never wins a comparison.
func RankOptionsByValue(options []Option, topK int) []Option {
	ranked := make([]Option, len(options))
	copy(ranked, options)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].Price, ranked[j].Price
		if (pi > 0) != (pj > 0) {
			return pi > 0
		}
		if pi != pj {
			return pi < pj
		}
		if ranked[i].DurationMin != ranked[j].DurationMin {
			return ranked[i].DurationMin < ranked[j].DurationMin
		}
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Name < ranked[j].Name
	})

	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
