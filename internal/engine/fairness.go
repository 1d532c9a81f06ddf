// internal/engine/fairness.go

// Package engine implements the in-process ranking collaborator behind the
// 'engine' executor tag. Its flagship operation is the minimax fairness
// rank used by the meeting-point plan.
package engine

import "sort"

// Candidate is one venue with per-party travel times in minutes.
type Candidate struct {
	Name       string    `json:"name"`
	PartyTimes []float64 `json:"partyTimes"`
	Rating     float64   `json:"rating"`
}

// Ranked is a candidate with its computed fairness metrics.
type Ranked struct {
	Candidate
	WorstTime float64 `json:"worstTime"`
	MeanTime  float64 `json:"meanTime"`
}

// FairnessRank orders candidates by the minimax rule: prefer the venue that
// minimizes the worst-case travel time across all parties. Ties break by
// mean time ascending, then rating descending, then name for stability.
// Candidates with no party times are dropped. Returns at most topK entries;
// topK <= 0 means no bound.
func FairnessRank(candidates []Candidate, topK int) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))
	for _, c := range candidates {
		if len(c.PartyTimes) == 0 {
			continue
		}
		worst, sum := c.PartyTimes[0], 0.0
		for _, t := range c.PartyTimes {
			if t > worst {
				worst = t
			}
			sum += t
		}
		ranked = append(ranked, Ranked{
			Candidate: c,
			WorstTime: worst,
			MeanTime:  sum / float64(len(c.PartyTimes)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].WorstTime != ranked[j].WorstTime {
			return ranked[i].WorstTime < ranked[j].WorstTime
		}
		if ranked[i].MeanTime != ranked[j].MeanTime {
			return ranked[i].MeanTime < ranked[j].MeanTime
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
