// internal/engine/itinerary.go
package engine

// ClusterByDay splits spots into day buckets for an itinerary. Spots are
// ranked first so the strongest candidates land on day one, then dealt
// round-robin so every day gets a comparable share. days <= 0 is treated
// as a single day.
func ClusterByDay(spots []Spot, days int) [][]Spot {
	if days <= 0 {
		days = 1
	}

	ranked := ScoreAndRankSpots(spots, 0)
	buckets := make([][]Spot, days)
	for i := range buckets {
		buckets[i] = []Spot{}
	}
	for i, s := range ranked {
		day := i % days
		buckets[day] = append(buckets[day], s)
	}
	return buckets
}
