// internal/engine/reviews.go
package engine

// Review is one rated review for a POI.
type Review struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// ReviewStats buckets reviews by sentiment band and carries the mean rating.
type ReviewStats struct {
	Total     int     `json:"total"`
	Positive  int     `json:"positive"`
	Negative  int     `json:"negative"`
	Neutral   int     `json:"neutral"`
	AvgRating float64 `json:"avgRating"`
}

// AggregateReviewStats computes the sentiment buckets over a 1-5 rating
// scale: >= 4 positive, <= 2 negative, everything else neutral.
func AggregateReviewStats(reviews []Review) ReviewStats {
	stats := ReviewStats{Total: len(reviews)}
	if len(reviews) == 0 {
		return stats
	}

	sum := 0.0
	for _, r := range reviews {
		sum += r.Rating
		switch {
		case r.Rating >= 4:
			stats.Positive++
		case r.Rating <= 2:
			stats.Negative++
		default:
			stats.Neutral++
		}
	}
	stats.AvgRating = sum / float64(len(reviews))
	return stats
}
