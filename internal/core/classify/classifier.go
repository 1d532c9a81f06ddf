// internal/core/classify/classifier.go

// Package classify routes a QueryAnalysis to one feature with an auditable
// confidence. This is a heuristic keyword scorer, not a statistical model:
// every point of confidence is traceable to an appended reason string, which
// keeps routing decisions debuggable by reading the output.
package classify

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Shubhankar10/Map-Assistant/internal/models"
)

const (
	baseScore      = 0.6
	boostIncrement = 0.1
	maxBoostHits   = 3
	boostCeiling   = 0.95
	signalCeiling  = 0.99
	soloBonus      = 0.05
	fallbackScore  = 0.3
	fallbackReason = "no feature keywords matched"
)

type candidate struct {
	feature models.Feature
	score   float64
	reasons []string
}

// Classify scores every known feature against the analysis and returns the
// winner. It never fails: a query matching nothing yields FeatureOther.
func Classify(a *models.QueryAnalysis) models.Classification {
	lower := strings.ToLower(a.Raw)

	var candidates []candidate
	for _, feature := range models.AllFeatures {
		r, ok := featureRules[feature]
		if !ok {
			continue
		}
		if c, ok := score(feature, r, lower, a); ok {
			candidates = append(candidates, c)
		}
	}

	if len(candidates) == 0 {
		return models.Classification{
			Feature:    models.FeatureOther,
			Confidence: fallbackScore,
			Reasons:    []string{fallbackReason},
		}
	}

	// Highest score wins; equal scores fall back to the fixed feature
	// ordering so repeated runs always pick the same winner.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].feature.Ordinal() < candidates[j].feature.Ordinal()
	})

	top := candidates[0]
	if len(candidates) == 1 {
		top.score = math.Min(top.score+soloBonus, 1.0)
		top.reasons = append(top.reasons, "only candidate feature")
	}

	return models.Classification{
		Feature:    top.feature,
		Confidence: math.Round(top.score*100) / 100,
		Reasons:    top.reasons,
	}
}

func score(feature models.Feature, r rule, lower string, a *models.QueryAnalysis) (candidate, bool) {
	var mustHits []string
	for _, phrase := range r.must {
		if strings.Contains(lower, phrase) {
			mustHits = append(mustHits, phrase)
		}
	}
	if len(mustHits) == 0 {
		return candidate{}, false
	}

	c := candidate{
		feature: feature,
		score:   baseScore,
		reasons: []string{"matched: " + strings.Join(mustHits, ", ")},
	}

	var boostHits []string
	for _, phrase := range r.boost {
		if strings.Contains(lower, phrase) {
			boostHits = append(boostHits, phrase)
			if len(boostHits) == maxBoostHits {
				break
			}
		}
	}
	if len(boostHits) > 0 {
		c.score += boostIncrement * float64(len(boostHits))
		c.reasons = append(c.reasons, "boosts: "+strings.Join(boostHits, ", "))
	}
	c.score = math.Min(c.score, boostCeiling)

	applySignals(&c, lower, a)

	return c, true
}

// applySignals adds category-specific structural boosts on top of the phrase
// score. Each boost appends its own reason and is clamped below 0.99 so a
// phrase match alone never reaches certainty.
func applySignals(c *candidate, lower string, a *models.QueryAnalysis) {
	add := func(inc float64, reason string) {
		c.score = math.Min(c.score+inc, signalCeiling)
		c.reasons = append(c.reasons, reason)
	}

	switch c.feature {
	case models.FeatureTripSuggestions:
		if len(a.Cities) > 0 {
			add(0.15, fmt.Sprintf("city detected: %s", strings.Join(a.Cities, ", ")))
		} else if strings.Contains(lower, "things to do") {
			add(0.15, "phrase 'things to do' present")
		}
	case models.FeatureItineraryPlanner:
		if a.Days != nil {
			add(0.1, fmt.Sprintf("day count detected: %d", *a.Days))
		} else if hasAny(a.TimesOfDay, "morning", "evening") {
			add(0.1, "time-of-day hint present")
		}
	case models.FeatureMeetingPoint:
		if hasToken(a.Tokens, "between") {
			add(0.1, "token 'between' present")
		}
	case models.FeatureRouteOptimization:
		if len(a.POIs) >= 2 {
			add(0.1, fmt.Sprintf("%d POIs detected", len(a.POIs)))
		} else if hasToken(a.Tokens, "visit") {
			add(0.1, "token 'visit' present")
		}
	case models.FeatureTravelComparison:
		if a.Money != nil || len(a.DateSpans) > 0 {
			add(0.1, "budget or date span detected")
		}
	}
}

func hasToken(tokens []string, want string) bool {
	for _, t := range tokens {
		if t == want {
			return true
		}
	}
	return false
}

func hasAny(have []string, want ...string) bool {
	for _, w := range want {
		if hasToken(have, w) {
			return true
		}
	}
	return false
}
