// internal/core/analysis/analyzer_test.go
package analysis

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_Deterministic(t *testing.T) {
	raw := "Compare flights and hotels from Mumbai to Goa 1-4 Oct under ₹8,000 for 2 people"

	first := Analyze(raw)
	second := Analyze(raw)

	assert.True(t, reflect.DeepEqual(first, second))
}

func TestAnalyze_Cities(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		cities []string
	}{
		{"single city", "Suggest a trip to Jaipur", []string{"jaipur"}},
		{"case insensitive", "things to do in GOA", []string{"goa"}},
		{"multi-word entry", "weekend in New Delhi", []string{"new delhi", "delhi"}},
		{"no substring match", "Goan beaches", []string{}},
		{"multiple cities", "Mumbai to Goa", []string{"mumbai", "goa"}},
		{"none", "plan something fun", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			assert.Equal(t, tt.cities, a.Cities)
		})
	}
}

func TestAnalyze_Money(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		amount   float64
		currency string
	}{
		{"rupee symbol", "under ₹8,000", 8000, "₹"},
		{"rs prefix", "budget Rs. 15000", 15000, "rs"},
		{"inr prefix", "INR 2500.50 max", 2500.50, "inr"},
		{"commas stripped", "₹1,20,000 total", 120000, "₹"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			require.NotNil(t, a.Money)
			assert.Equal(t, tt.amount, *a.Money)
			assert.Equal(t, tt.currency, a.Currency)
			assert.Equal(t, tt.amount, a.Constraints["budget_value"])
		})
	}
}

func TestAnalyze_MoneyAbsent(t *testing.T) {
	a := Analyze("suggest a cheap getaway")

	assert.Nil(t, a.Money)
	assert.Empty(t, a.Currency)
	assert.NotContains(t, a.Constraints, "budget_value")
}

/// Pins the single-budget assumption: when a query mentions two amounts only
// the leftmost one is kept.
func TestAnalyze_MoneyFirstMatchOnly(t *testing.T) {
	a := Analyze("hotels under ₹3,000 and flights under ₹8,000")

	require.NotNil(t, a.Money)
	assert.Equal(t, 3000.0, *a.Money)
}

// Currency tokens embedded in other words are not amounts.
func TestAnalyze_MoneyWordBoundary(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *float64
	}{
		{"rs inside cars", "compare cars 500 km apart", nil},
		{"rs inside hours", "open hours 2 to 5", nil},
		{"standalone rs", "a room under rs 500", floatPtr(500)},
		{"rupee sign no space", "tickets under ₹750", floatPtr(750)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			if tt.want == nil {
				assert.Nil(t, a.Money)
			} else {
				require.NotNil(t, a.Money)
				assert.Equal(t, *tt.want, *a.Money)
			}
		})
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestAnalyze_Days(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		days int
	}{
		{"hyphenated", "a 3-day Jaipur trip", 3},
		{"spaced", "plan 5 days in Goa", 5},
		{"singular", "a 1 day visit", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			require.NotNil(t, a.Days)
			assert.Equal(t, tt.days, *a.Days)
			assert.Equal(t, tt.days, a.Constraints["days"])
		})
	}
}

func TestAnalyze_DateSpans(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		spans []string
	}{
		{"numeric range", "Goa 1-4 Oct under budget", []string{"1-4 Oct"}},
		{"to form", "travel 2 Nov to 5 Nov", []string{"2 Nov to 5 Nov"}},
		{"none", "sometime next month", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			assert.Equal(t, tt.spans, a.DateSpans)
		})
	}
}

func TestAnalyze_POIsAndTimesOfDay(t *testing.T) {
	a := Analyze("visit the fort, a temple and another fort in the morning or evening")

	// Unique, in token order.
	assert.Equal(t, []string{"fort", "temple"}, a.POIs)
	assert.Equal(t, []string{"morning", "evening"}, a.TimesOfDay)
}

func TestAnalyze_People(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		people []string
	}{
		{"numeric", "for 4 people", []string{"4"}},
		{"friends", "3 friends visiting", []string{"3"}},
		{"both keyword", "fair for both of us", []string{"2"}},
		{"word number", "three of us", []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Analyze(tt.raw)
			assert.Equal(t, tt.people, a.People)
		})
	}
}

func TestAnalyze_Tokenization(t *testing.T) {
	a := Analyze("  Plan   my trip, please!  ")

	assert.Equal(t, "Plan my trip, please!", a.Raw)
	assert.Equal(t, []string{"plan", "my", "trip", "please"}, a.Tokens)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	a := Analyze("")

	assert.Equal(t, "", a.Raw)
	assert.Empty(t, a.Tokens)
	assert.Empty(t, a.Cities)
	assert.Empty(t, a.POIs)
	assert.Nil(t, a.Money)
	assert.Nil(t, a.Days)
	assert.Empty(t, a.Constraints)
}
