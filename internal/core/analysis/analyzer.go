// internal/core/analysis/analyzer.go

// Package analysis turns raw query text into a structured QueryAnalysis.
// Extraction is deterministic and never fails: a fact we cannot find is a
// zero value, not an error.
package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/Shubhankar10/Map-Assistant/internal/models"
)

const monthAbbrev = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`

var (
	// The alphabetic currency tokens need a leading boundary so "cars 500"
	// and "hours 2" do not parse as rupee amounts. "₹" is not a word
	// character, so it stays outside the \b group.
	moneyPattern = regexp.MustCompile(`(?i)(₹|\b(?:rs\.?|inr))\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	daysPattern  = regexp.MustCompile(`(?i)\b(\d+)(?:\s*-\s*|\s+)days?\b`)

	// Two date-span shapes: "1-4 Oct" / "1/4 Oct" and "1 Oct to 4 Oct" /
	// "1Oct-4Oct". Raw substrings are kept as-is for downstream parsing.
	dateRangePattern = regexp.MustCompile(`(?i)\b\d{1,2}\s*[-/]\s*\d{1,2}\s*` + monthAbbrev + `[a-z]*`)
	dateSpanPattern  = regexp.MustCompile(`(?i)\b\d{1,2}\s*` + monthAbbrev + `[a-z]*\s*(?:to|-)\s*\d{1,2}\s*` + monthAbbrev + `[a-z]*`)

	peoplePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:people|persons|ppl|friends|guys)\b`)

	tokenSeparators = ",;:.!?"
)

// cityPatterns holds a word-boundary-safe matcher per gazetteer entry so
// "goa" does not match inside another word. Built once; read-only after init.
var cityPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(cityGazetteer))
	for i, name := range cityGazetteer {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	}
	return out
}()

// Analyze extracts structured facts from raw query text. Two calls with the
// same input always return the same record.
func Analyze(raw string) *models.QueryAnalysis {
	normalized := strings.Join(strings.Fields(raw), " ")
	lower := strings.ToLower(normalized)

	a := &models.QueryAnalysis{
		Raw:         normalized,
		Tokens:      tokenize(lower),
		Cities:      []string{},
		POIs:        []string{},
		People:      []string{},
		DateSpans:   []string{},
		TimesOfDay:  []string{},
		Constraints: map[string]interface{}{},
	}

	extractMoney(a, normalized)
	extractDays(a, normalized)
	extractDateSpans(a, normalized)
	extractTimesOfDay(a)
	extractCities(a, lower)
	extractPOIs(a)
	extractPeople(a, lower)
	buildConstraints(a)

	return a
}

func tokenize(lower string) []string {
	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(tokenSeparators, r)
	})
	if tokens == nil {
		tokens = []string{}
	}
	return tokens
}

// extractMoney keeps only the first (leftmost) monetary amount. Multiple
// currency mentions in one query are a known limitation of the single-budget
// assumption, pinned by tests.
func extractMoney(a *models.QueryAnalysis, text string) {
	m := moneyPattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	amount := strings.ReplaceAll(m[2], ",", "")
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return
	}
	a.Money = &value
	a.Currency = strings.TrimSuffix(strings.ToLower(m[1]), ".")
}

func extractDays(a *models.QueryAnalysis, text string) {
	m := daysPattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		a.Days = &n
	}
}

func extractDateSpans(a *models.QueryAnalysis, text string) {
	type span struct{ start, end int }
	var spans []span
	for _, pat := range []*regexp.Regexp{dateRangePattern, dateSpanPattern} {
		for _, loc := range pat.FindAllStringIndex(text, -1) {
			spans = append(spans, span{loc[0], loc[1]})
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	lastEnd := -1
	for _, s := range spans {
		if s.start < lastEnd {
			continue
		}
		a.DateSpans = append(a.DateSpans, text[s.start:s.end])
		lastEnd = s.end
	}
}

func extractTimesOfDay(a *models.QueryAnalysis) {
	present := make(map[string]bool, len(a.Tokens))
	for _, t := range a.Tokens {
		present[t] = true
	}
	for _, t := range timeOfDayTokens {
		if present[t] {
			a.TimesOfDay = append(a.TimesOfDay, t)
		}
	}
}

func extractCities(a *models.QueryAnalysis, lower string) {
	for i, pat := range cityPatterns {
		if pat.MatchString(lower) {
			a.Cities = append(a.Cities, cityGazetteer[i])
		}
	}
}

func extractPOIs(a *models.QueryAnalysis) {
	seen := map[string]bool{}
	for _, t := range a.Tokens {
		if poiKeywords[t] && !seen[t] {
			a.POIs = append(a.POIs, t)
			seen[t] = true
		}
	}
}

func extractPeople(a *models.QueryAnalysis, lower string) {
	for _, t := range a.Tokens {
		switch t {
		case "both", "two":
			a.People = append(a.People, "2")
		case "three":
			a.People = append(a.People, "3")
		case "four":
			a.People = append(a.People, "4")
		}
	}
	for _, m := range peoplePattern.FindAllStringSubmatch(lower, -1) {
		a.People = append(a.People, m[1])
	}
}

func buildConstraints(a *models.QueryAnalysis) {
	if a.Money != nil {
		a.Constraints["budget_value"] = *a.Money
		if a.Currency != "" {
			a.Constraints["budget_currency"] = a.Currency
		}
	}
	if a.Days != nil {
		a.Constraints["days"] = *a.Days
	}
	if len(a.DateSpans) > 0 {
		a.Constraints["date_spans"] = a.DateSpans
	}
}
