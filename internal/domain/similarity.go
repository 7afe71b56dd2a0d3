package domain

import (
	"math"
	"strings"
)

// LevenshteinDistance is the classic edit distance with unit-cost
// insertion, deletion and substitution, computed over runes
func LevenshteinDistance(a, b string) int {
	s, t := []rune(a), []rune(b)
	if len(s) == 0 {
		return len(t)
	}
	if len(t) == 0 {
		return len(s)
	}

	prev := make([]int, len(t)+1)
	curr := make([]int, len(t)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s); i++ {
		curr[0] = i
		for j := 1; j <= len(t); j++ {
			if s[i-1] == t[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = min(
				prev[j-1]+1, // substitution
				curr[j-1]+1, // insertion
				prev[j]+1,   // deletion
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(t)]
}

// CalculateSimilarity compares two strings case-insensitively on a 0-100
// scale: equal strings score 100, containment either way scores 80, and
// anything else scores the Levenshtein-derived percentage.
func CalculateSimilarity(a, b string) float64 {
	s1 := strings.ToLower(a)
	s2 := strings.ToLower(b)

	if s1 == s2 {
		return 100
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return 80
	}

	maxLen := max(len([]rune(s1)), len([]rune(s2)))
	distance := LevenshteinDistance(s1, s2)
	similarity := float64(maxLen-distance) / float64(maxLen) * 100
	return math.Max(0, similarity)
}

// substringDistance is the fewest edits needed to turn pattern into some
// substring of text, location ignored (prefix and suffix of text are free)
func substringDistance(pattern, text []rune) int {
	if len(pattern) == 0 {
		return 0
	}
	prev := make([]int, len(text)+1)
	curr := make([]int, len(text)+1)

	for i := 1; i <= len(pattern); i++ {
		curr[0] = i
		for j := 1; j <= len(text); j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j-1]+cost, prev[j]+1, curr[j-1]+1)
		}
		prev, curr = curr, prev
	}

	best := prev[0]
	for _, d := range prev[1:] {
		best = min(best, d)
	}
	return best
}

// FieldScore is the normalized dissimilarity of a query against one field:
// 0 for an exact substring occurrence, 1 for nothing in common
func FieldScore(query, field string) float64 {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return 1
	}
	d := substringDistance(q, []rune(strings.ToLower(field)))
	return math.Min(1, float64(d)/float64(len(q)))
}

// WeightedField is one searchable field and its weight
type WeightedField struct {
	Name   string
	Weight float64
}

// FuzzyScorer scores queries against records with several weighted fields.
// A field participates when its score is within Threshold; the record score
// is the product of score^(weight*norm) over participating fields, so exact
// hits drive it towards 0 and more matching fields lower it further. The
// norm shrinks the pull of fields with many words.
type FuzzyScorer struct {
	Fields    []WeightedField
	Threshold float64
}

// exactFieldScore stands in for a zero field score so the product keeps
// the influence of the other fields
const exactFieldScore = 2.220446049250313e-16

// Score returns the combined score for the given field values (in Fields
// order) and whether any field cleared the threshold
func (s FuzzyScorer) Score(query string, values []string) (float64, bool) {
	total := 1.0
	matched := false
	for i, f := range s.Fields {
		if i >= len(values) {
			break
		}
		fs := FieldScore(query, values[i])
		if fs > s.Threshold {
			continue
		}
		matched = true
		if fs == 0 {
			fs = exactFieldScore
		}
		total *= math.Pow(fs, f.Weight*FieldNorm(values[i]))
	}
	if !matched {
		return 1, false
	}
	return total, true
}

// FieldNorm is 1/sqrt(words in value), rounded to three decimals. Empty
// values count as one word.
func FieldNorm(value string) float64 {
	n := max(len(strings.Fields(value)), 1)
	return math.Round(1000/math.Sqrt(float64(n))) / 1000
}
