// internal/substitute/matcher.go
package substitute

import (
	"sort"
	"strings"
	"unicode"

	"github.com/pharmadash/backend-go/internal/domain"
)

// DefaultThreshold is the minimum overlap score for a candidate to count as
// a substitute.
const DefaultThreshold = 0.5

// Match is a candidate medicine with its composition-overlap score.
type Match struct {
	Medicine domain.Medicine `json:"medicine"`
	Score    float64         `json:"score"`
}

// Score returns the fraction of the query composition's distinct words that
// also appear in the candidate composition. This is a weak lexical
// heuristic with no clinical validation; treat results as suggestions only.
func Score(query, candidate string) float64 {
	queryWords := tokenize(query)
	if len(queryWords) == 0 {
		return 0
	}
	candidateWords := tokenize(candidate)

	shared := 0
	for w := range queryWords {
		if _, ok := candidateWords[w]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(queryWords))
}

// Rank scores every candidate against the query composition and returns
// those at or above threshold, best first. Name breaks score ties.
func Rank(query string, candidates []domain.Medicine, threshold float64) []Match {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var matches []Match
	for _, m := range candidates {
		score := Score(query, m.Composition)
		if score >= threshold {
			matches = append(matches, Match{Medicine: m, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].Medicine.Name < matches[j].Medicine.Name
		}
		return matches[i].Score > matches[j].Score
	})

	return matches
}

func tokenize(s string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
