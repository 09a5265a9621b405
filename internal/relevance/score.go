// Package relevance implements the platform's text relevance policies.
// Scoring is tiered, not additive: the first satisfied tier decides the
// score. Queries are lower-cased and trimmed; candidate text is only
// lower-cased. Words are whitespace-separated.
package relevance

import "strings"

// Score tiers, highest first.
const (
	ScoreExactTitle    = 1.0
	ScoreTitlePhrase   = 0.8
	ScoreTitleAllWords = 0.6
	ScoreDescPhrase    = 0.5
	ScoreHalfOverlap   = 0.4
	ScoreSomeOverlap   = 0.3
	ScorePartialWord   = 0.2
	ScoreNone          = 0.0
)

// TitleOnlyScore rates a title under the strict policy used for podcasts
// and episodes: exact title match 1.0, whole-query phrase match 0.8,
// anything else 0.0.
func TitleOnlyScore(query, title string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(title)

	if t == q {
		return ScoreExactTitle
	}
	if strings.Contains(t, q) {
		return ScoreTitlePhrase
	}
	return ScoreNone
}

// Score rates a title/description pair under the lenient policy used for
// the social and content categories. Tiers, first match wins:
//
//	1.0 title equals query
//	0.8 title contains query as a phrase
//	0.6 title contains every query word
//	0.5 description contains query as a phrase
//	0.4 at least half the query words appear in title or description
//	0.3 any query word appears in title or description
//	0.2 a query word partially overlaps a title or description word
//	0.0 no match
func Score(query, title, description string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(title)
	d := strings.ToLower(description)

	if t == q {
		return ScoreExactTitle
	}
	if strings.Contains(t, q) {
		return ScoreTitlePhrase
	}

	queryWords := wordSet(q)
	titleWords := wordSet(t)
	descWords := wordSet(d)

	if len(queryWords) > 0 && isSubset(queryWords, titleWords) {
		return ScoreTitleAllWords
	}

	if strings.Contains(d, q) {
		return ScoreDescPhrase
	}

	titleOverlap := overlapRatio(queryWords, titleWords)
	descOverlap := overlapRatio(queryWords, descWords)

	if titleOverlap >= 0.5 || descOverlap >= 0.5 {
		return ScoreHalfOverlap
	}
	if titleOverlap > 0 || descOverlap > 0 {
		return ScoreSomeOverlap
	}

	for qw := range queryWords {
		for tw := range titleWords {
			if strings.Contains(tw, qw) || strings.Contains(qw, tw) {
				return ScorePartialWord
			}
		}
		for dw := range descWords {
			if strings.Contains(dw, qw) || strings.Contains(qw, dw) {
				return ScorePartialWord
			}
		}
	}

	return ScoreNone
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isSubset(sub, super map[string]struct{}) bool {
	for w := range sub {
		if _, ok := super[w]; !ok {
			return false
		}
	}
	return true
}

// overlapRatio reports the fraction of query words present in target.
func overlapRatio(query, target map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	n := 0
	for w := range query {
		if _, ok := target[w]; ok {
			n++
		}
	}
	return float64(n) / float64(len(query))
}
