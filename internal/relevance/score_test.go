package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleOnlyScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		title string
		want  float64
	}{
		{"exact match", "tech talk", "Tech Talk", ScoreExactTitle},
		{"exact match case folded", "TECH TALK", "tech talk", ScoreExactTitle},
		{"query trimmed before compare", "  tech talk  ", "Tech Talk", ScoreExactTitle},
		{"phrase inside title", "tech talk", "The Tech Talk Show", ScoreTitlePhrase},
		{"phrase at start", "daily", "Daily News Brief", ScoreTitlePhrase},
		{"reordered words do not phrase match", "talk tech", "Tech Talk", ScoreNone},
		{"word subset is not enough", "tech show", "The Tech Talk Show", ScoreNone},
		{"empty title", "tech", "", ScoreNone},
		{"no match", "cooking", "Tech Talk", ScoreNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleOnlyScore(tt.query, tt.title)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name  string
		query string
		title string
		desc  string
		want  float64
	}{
		{
			"exact title match", "morning routine", "Morning Routine", "", ScoreExactTitle,
		},
		{
			"title phrase match", "morning routine", "My Morning Routine Tips", "", ScoreTitlePhrase,
		},
		{
			"all query words in title, any order", "show daily", "The Daily Show", "", ScoreTitleAllWords,
		},
		{
			"description phrase match", "morning routine", "Episode 12", "all about my morning routine", ScoreDescPhrase,
		},
		{
			"half of query words in title", "alpha beta gamma delta", "alpha beta elsewhere", "", ScoreHalfOverlap,
		},
		{
			"half of query words in description", "alpha beta gamma delta", "unrelated", "beta delta topics", ScoreHalfOverlap,
		},
		{
			"some query words overlap", "alpha beta gamma", "alpha unrelated words", "", ScoreSomeOverlap,
		},
		{
			"partial word overlap in title", "tech news", "fintech weekly", "", ScorePartialWord,
		},
		{
			"partial word overlap in description", "casting news", "unrelated", "podcasting tips", ScorePartialWord,
		},
		{
			"single word inside a longer title string is a phrase match", "tech", "fintech weekly", "", ScoreTitlePhrase,
		},
		{
			"query word contains candidate word", "podcasting", "pod roundup", "", ScorePartialWord,
		},
		{
			"no match at all", "gardening", "Tech Talk", "weekly technology news", ScoreNone,
		},
		{
			"title equality wins over description phrase", "tech talk", "tech talk", "tech talk transcript", ScoreExactTitle,
		},
		{
			"duplicate query words collapse", "go go podcast", "go podcast", "", ScoreTitleAllWords,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.query, tt.title, tt.desc)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
