package search

import (
	"testing"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runs() []parse.Run {
	return []parse.Run{
		parse.BuildRun(parse.RawRun{ID: "a", Rows: []string{
			"00:00.000 | 0 | started",
			"00:04.000 | 1 | Enter Zone 1",
			"00:08.000 | 2 | kill boss",
			"00:09.000 | 3 | finished",
		}}),
		parse.BuildRun(parse.RawRun{ID: "b", Rows: []string{
			"00:00.000 | 0 | started",
			"00:03.000 | 1 | enter zone 1",
			"00:07.000 | 2 | finished",
		}}),
	}
}

func TestSearch(t *testing.T) {
	results := Search(runs(), Options{Query: "zone"})
	require.Len(t, results, 2)

	assert.Equal(t, "a", results[0].RunID)
	assert.Equal(t, 1, results[0].TickIndex)
	assert.Equal(t, "00:04.000", results[0].ReadableTime)
	assert.Equal(t, "00:09.000", results[0].FinishTime)
	assert.Equal(t, "Enter >>>Zone<<< 1", results[0].Snippet)

	assert.Equal(t, "b", results[1].RunID)
}

func TestSearchLimit(t *testing.T) {
	assert.Len(t, Search(runs(), Options{Query: "e", Limit: 3}), 3)
}

func TestSearchEmptyQuery(t *testing.T) {
	assert.Empty(t, Search(runs(), Options{Query: "  "}))
}

func TestMakeSnippet(t *testing.T) {
	assert.Equal(t, "...bcd>>>e<<<fgh...", makeSnippet("abcdefghij", "e", 3))
	assert.Equal(t, "abcdef...", makeSnippet("abcdefghij", "z", 3))
}

func TestSearchNonASCII(t *testing.T) {
	rs := []parse.Run{parse.BuildRun(parse.RawRun{ID: "u", Rows: []string{
		"00:00.000 | x | Ⱥ zone",
		"00:02.000 | x | finished",
	}})}

	results := Search(rs, Options{Query: "zone"})
	require.Len(t, results, 1)
	assert.Equal(t, "Ⱥ >>>zone<<<", results[0].Snippet)

	results = Search(rs, Options{Query: "ⱥ"})
	require.Len(t, results, 1)
	assert.Equal(t, ">>>Ⱥ<<< zone", results[0].Snippet)
}

func TestIndexFold(t *testing.T) {
	tests := []struct {
		s, sub     string
		start, end int
	}{
		{"Enter Zone 1", "zone", 6, 10},
		{"Ⱥ zone", "ZONE", 3, 7},
		{"ȺȺ", "ⱥ", 0, 2},
		{"abc", "abcd", -1, -1},
		{"abc", "", -1, -1},
	}
	for _, tt := range tests {
		start, end := IndexFold(tt.s, tt.sub)
		assert.Equal(t, tt.start, start, tt.s)
		assert.Equal(t, tt.end, end, tt.s)
	}
}
