package search

import (
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/splits/internal/parse"
)

type Result struct {
	RunID        string
	TickIndex    int
	ReadableTime string
	FinishTime   string
	Text         string
	Snippet      string
}

type Options struct {
	Query string
	Limit int // 0 = no limit
}

// IndexFold returns the byte range of the first case-insensitive match of
// substr in s, or -1, -1. Offsets always refer to s itself, whose runes may
// change byte length when lowered.
func IndexFold(s, substr string) (int, int) {
	n := utf8.RuneCountInString(substr)
	if n == 0 {
		return -1, -1
	}
	for i := range s {
		j, k := i, 0
		for ; k < n && j < len(s); k++ {
			_, size := utf8.DecodeRuneInString(s[j:])
			j += size
		}
		if k < n {
			break
		}
		if strings.EqualFold(s[i:j], substr) {
			return i, j
		}
	}
	return -1, -1
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	idx, matchEnd := IndexFold(text, query)
	if idx < 0 {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	// rune positions of the match
	runePos := utf8.RuneCountInString(text[:idx])
	matchLen := utf8.RuneCountInString(text[idx:matchEnd])
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + matchLen + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+matchLen]) + "<<<" +
		string(runes[runePos+matchLen:end])
	return prefix + snippet + suffix
}

// Search returns one result per tick whose text contains the query,
// case-insensitively. Runs are visited in the order given.
func Search(runs []parse.Run, opts Options) []Result {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil
	}

	var results []Result
	for _, run := range runs {
		for i, t := range run.Ticks {
			if pos, _ := IndexFold(t.Text, query); pos < 0 {
				continue
			}
			results = append(results, Result{
				RunID:        run.ID,
				TickIndex:    i,
				ReadableTime: t.ReadableTime,
				FinishTime:   run.ReadableFinishTime,
				Text:         t.Text,
				Snippet:      makeSnippet(t.Text, query, 30),
			})
			if opts.Limit > 0 && len(results) >= opts.Limit {
				return results
			}
		}
	}
	return results
}
