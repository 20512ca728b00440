package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRelevantLines(t *testing.T) {
	text := strings.Join([]string{
		"!l",
		"chat noise",
		"00:00.000 | a | run started",
		"00:05.123 | b | pickup",
		"00:10.456 | c | run finished",
		"trailing line",
	}, "\n")

	lines, err := ExtractRelevantLines(text)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], StartMarker)
	assert.Contains(t, lines[len(lines)-1], FinishMarker)
}

func TestExtractRelevantLinesUsesFirstMarkers(t *testing.T) {
	text := "started one\nx\nfinished one\nstarted two\nfinished two"
	lines, err := ExtractRelevantLines(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"started one", "x", "finished one"}, lines)
}

func TestExtractRelevantLinesSingleLine(t *testing.T) {
	lines, err := ExtractRelevantLines("started and finished")
	require.NoError(t, err)
	assert.Equal(t, []string{"started and finished"}, lines)
}

func TestExtractRelevantLinesMissingMarkers(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no finish", "00:00.000 started\n00:01.000 | x | go"},
		{"no start", "00:01.000 | x | go\n00:02.000 finished"},
		{"finish before start", "00:02.000 finished\n00:00.000 started"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractRelevantLines(tt.text)
			assert.ErrorIs(t, err, ErrNoCompleteRun)
		})
	}
}

func TestParserCustomMarkers(t *testing.T) {
	p := Parser{StartMarker: "GO", FinishMarker: "DONE"}
	assert.True(t, p.Complete("GO\nDONE"))
	assert.False(t, p.Complete("started\nfinished"))

	lines, err := p.ExtractRelevantLines("x\nGO\ny\nDONE")
	require.NoError(t, err)
	assert.Equal(t, []string{"GO", "y", "DONE"}, lines)
}

func TestTimeToMilliseconds(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"01:02.003", 62003},
		{"00:00.000", 0},
		{"10:00.500", 600500},
		{"00:75.000", 75000},
	}
	for _, tt := range tests {
		got, err := TimeToMilliseconds(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestTimeToMillisecondsMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "01:02", "01:02.xyz", "00:00.000 started", "1:2:3.4", "01:02,003", "+1:02.003", "01:-2.003", "01: 2.003", "01:02.+03"} {
		_, err := TimeToMilliseconds(in)
		assert.ErrorIs(t, err, ErrMalformedTime, in)
	}
}

func TestParseRow(t *testing.T) {
	tick := ParseRow("00:05.123 | 12 | picked up the key")
	assert.Equal(t, "00:05.123", tick.ReadableTime)
	assert.Equal(t, int64(5123), tick.Time)
	assert.Equal(t, "picked up the key", tick.Text)
	assert.True(t, tick.Valid())
}

func TestParseRowWithoutColumns(t *testing.T) {
	tick := ParseRow("00:00.000 started")
	assert.Equal(t, "00:00.000 started", tick.ReadableTime)
	assert.Empty(t, tick.Text)
	assert.False(t, tick.Valid())
	assert.ErrorIs(t, tick.Err, ErrMalformedTime)
}

func TestDeriveFinishTime(t *testing.T) {
	readable, ms, err := DeriveFinishTime([]string{"00:10.500 | x | start", "01:20.250 | x | finish"})
	require.NoError(t, err)
	assert.Equal(t, "01:20.250", readable)
	assert.Equal(t, int64(80250), ms)
}

func TestDeriveFinishTimeNoMatch(t *testing.T) {
	readable, _, err := DeriveFinishTime([]string{"00:00.000 started", "finished without a time"})
	assert.Empty(t, readable)
	assert.ErrorIs(t, err, ErrMalformedTime)

	_, _, err = DeriveFinishTime(nil)
	assert.ErrorIs(t, err, ErrMalformedTime)
}

func TestBuildRun(t *testing.T) {
	raw := RawRun{
		ID:        "a",
		CreatedOn: 1700000000000,
		Rows:      []string{"00:00.000 started", "00:05.123 | x | pickup", "00:10.456 finished"},
	}
	run := BuildRun(raw)

	assert.Len(t, run.Ticks, len(raw.Rows))
	assert.Equal(t, int64(10456), run.FinishTime)
	assert.Equal(t, "00:10.456", run.ReadableFinishTime)
	assert.True(t, run.Valid())
	assert.Equal(t, raw, run.RawRun)
	assert.Equal(t, "pickup", run.Ticks[1].Text)
}

func runWith(id string, finish int64, valid bool) Run {
	r := Run{RawRun: RawRun{ID: id}, FinishTime: finish}
	if !valid {
		r.Err = ErrMalformedTime
	}
	return r
}

func ids(runs []Run) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.ID
	}
	return out
}

func TestSortRunsStable(t *testing.T) {
	in := []Run{
		runWith("slow", 9000, true),
		runWith("tie-1", 5000, true),
		runWith("fast", 1000, true),
		runWith("tie-2", 5000, true),
		runWith("tie-3", 5000, true),
	}
	got := SortRuns(in)
	assert.Equal(t, []string{"fast", "tie-1", "tie-2", "tie-3", "slow"}, ids(got))
	assert.Equal(t, "slow", in[0].ID, "input must not be reordered")
}

func TestSortRunsInvalidLast(t *testing.T) {
	in := []Run{
		runWith("bad-1", 0, false),
		runWith("b", 2000, true),
		runWith("bad-2", 0, false),
		runWith("a", 1000, true),
	}
	assert.Equal(t, []string{"a", "b", "bad-1", "bad-2"}, ids(SortRuns(in)))
}

func TestNewRawRun(t *testing.T) {
	a, err := NewRawRun("00:00.000 started\n00:10.456 finished", 42)
	require.NoError(t, err)
	b, err := NewRawRun("00:00.000 started\n00:10.456 finished", 42)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "runs created in the same millisecond stay distinct")
	assert.Equal(t, int64(42), a.CreatedOn)
	assert.Len(t, a.Rows, 2)
}

func TestFormatMilliseconds(t *testing.T) {
	assert.Equal(t, "01:02.003", FormatMilliseconds(62003))
	assert.Equal(t, "00:00.000", FormatMilliseconds(0))
	assert.Equal(t, "-00:01.500", FormatMilliseconds(-1500))
}
