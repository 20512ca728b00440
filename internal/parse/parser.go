package parse

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	StartMarker  = "started"
	FinishMarker = "finished"

	// rowDelimiter separates the columns of a row: time | unused | text.
	rowDelimiter = " | "
)

var (
	ErrNoCompleteRun = errors.New("no complete run detected")
	ErrMalformedTime = errors.New("malformed time")
)

// finishTimeRe matches the MM:SS.mmm time on a finish line. The separator
// before the milliseconds is deliberately any character.
var finishTimeRe = regexp.MustCompile(`\d\d:\d\d.\d\d\d`)

// Parser holds the marker tokens that bound the relevant region of a paste.
type Parser struct {
	StartMarker  string
	FinishMarker string
}

// Default is the parser for the standard "started"/"finished" log format.
var Default = Parser{StartMarker: StartMarker, FinishMarker: FinishMarker}

// Complete reports whether text contains both markers.
func (p Parser) Complete(text string) bool {
	return strings.Contains(text, p.StartMarker) && strings.Contains(text, p.FinishMarker)
}

// ExtractRelevantLines returns the lines from the first one containing the
// start marker through the first one containing the finish marker, inclusive.
func (p Parser) ExtractRelevantLines(text string) ([]string, error) {
	lines := strings.Split(text, "\n")
	first := slices.IndexFunc(lines, func(l string) bool { return strings.Contains(l, p.StartMarker) })
	last := slices.IndexFunc(lines, func(l string) bool { return strings.Contains(l, p.FinishMarker) })
	if first < 0 || last < 0 {
		return nil, ErrNoCompleteRun
	}
	if last < first {
		return nil, fmt.Errorf("%w: %q appears before %q", ErrNoCompleteRun, p.FinishMarker, p.StartMarker)
	}

	out := make([]string, last-first+1)
	copy(out, lines[first:last+1])
	return out, nil
}

// NewRawRun extracts the relevant lines of text into a new RawRun with a
// fresh identity.
func (p Parser) NewRawRun(text string, createdOn int64) (RawRun, error) {
	rows, err := p.ExtractRelevantLines(text)
	if err != nil {
		return RawRun{}, err
	}
	return RawRun{
		ID:        uuid.NewString(),
		CreatedOn: createdOn,
		Rows:      rows,
	}, nil
}

func ExtractRelevantLines(text string) ([]string, error) {
	return Default.ExtractRelevantLines(text)
}

func NewRawRun(text string, createdOn int64) (RawRun, error) {
	return Default.NewRawRun(text, createdOn)
}

// TimeToMilliseconds converts MM:SS.mmm to milliseconds. Fields are not
// range checked, so "00:75.000" is 75000.
func TimeToMilliseconds(time string) (int64, error) {
	parts := strings.FieldsFunc(time, func(r rune) bool { return r == ':' || r == '.' })
	if len(parts) != 3 || strings.Count(time, ":") != 1 || strings.Count(time, ".") != 1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, time)
	}

	var nums [3]int64
	for i, p := range parts {
		if strings.TrimLeft(p, "0123456789") != "" {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, time)
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, time)
		}
		nums[i] = n
	}
	return nums[0]*60000 + nums[1]*1000 + nums[2], nil
}

// ParseRow splits a row of the form "MM:SS.mmm | <unused> | <text>".
func ParseRow(row string) Tick {
	fields := strings.Split(row, rowDelimiter)
	tick := Tick{ReadableTime: fields[0]}
	if len(fields) > 2 {
		tick.Text = fields[2]
	}
	tick.Time, tick.Err = TimeToMilliseconds(tick.ReadableTime)
	return tick
}

// DeriveFinishTime reads the finish time from the last row.
func DeriveFinishTime(rows []string) (string, int64, error) {
	if len(rows) == 0 {
		return "", 0, fmt.Errorf("%w: no rows", ErrMalformedTime)
	}
	readable := finishTimeRe.FindString(rows[len(rows)-1])
	if readable == "" {
		return "", 0, fmt.Errorf("%w: no time on last row", ErrMalformedTime)
	}
	ms, err := TimeToMilliseconds(readable)
	if err != nil {
		return readable, 0, err
	}
	return readable, ms, nil
}

// BuildRun derives ticks and the finish time from a RawRun.
func BuildRun(raw RawRun) Run {
	ticks := make([]Tick, len(raw.Rows))
	for i, row := range raw.Rows {
		ticks[i] = ParseRow(row)
	}

	run := Run{RawRun: raw, Ticks: ticks}
	run.ReadableFinishTime, run.FinishTime, run.Err = DeriveFinishTime(raw.Rows)
	return run
}

// SortRuns returns runs ordered by ascending finish time. The sort is
// stable and runs without a valid finish time go last.
func SortRuns(runs []Run) []Run {
	sorted := slices.Clone(runs)
	slices.SortStableFunc(sorted, func(a, b Run) int {
		switch {
		case a.Valid() && !b.Valid():
			return -1
		case !a.Valid() && b.Valid():
			return 1
		case !a.Valid() && !b.Valid():
			return 0
		}
		switch {
		case a.FinishTime < b.FinishTime:
			return -1
		case a.FinishTime > b.FinishTime:
			return 1
		}
		return 0
	})
	return sorted
}

// FormatMilliseconds renders ms as MM:SS.mmm.
func FormatMilliseconds(ms int64) string {
	if ms < 0 {
		return "-" + FormatMilliseconds(-ms)
	}
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
