package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Zuo-Peng/splits/internal/compare"
	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/search"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorFinish  = "\033[1;32m" // bold green
	colorSlower  = "\033[1;31m" // bold red
	colorFaster  = "\033[1;32m"
	colorInvalid = "\033[1;33m" // bold yellow
	colorDim     = "\033[2m"
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// KillToken marks ticks hidden by the kill filter.
const KillToken = "kill"

// InvalidTime is shown in place of a time that could not be parsed.
const InvalidTime = "--:--.---"

type Options struct {
	HideKills bool
	Highlight *regexp.Regexp // checkpoints whose text matches get a bold time
	Width     int            // wrap width (0 = no wrap)
	Query     string         // terms to highlight in tick text
}

// DefaultHighlight matches course and zone checkpoints.
var DefaultHighlight = regexp.MustCompile(`(?i)(course|zone)`)

// VisibleTicks applies the kill filter. The input is never modified.
func VisibleTicks(ticks []parse.Tick, hideKills bool) []parse.Tick {
	if !hideKills {
		return ticks
	}
	out := make([]parse.Tick, 0, len(ticks))
	for _, t := range ticks {
		if !strings.Contains(t.Text, KillToken) {
			out = append(out, t)
		}
	}
	return out
}

// FinishLabel returns the readable finish time, or a placeholder for runs
// whose finish time could not be derived.
func FinishLabel(run parse.Run) string {
	if !run.Valid() {
		return InvalidTime
	}
	return run.ReadableFinishTime
}

// DeltaLabel formats the gap to the fastest run in milliseconds.
func DeltaLabel(delta int64) string {
	return fmt.Sprintf("+%d", delta)
}

func TickTimeLabel(t parse.Tick) string {
	if !t.Valid() {
		return InvalidTime
	}
	return t.ReadableTime
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	for _, term := range strings.Fields(query) {
		var b strings.Builder
		rest := text
		for {
			start, end := search.IndexFold(rest, term)
			if start < 0 {
				break
			}
			b.WriteString(rest[:start])
			b.WriteString(colorBoldRed + rest[start:end] + colorReset)
			rest = rest[end:]
		}
		b.WriteString(rest)
		text = b.String()
	}
	return text
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

type lineWriter struct {
	b     strings.Builder
	width int
}

func (w *lineWriter) line(s string) {
	for _, wl := range wrapLine(s, w.width) {
		w.b.WriteString(wl)
		w.b.WriteString("\n")
	}
}

// Run renders the detail view of a run: its finish time, creation time and
// one line per visible checkpoint. delta is printed when hasDelta is set.
func Run(run parse.Run, delta int64, hasDelta bool, opts Options) string {
	w := &lineWriter{width: opts.Width}
	hl := opts.Highlight
	if hl == nil {
		hl = DefaultHighlight
	}

	header := colorFinish + FinishLabel(run) + colorReset
	if run.Valid() {
		header += fmt.Sprintf(" %s(%d ms)%s", colorDim, run.FinishTime, colorReset)
	} else {
		header += fmt.Sprintf(" %sinvalid: %v%s", colorInvalid, run.Err, colorReset)
	}
	if hasDelta && delta > 0 {
		header += " " + colorSlower + DeltaLabel(delta) + colorReset
	}
	w.line(header)
	w.line(fmt.Sprintf("%s%s  %s%s", colorDim, run.CreatedAt().Local().Format(time.DateTime), run.ID, colorReset))
	w.line("")

	ticks := VisibleTicks(run.Ticks, opts.HideKills)
	for _, t := range ticks {
		label := runewidth.FillRight(TickTimeLabel(t), len(InvalidTime))
		if hl.MatchString(t.Text) {
			label = colorBold + label + colorReset
		} else if !t.Valid() {
			label = colorDim + label + colorReset
		}
		w.line(fmt.Sprintf("  %s  %s", label, highlightKeywords(t.Text, opts.Query)))
	}

	if hidden := len(run.Ticks) - len(ticks); hidden > 0 {
		w.line(fmt.Sprintf("%s  (%d kills hidden)%s", colorDim, hidden, colorReset))
	}
	return w.b.String()
}

// Comparison renders two runs side by side, split by split.
func Comparison(a, b parse.Run, splits []compare.Split, width int) string {
	w := &lineWriter{width: width}
	w.line(fmt.Sprintf("%sA%s %s  %s%s%s", colorBold, colorReset, FinishLabel(a), colorDim, a.ID, colorReset))
	w.line(fmt.Sprintf("%sB%s %s  %s%s%s", colorBold, colorReset, FinishLabel(b), colorDim, b.ID, colorReset))
	w.line("")

	const textW = 28
	for _, s := range splits {
		text := s.Text()
		if runewidth.StringWidth(text) > textW {
			text = runewidth.Truncate(text, textW, "…")
		}
		line := fmt.Sprintf("  %s  %s  %s  %s",
			runewidth.FillRight(text, textW),
			sideLabel(s.A),
			sideLabel(s.B),
			diffLabel(s),
		)
		w.line(line)
	}

	if a.Valid() && b.Valid() {
		gap := b.FinishTime - a.FinishTime
		w.line("")
		w.line("  " + runewidth.FillRight("finish", textW) + "  " + a.ReadableFinishTime + "  " + b.ReadableFinishTime + "  " +
			diffLabel(compare.Split{Diff: gap, HasDiff: true}) +
			fmt.Sprintf(" %s(%s)%s", colorDim, parse.FormatMilliseconds(gap), colorReset))
	}
	return w.b.String()
}

func sideLabel(t *parse.Tick) string {
	if t == nil {
		return runewidth.FillRight("", len(InvalidTime))
	}
	return TickTimeLabel(*t)
}

func diffLabel(s compare.Split) string {
	if !s.HasDiff {
		return ""
	}
	switch {
	case s.Diff > 0:
		return colorSlower + fmt.Sprintf("+%d", s.Diff) + colorReset
	case s.Diff < 0:
		return colorFaster + fmt.Sprintf("%d", s.Diff) + colorReset
	}
	return colorDim + "±0" + colorReset
}
