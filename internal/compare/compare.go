// Package compare lines up the checkpoints of two runs.
package compare

import "github.com/Zuo-Peng/splits/internal/parse"

// Split pairs the ticks at one row index. A or B is nil when that run has
// fewer rows.
type Split struct {
	Index   int
	A       *parse.Tick
	B       *parse.Tick
	Diff    int64 // B.Time - A.Time
	HasDiff bool
}

// Text returns the checkpoint description, preferring A's.
func (s Split) Text() string {
	if s.A != nil && s.A.Text != "" {
		return s.A.Text
	}
	if s.B != nil {
		return s.B.Text
	}
	return ""
}

// Compare pairs the ticks of a and b by row index.
func Compare(a, b parse.Run) []Split {
	n := max(len(a.Ticks), len(b.Ticks))
	splits := make([]Split, n)
	for i := 0; i < n; i++ {
		s := Split{Index: i}
		if i < len(a.Ticks) {
			s.A = &a.Ticks[i]
		}
		if i < len(b.Ticks) {
			s.B = &b.Ticks[i]
		}
		if s.A != nil && s.B != nil && s.A.Valid() && s.B.Valid() {
			s.Diff = s.B.Time - s.A.Time
			s.HasDiff = true
		}
		splits[i] = s
	}
	return splits
}
