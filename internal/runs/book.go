// Package runs holds the run book: the list of stored runs together with
// the paste buffer that feeds it.
package runs

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Zuo-Peng/splits/internal/parse"
	"github.com/Zuo-Peng/splits/internal/store"
	"github.com/google/uuid"
)

var (
	ErrRunNotFound = errors.New("run not found")
	ErrAmbiguousID = errors.New("ambiguous run id")
)

// Book is not safe for concurrent use.
type Book struct {
	store  store.Store
	parser parse.Parser
	now    func() time.Time

	raw    []parse.RawRun
	built  map[string]parse.Run
	buffer string
}

type Option func(*Book)

func WithParser(p parse.Parser) Option {
	return func(b *Book) { b.parser = p }
}

// WithClock overrides the clock used for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// New loads the stored runs into a book.
func New(s store.Store, opts ...Option) (*Book, error) {
	b := &Book{
		store:  s,
		parser: parse.Default,
		now:    time.Now,
		built:  make(map[string]parse.Run),
	}
	for _, opt := range opts {
		opt(b)
	}

	raw, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}
	b.raw = raw
	return b, nil
}

// Input handles the full current text of the paste surface. When it holds
// a complete run the run is stored and the buffer cleared; otherwise the
// text stays buffered and accepted is false.
func (b *Book) Input(text string) (run parse.Run, accepted bool, err error) {
	b.buffer = text
	if !b.parser.Complete(text) {
		return parse.Run{}, false, nil
	}

	run, err = b.Add(text)
	if err != nil {
		if errors.Is(err, parse.ErrNoCompleteRun) {
			return parse.Run{}, false, nil
		}
		return parse.Run{}, false, err
	}
	b.buffer = ""
	return run, true, nil
}

// Buffer returns text that has not yet formed a complete run.
func (b *Book) Buffer() string {
	return b.buffer
}

// Add parses text into a new run and persists the whole list.
func (b *Book) Add(text string) (parse.Run, error) {
	raw, err := b.parser.NewRawRun(text, b.now().UnixMilli())
	if err != nil {
		return parse.Run{}, err
	}
	stored, err := b.Append(raw)
	if err != nil {
		return parse.Run{}, err
	}
	return b.build(stored), nil
}

// Append stores an already extracted run and returns it as stored. A run
// whose id is empty or already taken gets a fresh one.
func (b *Book) Append(raw parse.RawRun) (parse.RawRun, error) {
	if raw.ID == "" || b.hasID(raw.ID) {
		raw.ID = uuid.NewString()
	}
	next := append(slices.Clone(b.raw), raw)
	if err := b.store.Save(next); err != nil {
		return parse.RawRun{}, fmt.Errorf("save runs: %w", err)
	}
	b.raw = next
	return raw, nil
}

func (b *Book) hasID(id string) bool {
	return slices.ContainsFunc(b.raw, func(r parse.RawRun) bool { return r.ID == id })
}

// Remove deletes exactly the run with id.
func (b *Book) Remove(id string) error {
	i := slices.IndexFunc(b.raw, func(r parse.RawRun) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	next := slices.Delete(slices.Clone(b.raw), i, i+1)
	if err := b.store.Save(next); err != nil {
		return fmt.Errorf("save runs: %w", err)
	}
	b.raw = next
	delete(b.built, id)
	return nil
}

// Raw returns the stored runs in insertion order.
func (b *Book) Raw() []parse.RawRun {
	return slices.Clone(b.raw)
}

func (b *Book) Len() int {
	return len(b.raw)
}

// Runs returns every run, derived and sorted by finish time.
func (b *Book) Runs() []parse.Run {
	out := make([]parse.Run, len(b.raw))
	for i, raw := range b.raw {
		out[i] = b.build(raw)
	}
	return parse.SortRuns(out)
}

func (b *Book) Get(id string) (parse.Run, error) {
	for _, raw := range b.raw {
		if raw.ID == id {
			return b.build(raw), nil
		}
	}
	return parse.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
}

// Lookup resolves a full id or a unique id prefix.
func (b *Book) Lookup(prefix string) (parse.Run, error) {
	if prefix == "" {
		return parse.Run{}, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	if run, err := b.Get(prefix); err == nil {
		return run, nil
	}
	var match *parse.RawRun
	for i, raw := range b.raw {
		if strings.HasPrefix(raw.ID, prefix) {
			if match != nil {
				return parse.Run{}, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
			}
			match = &b.raw[i]
		}
	}
	if match == nil {
		return parse.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	}
	return b.build(*match), nil
}

// Contains reports whether a run with exactly these rows is stored.
func (b *Book) Contains(rows []string) bool {
	return slices.ContainsFunc(b.raw, func(r parse.RawRun) bool { return slices.Equal(r.Rows, rows) })
}

// Best returns the fastest valid run.
func (b *Book) Best() (parse.Run, bool) {
	sorted := b.Runs()
	if len(sorted) == 0 || !sorted[0].Valid() {
		return parse.Run{}, false
	}
	return sorted[0], true
}

// Delta returns how far run finished behind the fastest run.
func (b *Book) Delta(run parse.Run) (int64, bool) {
	best, ok := b.Best()
	if !ok || !run.Valid() {
		return 0, false
	}
	return run.FinishTime - best.FinishTime, true
}

func (b *Book) build(raw parse.RawRun) parse.Run {
	if run, ok := b.built[raw.ID]; ok {
		return run
	}
	run := parse.BuildRun(raw)
	b.built[raw.ID] = run
	return run
}
