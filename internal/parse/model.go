package parse

import "time"

// RawRun is the persisted form of a run: the relevant lines of a paste.
type RawRun struct {
	ID        string   `json:"id" yaml:"id"`
	CreatedOn int64    `json:"createdOn" yaml:"created_on"` // unix milliseconds
	Rows      []string `json:"rows" yaml:"rows"`
}

// CreatedAt returns CreatedOn as a time.Time.
func (r RawRun) CreatedAt() time.Time {
	return time.UnixMilli(r.CreatedOn)
}

// Tick is one timestamped checkpoint of a run, derived from one row.
type Tick struct {
	ReadableTime string `json:"readableTime" yaml:"readable_time"` // MM:SS.mmm
	Time         int64  `json:"time" yaml:"time"`                  // milliseconds
	Text         string `json:"text" yaml:"text"`
	Err          error  `json:"-" yaml:"-"`
}

// Valid reports whether the tick's time parsed.
func (t Tick) Valid() bool {
	return t.Err == nil
}

// Run is a RawRun plus the timing data derived from its rows.
// It is computed on read and never persisted.
type Run struct {
	RawRun             `yaml:",inline"`
	FinishTime         int64  `json:"finishTime" yaml:"finish_time"`
	ReadableFinishTime string `json:"readableFinishTime" yaml:"readable_finish_time"`
	Ticks              []Tick `json:"ticks" yaml:"ticks"`
	Err                error  `json:"-" yaml:"-"` // set when the finish time could not be derived
}

// Valid reports whether the run has a usable finish time.
func (r Run) Valid() bool {
	return r.Err == nil
}
