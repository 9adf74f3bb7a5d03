package store

import "errors"

// ErrNotFound is returned when no query matches an id.
var ErrNotFound = errors.New("query not found")

// ErrAmbiguous is returned when an id prefix matches more than one query.
var ErrAmbiguous = errors.New("query id prefix is ambiguous")

// Query is a stored translation.
type Query struct {
	ID      string `json:"id" yaml:"id"`
	Text    string `json:"text" yaml:"text"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
	ASTJSON string `json:"-" yaml:"-"`
	Seq     int64  `json:"seq" yaml:"seq"`
}

// Request records one submission of a query.
type Request struct {
	ID      string `json:"id" yaml:"id"`
	QueryID string `json:"query_id" yaml:"query_id"`
	Seq     int64  `json:"seq" yaml:"seq"`
}

// minPrefix is the shortest id prefix Get accepts.
const minPrefix = 8
