package models

import "time"

// RecordFailure is one rejected line of an uploaded batch.
type RecordFailure struct {
	Line   int    `json:"line"`
	Error  string `json:"error"`
	Record string `json:"record"`
}

// Batch is an upload received by the local sink.
type Batch struct {
	ID         string          `json:"id"`
	ReceivedAt time.Time       `json:"receivedAt"`
	Bytes      int             `json:"bytes"`
	Accepted   int             `json:"accepted"`
	Failures   []RecordFailure `json:"failures,omitempty"`
}
