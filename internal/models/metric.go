package models

import (
	"time"

	"github.com/google/uuid"
)

// Conventional operation names for recorded metrics.
const (
	OpUpload = "upload"
	OpScan   = "scan"
)

// Metric records the duration of a single timed operation.
type Metric struct {
	ID         string            `json:"id"`
	Operation  string            `json:"operation"`
	DurationMS float64           `json:"duration_ms"`
	Timestamp  time.Time         `json:"timestamp"`
	DocumentID string            `json:"document_id,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// NewMetric creates a metric with a generated ID and the current UTC
// timestamp. documentID may be empty for operations not tied to one
// document.
func NewMetric(operation string, duration time.Duration, documentID string, metadata map[string]string) *Metric {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &Metric{
		ID:         uuid.NewString(),
		Operation:  operation,
		DurationMS: float64(duration) / float64(time.Millisecond),
		Timestamp:  time.Now().UTC(),
		DocumentID: documentID,
		Metadata:   metadata,
	}
}
