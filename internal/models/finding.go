package models

import "github.com/google/uuid"

// FindingType tags the kind of sensitive data detected. The set is
// closed but extensible: new types are added here together with a
// matcher in the scanner registry.
type FindingType string

const (
	FindingSSN   FindingType = "ssn"
	FindingEmail FindingType = "email"
)

// Finding is a located, typed, confidence-scored match of a sensitive
// data pattern. The matched text itself is never stored.
type Finding struct {
	ID         string      `json:"id"`
	DocumentID string      `json:"document_id"`
	Type       FindingType `json:"finding_type"`
	Location   string      `json:"location"` // e.g. "page 3"
	Confidence float64     `json:"confidence"`
}

// NewFinding creates a finding with a generated ID. Confidence must be
// in [0, 1]; exact pattern matches report 1.0.
func NewFinding(documentID string, t FindingType, location string, confidence float64) *Finding {
	return &Finding{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Type:       t,
		Location:   location,
		Confidence: confidence,
	}
}
