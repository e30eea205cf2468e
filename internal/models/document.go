// Package models defines the entities persisted by the PDF scan service.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentStatus tracks a document through the processing pipeline.
// completed and failed are terminal.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s DocumentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Document represents an uploaded document and its scan outcome.
type Document struct {
	ID           string         `json:"id"`
	Filename     string         `json:"filename"`
	UploadTime   time.Time      `json:"upload_time"`
	Status       DocumentStatus `json:"status"`
	FileSize     int64          `json:"file_size"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// NewDocument creates a pending document with a generated ID and the
// current UTC timestamp.
func NewDocument(filename string, fileSize int64) *Document {
	return &Document{
		ID:         uuid.NewString(),
		Filename:   filename,
		UploadTime: time.Now().UTC(),
		Status:     StatusPending,
		FileSize:   fileSize,
	}
}

// ValidateTransition checks that moving to next is allowed: a document
// never leaves a terminal state, and the error message is set if and
// only if the new status is failed.
func ValidateTransition(current, next DocumentStatus, errorMessage string) error {
	if !next.Valid() {
		return fmt.Errorf("unknown status %q", next)
	}
	if current.Terminal() {
		return fmt.Errorf("document already %s", current)
	}
	if next == StatusFailed && errorMessage == "" {
		return fmt.Errorf("failed status requires an error message")
	}
	if next != StatusFailed && errorMessage != "" {
		return fmt.Errorf("error message is only valid for failed status")
	}
	return nil
}
