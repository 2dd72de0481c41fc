package confirmation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Confirmation marks clinician sign-off on a generated document. At most one
// confirmation may exist per generation, enforced by a unique index on
// generation_id.
type Confirmation struct {
	ID               uuid.UUID              `db:"id" json:"id"`
	GenerationID     uuid.UUID              `db:"generation_id" json:"generation_id"`
	UserID           string                 `db:"user_id" json:"user_id"`
	DocumentType     string                 `db:"document_type" json:"document_type"`
	DocumentVersion  string                 `db:"document_version" json:"document_version"`
	ConfirmedAt      time.Time              `db:"confirmed_at" json:"confirmed_at"`
	ConfirmedPayload map[string]interface{} `db:"confirmed_payload" json:"confirmed_payload"`
	Notes            string                 `db:"notes" json:"notes,omitempty"`
	// PDFGeneratedAt is written by the external PDF subsystem, never here.
	PDFGeneratedAt *time.Time `db:"pdf_generated_at" json:"pdf_generated_at,omitempty"`
}

var (
	// ErrAlreadyConfirmed means a confirmation already exists for the generation.
	ErrAlreadyConfirmed = errors.New("document already confirmed")
	// ErrGenerationNotFound means the generation id matches no audit record.
	ErrGenerationNotFound = errors.New("generation not found")
	// ErrGenerationNotSuccessful means the generation exists but failed.
	ErrGenerationNotSuccessful = errors.New("generation was not successful")
)
