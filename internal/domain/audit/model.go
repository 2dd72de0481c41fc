package audit

import (
	"time"

	"github.com/google/uuid"
)

// Status marks whether a generation attempt succeeded.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Record is one generation event. The table is append-only: rows are never
// updated or deleted, and the row id doubles as the generation_id returned
// to clients.
type Record struct {
	ID              uuid.UUID              `db:"id" json:"id"`
	UserID          string                 `db:"user_id" json:"user_id"`
	DocumentType    string                 `db:"document_type" json:"document_type"`
	DocumentVersion string                 `db:"document_version" json:"document_version"`
	InputData       map[string]interface{} `db:"input_data" json:"input_data"`
	OutputData      map[string]interface{} `db:"output_data" json:"output_data,omitempty"`
	ModelUsed       string                 `db:"model_used" json:"model_used,omitempty"`
	TokensUsed      *int64                 `db:"tokens_used" json:"tokens_used,omitempty"`
	GenerationMS    *int64                 `db:"generation_time_ms" json:"generation_time_ms,omitempty"`
	Status          Status                 `db:"status" json:"status"`
	ErrorMessage    string                 `db:"error_message" json:"error_message,omitempty"`
	Seed            int                    `db:"seed" json:"seed"`
	IsRegenerated   bool                   `db:"is_regenerated" json:"is_regenerated"`
	PreviousVersion *uuid.UUID             `db:"previous_version_uuid" json:"previous_version_uuid,omitempty"`
	CreatedAt       time.Time              `db:"created_at" json:"created_at"`
}

// Filter narrows audit queries on the read API.
type Filter struct {
	UserID       string
	DocumentType string
	Status       string
	From         *time.Time
	To           *time.Time
}
