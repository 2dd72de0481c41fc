package confirmation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bitesoft/docgen/internal/domain/audit"
	"github.com/bitesoft/docgen/internal/platform/phi"
)

// GenerationLookup resolves a generation id to its audit record.
type GenerationLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*audit.Record, error)
}

type Service struct {
	repo        Repository
	generations GenerationLookup
	redactor    *phi.Redactor
}

func NewService(repo Repository, generations GenerationLookup, redactor *phi.Redactor) *Service {
	return &Service{repo: repo, generations: generations, redactor: redactor}
}

// Confirm records clinician sign-off for a successful generation. The
// document type and schema version are carried over from the audit record,
// and the payload goes through the redaction policy before persistence.
func (s *Service) Confirm(ctx context.Context, generationID uuid.UUID, userID string, payload map[string]interface{}, notes string) (*Confirmation, error) {
	rec, err := s.generations.Get(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrGenerationNotFound, generationID)
	}
	if rec.Status != audit.StatusSuccess {
		return nil, fmt.Errorf("%w: %s", ErrGenerationNotSuccessful, generationID)
	}

	existing, err := s.repo.GetByGenerationID(ctx, generationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyConfirmed, generationID)
	}

	if payload == nil {
		payload = map[string]interface{}{}
	}

	conf := &Confirmation{
		ID:               uuid.New(),
		GenerationID:     generationID,
		UserID:           userID,
		DocumentType:     rec.DocumentType,
		DocumentVersion:  rec.DocumentVersion,
		ConfirmedAt:      time.Now().UTC(),
		ConfirmedPayload: s.redactor.Apply(payload),
		Notes:            notes,
	}

	// The unique index on generation_id backs this up under races; a lost
	// race surfaces as ErrAlreadyConfirmed from Create.
	if err := s.repo.Create(ctx, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// IsConfirmed reports whether a confirmation exists for the generation.
func (s *Service) IsConfirmed(ctx context.Context, generationID uuid.UUID) (bool, error) {
	conf, err := s.repo.GetByGenerationID(ctx, generationID)
	if err != nil {
		return false, err
	}
	return conf != nil, nil
}

func (s *Service) Get(ctx context.Context, generationID uuid.UUID) (*Confirmation, error) {
	return s.repo.GetByGenerationID(ctx, generationID)
}
