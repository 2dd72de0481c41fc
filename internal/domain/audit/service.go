package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bitesoft/docgen/internal/platform/phi"
)

type Service struct {
	repo     Repository
	redactor *phi.Redactor
}

func NewService(repo Repository, redactor *phi.Redactor) *Service {
	return &Service{repo: repo, redactor: redactor}
}

// Record redacts the payloads, assigns id and timestamp, and appends the
// record. The returned record carries the assigned generation id.
func (s *Service) Record(ctx context.Context, rec *Record) (*Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.InputData != nil {
		rec.InputData = s.redactor.Apply(rec.InputData)
	}
	if rec.OutputData != nil {
		rec.OutputData = s.redactor.Apply(rec.OutputData)
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Record, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}
