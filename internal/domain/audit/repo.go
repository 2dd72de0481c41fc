package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for the audit trail. There is no
// update or delete: Append is the only write.
type Repository interface {
	Append(ctx context.Context, rec *Record) error
	// GetByID returns (nil, nil) when no record matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	// List returns matching records newest first plus the unpaged total.
	List(ctx context.Context, f Filter, limit, offset int) ([]*Record, int, error)
}
