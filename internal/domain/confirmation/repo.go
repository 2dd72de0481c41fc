package confirmation

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for confirmations. Create must
// return ErrAlreadyConfirmed on a duplicate generation_id so races lost at
// the database still surface correctly.
type Repository interface {
	Create(ctx context.Context, conf *Confirmation) error
	// GetByGenerationID returns (nil, nil) when no confirmation exists.
	GetByGenerationID(ctx context.Context, generationID uuid.UUID) (*Confirmation, error)
}
