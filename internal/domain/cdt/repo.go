package cdt

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for procedure codes and selection
// rules. Lookup methods return (nil, nil) when no row matches.
type Repository interface {
	GetCode(ctx context.Context, code string) (*ProcedureCode, error)
	ListCodes(ctx context.Context, activeOnly bool) ([]*ProcedureCode, error)
	SaveCode(ctx context.Context, code *ProcedureCode) error

	// GetActiveRule returns the winning active rule for the pair: highest
	// priority, most recently updated on ties.
	GetActiveRule(ctx context.Context, tier Tier, ageGroup AgeGroup) (*SelectionRule, error)
	GetRule(ctx context.Context, id uuid.UUID) (*SelectionRule, error)
	ListRules(ctx context.Context, activeOnly bool) ([]*SelectionRule, error)
	CreateRule(ctx context.Context, rule *SelectionRule) error
	UpdateRule(ctx context.Context, rule *SelectionRule) error
}
