package cdt

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tier is the severity bucket for an orthodontic case.
type Tier string

const (
	TierExpress  Tier = "express"
	TierMild     Tier = "mild"
	TierModerate Tier = "moderate"
	TierComplex  Tier = "complex"
)

// ParseTier normalizes a raw tier value. The insurance flow submits the
// collapsed "express_mild" bucket, which maps to the express rules.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "express":
		return TierExpress, nil
	case "mild":
		return TierMild, nil
	case "express_mild":
		return TierExpress, nil
	case "moderate":
		return TierModerate, nil
	case "complex":
		return TierComplex, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTier, s)
	}
}

// AgeGroup distinguishes adolescent (<18) from adult dentition.
type AgeGroup string

const (
	AgeGroupAdolescent AgeGroup = "adolescent"
	AgeGroupAdult      AgeGroup = "adult"
)

func ParseAgeGroup(s string) (AgeGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "adolescent":
		return AgeGroupAdolescent, nil
	case "adult":
		return AgeGroupAdult, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAgeGroup, s)
	}
}

// AgeGroupFromAge derives the age group from a patient age in years.
func AgeGroupFromAge(age int) AgeGroup {
	if age < 18 {
		return AgeGroupAdolescent
	}
	return AgeGroupAdult
}

// Category classifies a procedure code.
type Category string

const (
	CategoryOrthodontic Category = "orthodontic"
	CategoryDiagnostic  Category = "diagnostic"
	CategoryRetention   Category = "retention"
)

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orthodontic":
		return CategoryOrthodontic, nil
	case "diagnostic":
		return CategoryDiagnostic, nil
	case "retention":
		return CategoryRetention, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// ProcedureCode is a row in the CDT code table. Codes are never deleted;
// they are deactivated by clearing is_active.
type ProcedureCode struct {
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	Category    Category  `db:"category" json:"category"`
	IsPrimary   bool      `db:"is_primary" json:"is_primary"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SelectionRule maps a (tier, age_group) pair to a primary procedure code.
// At most one active rule may exist per pair.
type SelectionRule struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Tier      Tier      `db:"tier" json:"tier"`
	AgeGroup  AgeGroup  `db:"age_group" json:"age_group"`
	Code      string    `db:"cdt_code" json:"cdt_code"`
	Priority  int       `db:"priority" json:"priority"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DiagnosticAssets flags which diagnostic records accompany an insurance
// summary request.
type DiagnosticAssets struct {
	IntraoralPhotos bool `json:"intraoral_photos"`
	PanoramicXray   bool `json:"panoramic_xray"`
	FMX             bool `json:"fmx"`
}

// Selection is the outcome of a rule lookup: one primary code, zero or more
// diagnostic add-ons, and a human-readable basis note.
type Selection struct {
	Primary *ProcedureCode
	AddOns  []*ProcedureCode
	Notes   string
}
