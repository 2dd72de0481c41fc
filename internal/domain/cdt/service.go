package cdt

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SelectionInput carries the normalized case attributes the selector needs.
// Tier accepts the collapsed "express_mild" bucket used by the insurance
// flow. AgeGroup wins over PatientAge when both are present.
type SelectionInput struct {
	Tier              string
	AgeGroup          string
	PatientAge        *int
	Assets            *DiagnosticAssets
	RetainersIncluded bool
}

// Select resolves the primary procedure code for the case and, when
// diagnostic assets are flagged, the matching add-on codes. The result is
// deterministic with respect to the rule table snapshot at call time.
func (s *Service) Select(ctx context.Context, in SelectionInput) (*Selection, error) {
	tier, err := ParseTier(in.Tier)
	if err != nil {
		return nil, err
	}

	ageGroup, err := resolveAgeGroup(in)
	if err != nil {
		return nil, err
	}

	rule, err := s.repo.GetActiveRule(ctx, tier, ageGroup)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, fmt.Errorf("%w: tier=%s age_group=%s", ErrRuleNotFound, tier, ageGroup)
	}

	primary, err := s.repo.GetCode(ctx, rule.Code)
	if err != nil {
		return nil, err
	}
	if primary == nil || !primary.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrCodeInactive, rule.Code)
	}

	addOns, err := s.resolveAddOns(ctx, in.Assets)
	if err != nil {
		return nil, err
	}

	// Retainers are bundled into the primary treatment; D8680 is only billed
	// separately, which is out of scope here.
	return &Selection{
		Primary: primary,
		AddOns:  addOns,
		Notes:   fmt.Sprintf("Selected based on tier=%s, age_group=%s", tier, ageGroup),
	}, nil
}

func resolveAgeGroup(in SelectionInput) (AgeGroup, error) {
	if in.AgeGroup != "" {
		return ParseAgeGroup(in.AgeGroup)
	}
	if in.PatientAge != nil {
		return AgeGroupFromAge(*in.PatientAge), nil
	}
	return "", ErrInsufficientInput
}

// assetCodes fixes the add-on emission order. One flagged asset, one code;
// unflagged assets add nothing.
var assetCodes = []struct {
	flagged func(a *DiagnosticAssets) bool
	code    string
}{
	{func(a *DiagnosticAssets) bool { return a.IntraoralPhotos }, "D0350"},
	{func(a *DiagnosticAssets) bool { return a.PanoramicXray }, "D0330"},
	{func(a *DiagnosticAssets) bool { return a.FMX }, "D0210"},
}

func (s *Service) resolveAddOns(ctx context.Context, assets *DiagnosticAssets) ([]*ProcedureCode, error) {
	if assets == nil {
		return nil, nil
	}

	var addOns []*ProcedureCode
	for _, ac := range assetCodes {
		if !ac.flagged(assets) {
			continue
		}
		code, err := s.repo.GetCode(ctx, ac.code)
		if err != nil {
			return nil, err
		}
		if code == nil || !code.IsActive {
			continue
		}
		addOns = append(addOns, code)
	}
	return addOns, nil
}

// CreateCode validates and persists a new procedure code.
func (s *Service) CreateCode(ctx context.Context, code *ProcedureCode) error {
	if code.Code == "" || code.Description == "" {
		return fmt.Errorf("%w: code and description are required", ErrInvalidCode)
	}
	if _, err := ParseCategory(string(code.Category)); err != nil {
		return err
	}
	return s.repo.SaveCode(ctx, code)
}

// CreateRule validates a new selection rule. The referenced code must exist
// and be active, and no other active rule may cover the same pair.
func (s *Service) CreateRule(ctx context.Context, rule *SelectionRule) error {
	if err := s.validateRule(ctx, rule); err != nil {
		return err
	}
	if rule.IsActive {
		existing, err := s.repo.GetActiveRule(ctx, rule.Tier, rule.AgeGroup)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: (%s, %s)", ErrDuplicateActiveRule, rule.Tier, rule.AgeGroup)
		}
	}
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	return s.repo.CreateRule(ctx, rule)
}

// UpdateRule validates and persists changes to an existing rule.
func (s *Service) UpdateRule(ctx context.Context, rule *SelectionRule) error {
	if err := s.validateRule(ctx, rule); err != nil {
		return err
	}
	if rule.IsActive {
		existing, err := s.repo.GetActiveRule(ctx, rule.Tier, rule.AgeGroup)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != rule.ID {
			return fmt.Errorf("%w: (%s, %s)", ErrDuplicateActiveRule, rule.Tier, rule.AgeGroup)
		}
	}
	return s.repo.UpdateRule(ctx, rule)
}

func (s *Service) validateRule(ctx context.Context, rule *SelectionRule) error {
	if _, err := ParseTier(string(rule.Tier)); err != nil {
		return err
	}
	if _, err := ParseAgeGroup(string(rule.AgeGroup)); err != nil {
		return err
	}
	code, err := s.repo.GetCode(ctx, rule.Code)
	if err != nil {
		return err
	}
	if code == nil || !code.IsActive {
		return fmt.Errorf("%w: %s", ErrCodeInactive, rule.Code)
	}
	return nil
}

func (s *Service) ListCodes(ctx context.Context, activeOnly bool) ([]*ProcedureCode, error) {
	return s.repo.ListCodes(ctx, activeOnly)
}

func (s *Service) ListRules(ctx context.Context, activeOnly bool) ([]*SelectionRule, error) {
	return s.repo.ListRules(ctx, activeOnly)
}
