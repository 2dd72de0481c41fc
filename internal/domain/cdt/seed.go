package cdt

import (
	"context"
	"fmt"
)

// seedCodes holds the canonical CDT codes from the client documentation.
var seedCodes = []ProcedureCode{
	{
		Code:        "D8010",
		Description: "Limited orthodontic treatment",
		Category:    CategoryOrthodontic,
		IsPrimary:   true,
		IsActive:    true,
		Notes:       "Use for minor alignment / short duration (Express/Mild tier)",
	},
	{
		Code:        "D8080",
		Description: "Comprehensive orthodontic treatment – adolescent dentition",
		Category:    CategoryOrthodontic,
		IsPrimary:   true,
		IsActive:    true,
		Notes:       "Default comprehensive tier for adolescents (Moderate/Complex)",
	},
	{
		Code:        "D8090",
		Description: "Comprehensive orthodontic treatment – adult dentition",
		Category:    CategoryOrthodontic,
		IsPrimary:   true,
		IsActive:    true,
		Notes:       "Default comprehensive tier for adults (Moderate/Complex)",
	},
	{
		Code:        "D0330",
		Description: "Panoramic radiograph",
		Category:    CategoryDiagnostic,
		IsActive:    true,
		Notes:       "Common add-on for insurance documentation",
	},
	{
		Code:        "D0210",
		Description: "Intraoral complete series of radiographic images (FMX)",
		Category:    CategoryDiagnostic,
		IsActive:    true,
		Notes:       "Full mouth x-ray series",
	},
	{
		Code:        "D0350",
		Description: "Oral/facial photographic images",
		Category:    CategoryDiagnostic,
		IsActive:    true,
		Notes:       "Clinical photography",
	},
	{
		Code:        "D0470",
		Description: "Diagnostic casts",
		Category:    CategoryDiagnostic,
		IsActive:    true,
		Notes:       "If applicable",
	},
	{
		Code:        "D8680",
		Description: "Orthodontic retention (completion of active treatment)",
		Category:    CategoryRetention,
		IsActive:    true,
		Notes:       "If billed separately",
	},
}

// seedRules holds the canonical (tier, age_group) selection rules.
var seedRules = []SelectionRule{
	{Tier: TierExpress, AgeGroup: AgeGroupAdolescent, Code: "D8010", Priority: 100, IsActive: true,
		Notes: "Express tier always uses D8010 regardless of age"},
	{Tier: TierExpress, AgeGroup: AgeGroupAdult, Code: "D8010", Priority: 100, IsActive: true,
		Notes: "Express tier always uses D8010 regardless of age"},
	{Tier: TierMild, AgeGroup: AgeGroupAdolescent, Code: "D8010", Priority: 100, IsActive: true,
		Notes: "Mild tier always uses D8010 regardless of age"},
	{Tier: TierMild, AgeGroup: AgeGroupAdult, Code: "D8010", Priority: 100, IsActive: true,
		Notes: "Mild tier always uses D8010 regardless of age"},
	{Tier: TierModerate, AgeGroup: AgeGroupAdolescent, Code: "D8080", Priority: 90, IsActive: true,
		Notes: "Moderate tier for adolescents uses D8080"},
	{Tier: TierModerate, AgeGroup: AgeGroupAdult, Code: "D8090", Priority: 90, IsActive: true,
		Notes: "Moderate tier for adults uses D8090"},
	{Tier: TierComplex, AgeGroup: AgeGroupAdolescent, Code: "D8080", Priority: 80, IsActive: true,
		Notes: "Complex tier for adolescents uses D8080 (same as moderate)"},
	{Tier: TierComplex, AgeGroup: AgeGroupAdult, Code: "D8090", Priority: 80, IsActive: true,
		Notes: "Complex tier for adults uses D8090 (same as moderate)"},
}

// Seed inserts the canonical codes and rules. Codes are upserted; rules are
// only created for pairs that have no active rule yet, so re-running is safe
// and administrative overrides survive.
func (s *Service) Seed(ctx context.Context) (codes, rules int, err error) {
	for i := range seedCodes {
		code := seedCodes[i]
		existing, err := s.repo.GetCode(ctx, code.Code)
		if err != nil {
			return codes, rules, err
		}
		if existing != nil {
			continue
		}
		if err := s.CreateCode(ctx, &code); err != nil {
			return codes, rules, fmt.Errorf("seed code %s: %w", code.Code, err)
		}
		codes++
	}

	for i := range seedRules {
		rule := seedRules[i]
		existing, err := s.repo.GetActiveRule(ctx, rule.Tier, rule.AgeGroup)
		if err != nil {
			return codes, rules, err
		}
		if existing != nil {
			continue
		}
		if err := s.CreateRule(ctx, &rule); err != nil {
			return codes, rules, fmt.Errorf("seed rule (%s, %s): %w", rule.Tier, rule.AgeGroup, err)
		}
		rules++
	}

	return codes, rules, nil
}
