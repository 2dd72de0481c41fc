package cdt

import "errors"

var (
	// ErrRuleNotFound means no active rule covers the (tier, age_group) pair.
	ErrRuleNotFound = errors.New("no active selection rule for case")
	// ErrInsufficientInput means neither age nor age group was supplied.
	ErrInsufficientInput = errors.New("age group cannot be determined")
	// ErrCodeInactive means a rule points at a missing or deactivated code.
	ErrCodeInactive = errors.New("procedure code missing or inactive")
	// ErrDuplicateActiveRule means a second active rule was attempted for a
	// (tier, age_group) pair that already has one.
	ErrDuplicateActiveRule = errors.New("active rule already exists for tier and age group")

	ErrInvalidTier     = errors.New("invalid tier")
	ErrInvalidAgeGroup = errors.New("invalid age group")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidCode     = errors.New("invalid procedure code")
)
