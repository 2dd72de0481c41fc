package generation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bitesoft/docgen/internal/domain/audit"
	"github.com/bitesoft/docgen/internal/domain/cdt"
	"github.com/bitesoft/docgen/internal/platform/llm"
	"github.com/bitesoft/docgen/internal/platform/textutil"
)

const (
	treatmentTemperature = 0.7
	treatmentMaxTokens   = 2000
	insuranceTemperature = 0.5
	insuranceMaxTokens   = 1500
)

// Completer is the model call the coordinator depends on.
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (*llm.Result, error)
}

// Seeds holds the initial seed per document kind. A regeneration always
// derives its seed from the parent record instead.
type Seeds struct {
	TreatmentSummary int
	InsuranceSummary int
	ProgressNotes    int
}

func (s Seeds) initial(kind string) int {
	switch kind {
	case KindInsuranceSummary:
		return s.InsuranceSummary
	case KindProgressNotes:
		return s.ProgressNotes
	default:
		return s.TreatmentSummary
	}
}

// Service coordinates one generation request: seed resolution, code
// selection, the model call, and the audit write. The audit write is the
// commit point; failures on the way are themselves audited as error records.
type Service struct {
	llm      Completer
	selector *cdt.Service
	audits   *audit.Service
	seeds    Seeds
	log      zerolog.Logger
}

func NewService(completer Completer, selector *cdt.Service, audits *audit.Service, seeds Seeds, log zerolog.Logger) *Service {
	return &Service{
		llm:      completer,
		selector: selector,
		audits:   audits,
		seeds:    seeds,
		log:      log,
	}
}

// resolveSeed picks the seed for this generation. A fresh generation uses
// the configured initial seed for the kind; a regeneration uses the parent's
// seed plus one, so sibling regenerations of the same parent share a seed.
func (s *Service) resolveSeed(ctx context.Context, kind string, isRegen bool, parent *uuid.UUID) (int, error) {
	if !isRegen {
		return s.seeds.initial(kind), nil
	}
	if parent == nil {
		return 0, ErrRegenerationMissingParent
	}
	rec, err := s.audits.Get(ctx, *parent)
	if err != nil {
		return 0, err
	}
	if rec == nil || rec.DocumentType != kind {
		return 0, fmt.Errorf("%w: %s", ErrParentNotFound, parent)
	}
	return rec.Seed + 1, nil
}

// GenerateTreatment runs the treatment summary pipeline for an
// authenticated user.
func (s *Service) GenerateTreatment(ctx context.Context, userID string, in *TreatmentInput) (*TreatmentResponse, error) {
	inputData := in.auditData()

	seed, err := s.resolveSeed(ctx, KindTreatmentSummary, in.IsRegeneration, in.Parent)
	if err != nil {
		s.auditFailure(ctx, userID, KindTreatmentSummary, inputData, s.seeds.initial(KindTreatmentSummary), in.IsRegeneration, in.Parent, err)
		return nil, err
	}

	// Code selection needs a tier; a summary without one ships without
	// codes. Age alone is not enough to pick a rule.
	var selection *cdt.Selection
	if in.Tier != "" {
		selection, err = s.selector.Select(ctx, cdt.SelectionInput{
			Tier:       string(in.Tier),
			PatientAge: in.PatientAge,
		})
		if err != nil {
			s.auditFailure(ctx, userID, KindTreatmentSummary, inputData, seed, in.IsRegeneration, in.Parent, err)
			return nil, err
		}
	}

	res, err := s.llm.Complete(ctx, llm.Request{
		SystemPrompt: treatmentSystemPrompt,
		UserPrompt:   TreatmentUserPrompt(in),
		SchemaName:   KindTreatmentSummary,
		Schema:       treatmentOutputSchema,
		Temperature:  treatmentTemperature,
		MaxTokens:    treatmentMaxTokens,
		Seed:         int64(seed),
	})
	if err != nil {
		s.auditFailure(ctx, userID, KindTreatmentSummary, inputData, seed, in.IsRegeneration, in.Parent, err)
		return nil, err
	}

	doc, err := parseTreatmentDocument(res.Raw)
	if err != nil {
		s.auditFailure(ctx, userID, KindTreatmentSummary, inputData, seed, in.IsRegeneration, in.Parent, err)
		return nil, err
	}

	rec, err := s.audits.Record(ctx, &audit.Record{
		UserID:          userID,
		DocumentType:    KindTreatmentSummary,
		DocumentVersion: DocumentVersion(KindTreatmentSummary),
		InputData:       inputData,
		OutputData:      map[string]interface{}{"title": doc.Title, "summary": doc.Summary},
		ModelUsed:       res.Model,
		TokensUsed:      &res.TokensUsed,
		GenerationMS:    &res.ElapsedMS,
		Status:          audit.StatusSuccess,
		Seed:            seed,
		IsRegenerated:   in.IsRegeneration,
		PreviousVersion: in.Parent,
	})
	if err != nil {
		return nil, err
	}

	resp := &TreatmentResponse{
		Success:  true,
		Document: *doc,
		Metadata: map[string]interface{}{
			"tokens_used":        res.TokensUsed,
			"generation_time_ms": res.ElapsedMS,
			"audience":           string(in.Audience),
			"tone":               string(in.Tone),
			"seed":               seed,
			"document_version":   rec.DocumentVersion,
		},
		UUID:                rec.ID.String(),
		IsRegenerated:       in.IsRegeneration,
		PreviousVersionUUID: parentString(in.Parent),
		Seed:                seed,
	}
	if selection != nil {
		resp.CDTCodes = &TreatmentCDT{
			PrimaryCode:        selection.Primary.Code,
			PrimaryDescription: selection.Primary.Description,
			SuggestedAddOns:    addOnCodes(selection.AddOns),
			Notes:              selection.Notes,
		}
	}
	return resp, nil
}

// GenerateInsurance runs the insurance summary pipeline. The summary text
// is normalized to ASCII and the disclaimer is replaced with the fixed text
// regardless of what the model produced.
func (s *Service) GenerateInsurance(ctx context.Context, userID string, in *InsuranceInput) (*InsuranceResponse, error) {
	inputData := in.auditData()

	seed, err := s.resolveSeed(ctx, KindInsuranceSummary, in.IsRegeneration, in.Parent)
	if err != nil {
		s.auditFailure(ctx, userID, KindInsuranceSummary, inputData, s.seeds.initial(KindInsuranceSummary), in.IsRegeneration, in.Parent, err)
		return nil, err
	}

	selection, err := s.selector.Select(ctx, cdt.SelectionInput{
		Tier:              string(in.Tier),
		AgeGroup:          string(in.AgeGroup),
		Assets:            &in.DiagnosticAssets,
		RetainersIncluded: in.RetainersIncluded,
	})
	if err != nil {
		s.auditFailure(ctx, userID, KindInsuranceSummary, inputData, seed, in.IsRegeneration, in.Parent, err)
		return nil, err
	}

	res, err := s.llm.Complete(ctx, llm.Request{
		SystemPrompt: insuranceSystemPrompt,
		UserPrompt:   InsuranceUserPrompt(in),
		SchemaName:   KindInsuranceSummary,
		Schema:       insuranceOutputSchema,
		Temperature:  insuranceTemperature,
		MaxTokens:    insuranceMaxTokens,
		Seed:         int64(seed),
	})
	if err != nil {
		s.auditFailure(ctx, userID, KindInsuranceSummary, inputData, seed, in.IsRegeneration, in.Parent, err)
		return nil, err
	}

	doc, err := parseInsuranceDocument(res.Raw)
	if err != nil {
		s.auditFailure(ctx, userID, KindInsuranceSummary, inputData, seed, in.IsRegeneration, in.Parent, err)
		return nil, err
	}
	doc.InsuranceSummary = textutil.NormalizeToASCII(doc.InsuranceSummary)
	doc.Disclaimer = Disclaimer

	rec, err := s.audits.Record(ctx, &audit.Record{
		UserID:          userID,
		DocumentType:    KindInsuranceSummary,
		DocumentVersion: DocumentVersion(KindInsuranceSummary),
		InputData:       inputData,
		OutputData:      map[string]interface{}{"insurance_summary": doc.InsuranceSummary, "disclaimer": doc.Disclaimer},
		ModelUsed:       res.Model,
		TokensUsed:      &res.TokensUsed,
		GenerationMS:    &res.ElapsedMS,
		Status:          audit.StatusSuccess,
		Seed:            seed,
		IsRegenerated:   in.IsRegeneration,
		PreviousVersion: in.Parent,
	})
	if err != nil {
		return nil, err
	}

	codes := []InsuranceCDTCode{{
		Code:        selection.Primary.Code,
		Description: selection.Primary.Description,
		Category:    selection.Primary.Category,
	}}
	for _, addOn := range selection.AddOns {
		codes = append(codes, InsuranceCDTCode{
			Code:        addOn.Code,
			Description: addOn.Description,
			Category:    addOn.Category,
		})
	}

	return &InsuranceResponse{
		Success:  true,
		Document: *doc,
		CDTCodes: codes,
		Metadata: map[string]interface{}{
			"tokens_used":        res.TokensUsed,
			"generation_time_ms": res.ElapsedMS,
			"tier":               string(in.Tier),
			"age_group":          string(in.AgeGroup),
			"seed":               seed,
			"document_version":   rec.DocumentVersion,
			"cdt_notes":          selection.Notes,
		},
		UUID:                rec.ID.String(),
		IsRegenerated:       in.IsRegeneration,
		PreviousVersionUUID: parentString(in.Parent),
		Seed:                seed,
	}, nil
}

// auditFailure records a failed generation attempt. The original error is
// what the caller sees; a failed audit write here is logged and swallowed.
func (s *Service) auditFailure(ctx context.Context, userID, kind string, inputData map[string]interface{}, seed int, isRegen bool, parent *uuid.UUID, cause error) {
	if _, err := s.audits.Record(ctx, &audit.Record{
		UserID:          userID,
		DocumentType:    kind,
		DocumentVersion: DocumentVersion(kind),
		InputData:       inputData,
		Status:          audit.StatusError,
		ErrorMessage:    cause.Error(),
		Seed:            seed,
		IsRegenerated:   isRegen,
		PreviousVersion: parent,
	}); err != nil {
		s.log.Error().Err(err).Str("document_type", kind).Msg("failed to write error audit record")
	}
}

func addOnCodes(addOns []*cdt.ProcedureCode) []string {
	codes := make([]string, 0, len(addOns))
	for _, c := range addOns {
		codes = append(codes, c.Code)
	}
	return codes
}

func parentString(parent *uuid.UUID) *string {
	if parent == nil {
		return nil
	}
	s := parent.String()
	return &s
}
