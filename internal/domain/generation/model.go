package generation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bitesoft/docgen/internal/domain/cdt"
)

// Document kinds. The kind keys the audit trail, the seed configuration,
// and the schema version registry.
const (
	KindTreatmentSummary = "treatment_summary"
	KindInsuranceSummary = "insurance_summary"
	KindProgressNotes    = "progress_notes"
)

// documentVersions pins the output schema version per document kind. The
// version rides on every audit record and confirmation.
var documentVersions = map[string]string{
	KindTreatmentSummary: "1.0",
	KindInsuranceSummary: "1.0",
	KindProgressNotes:    "1.0",
}

// DocumentVersion returns the schema version for a document kind.
func DocumentVersion(kind string) string {
	if v, ok := documentVersions[kind]; ok {
		return v
	}
	return "1.0"
}

// TreatmentRequest is the wire form of a treatment summary request. All
// fields are optional; absent values take the documented defaults.
type TreatmentRequest struct {
	IsRegeneration      bool   `json:"is_regeneration"`
	PreviousVersionUUID string `json:"previous_version_uuid"`
	Tier                string `json:"tier"`
	TreatmentType       string `json:"treatment_type"`
	AreaTreated         string `json:"area_treated"`
	DurationRange       string `json:"duration_range"`
	CaseDifficulty      string `json:"case_difficulty"`
	MonitoringApproach  string `json:"monitoring_approach"`
	Attachments         string `json:"attachments"`
	WhiteningIncluded   bool   `json:"whitening_included"`
	DentistNote         string `json:"dentist_note"`
	Audience            string `json:"audience"`
	Tone                string `json:"tone"`
	PatientName         string `json:"patient_name"`
	PracticeName        string `json:"practice_name"`
	PatientAge          *int   `json:"patient_age"`
}

// TreatmentInput is the validated, default-filled form carried through the
// pipeline. Tier stays empty when the caller omitted it; code selection is
// then skipped.
type TreatmentInput struct {
	IsRegeneration     bool
	Parent             *uuid.UUID
	Tier               CaseTier
	TreatmentType      TreatmentType
	AreaTreated        Arches
	DurationRange      string
	CaseDifficulty     CaseDifficulty
	MonitoringApproach MonitoringApproach
	Attachments        Attachments
	WhiteningIncluded  bool
	DentistNote        string
	Audience           Audience
	Tone               Tone
	PatientName        string
	PracticeName       string
	PatientAge         *int
}

// Normalize validates the request and applies defaults.
func (r *TreatmentRequest) Normalize() (*TreatmentInput, error) {
	in := &TreatmentInput{
		IsRegeneration:    r.IsRegeneration,
		WhiteningIncluded: r.WhiteningIncluded,
		PatientName:       r.PatientName,
		PracticeName:      r.PracticeName,
		PatientAge:        r.PatientAge,
		DentistNote:       r.DentistNote,
	}

	var err error
	if in.Parent, err = parseParent(r.PreviousVersionUUID); err != nil {
		return nil, err
	}
	if r.Tier != "" {
		if in.Tier, err = ParseCaseTier(r.Tier); err != nil {
			return nil, err
		}
	}
	if in.TreatmentType, err = ParseTreatmentType(orDefault(r.TreatmentType, string(TreatmentClearAligners))); err != nil {
		return nil, err
	}
	if in.AreaTreated, err = ParseArches("area_treated", orDefault(r.AreaTreated, string(ArchesBoth))); err != nil {
		return nil, err
	}
	if in.CaseDifficulty, err = ParseCaseDifficulty(orDefault(r.CaseDifficulty, string(DifficultyModerate))); err != nil {
		return nil, err
	}
	if in.MonitoringApproach, err = ParseMonitoringApproach(orDefault(r.MonitoringApproach, string(MonitoringMixed))); err != nil {
		return nil, err
	}
	if in.Attachments, err = ParseAttachments(orDefault(r.Attachments, string(AttachmentsSome))); err != nil {
		return nil, err
	}
	if in.Audience, err = ParseAudience(orDefault(r.Audience, string(AudiencePatient))); err != nil {
		return nil, err
	}
	if in.Tone, err = ParseTone(orDefault(r.Tone, string(ToneReassuring))); err != nil {
		return nil, err
	}

	in.DurationRange = orDefault(r.DurationRange, "4-6 months")
	if len(in.DurationRange) > 50 {
		return nil, fieldError("duration_range", "must be at most 50 characters")
	}
	if len(r.DentistNote) > 500 {
		return nil, fieldError("dentist_note", "must be at most 500 characters")
	}
	if len(r.PatientName) > 200 {
		return nil, fieldError("patient_name", "must be at most 200 characters")
	}
	if len(r.PracticeName) > 200 {
		return nil, fieldError("practice_name", "must be at most 200 characters")
	}
	if r.PatientAge != nil && (*r.PatientAge < 0 || *r.PatientAge > 120) {
		return nil, fieldError("patient_age", "must be between 0 and 120")
	}
	return in, nil
}

// auditData is the redactable input payload written to the audit trail.
func (in *TreatmentInput) auditData() map[string]interface{} {
	m := map[string]interface{}{
		"is_regeneration":     in.IsRegeneration,
		"tier":                string(in.Tier),
		"treatment_type":      string(in.TreatmentType),
		"area_treated":        string(in.AreaTreated),
		"duration_range":      in.DurationRange,
		"case_difficulty":     string(in.CaseDifficulty),
		"monitoring_approach": string(in.MonitoringApproach),
		"attachments":         string(in.Attachments),
		"whitening_included":  in.WhiteningIncluded,
		"audience":            string(in.Audience),
		"tone":                string(in.Tone),
	}
	if in.Parent != nil {
		m["previous_version_uuid"] = in.Parent.String()
	}
	if in.PatientName != "" {
		m["patient_name"] = in.PatientName
	}
	if in.PracticeName != "" {
		m["practice_name"] = in.PracticeName
	}
	if in.PatientAge != nil {
		m["patient_age"] = *in.PatientAge
	}
	if in.DentistNote != "" {
		m["dentist_note"] = in.DentistNote
	}
	return m
}

// InsuranceRequest is the wire form of an insurance summary request.
type InsuranceRequest struct {
	IsRegeneration      bool                 `json:"is_regeneration"`
	PreviousVersionUUID string               `json:"previous_version_uuid"`
	Tier                string               `json:"tier"`
	Arches              string               `json:"arches"`
	AgeGroup            string               `json:"age_group"`
	RetainersIncluded   *bool                `json:"retainers_included"`
	DiagnosticAssets    cdt.DiagnosticAssets `json:"diagnostic_assets"`
	MonitoringApproach  string               `json:"monitoring_approach"`
	Notes               string               `json:"notes"`
}

type InsuranceInput struct {
	IsRegeneration     bool
	Parent             *uuid.UUID
	Tier               InsuranceTier
	Arches             Arches
	AgeGroup           cdt.AgeGroup
	RetainersIncluded  bool
	DiagnosticAssets   cdt.DiagnosticAssets
	MonitoringApproach MonitoringApproach
	Notes              string
}

// Normalize validates the request and applies defaults. Tier and age_group
// have no defaults and are required.
func (r *InsuranceRequest) Normalize() (*InsuranceInput, error) {
	in := &InsuranceInput{
		IsRegeneration:    r.IsRegeneration,
		DiagnosticAssets:  r.DiagnosticAssets,
		RetainersIncluded: true,
		Notes:             r.Notes,
	}
	if r.RetainersIncluded != nil {
		in.RetainersIncluded = *r.RetainersIncluded
	}

	var err error
	if in.Parent, err = parseParent(r.PreviousVersionUUID); err != nil {
		return nil, err
	}
	if r.Tier == "" {
		return nil, fieldError("tier", "is required")
	}
	if in.Tier, err = ParseInsuranceTier(r.Tier); err != nil {
		return nil, err
	}
	if in.Arches, err = ParseArches("arches", orDefault(r.Arches, string(ArchesBoth))); err != nil {
		return nil, err
	}
	if r.AgeGroup == "" {
		return nil, fieldError("age_group", "is required")
	}
	if in.AgeGroup, err = cdt.ParseAgeGroup(r.AgeGroup); err != nil {
		return nil, fieldError("age_group", fmt.Sprintf("unknown value %q", r.AgeGroup))
	}
	if in.MonitoringApproach, err = ParseMonitoringApproach(orDefault(r.MonitoringApproach, string(MonitoringMixed))); err != nil {
		return nil, err
	}
	if len(r.Notes) > 500 {
		return nil, fieldError("notes", "must be at most 500 characters")
	}
	return in, nil
}

func (in *InsuranceInput) auditData() map[string]interface{} {
	m := map[string]interface{}{
		"is_regeneration":     in.IsRegeneration,
		"tier":                string(in.Tier),
		"arches":              string(in.Arches),
		"age_group":           string(in.AgeGroup),
		"retainers_included":  in.RetainersIncluded,
		"monitoring_approach": string(in.MonitoringApproach),
		"diagnostic_assets": map[string]interface{}{
			"intraoral_photos": in.DiagnosticAssets.IntraoralPhotos,
			"panoramic_xray":   in.DiagnosticAssets.PanoramicXray,
			"fmx":              in.DiagnosticAssets.FMX,
		},
	}
	if in.Parent != nil {
		m["previous_version_uuid"] = in.Parent.String()
	}
	if in.Notes != "" {
		m["notes"] = in.Notes
	}
	return m
}

// TreatmentDocument is the model-produced document body.
type TreatmentDocument struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// InsuranceDocument is the model-produced document body. Disclaimer is
// overwritten with the fixed text before the response is served.
type InsuranceDocument struct {
	InsuranceSummary string `json:"insurance_summary"`
	Disclaimer       string `json:"disclaimer"`
}

// TreatmentCDT is the code suggestion block on the treatment response.
type TreatmentCDT struct {
	PrimaryCode        string   `json:"primary_code"`
	PrimaryDescription string   `json:"primary_description"`
	SuggestedAddOns    []string `json:"suggested_add_ons"`
	Notes              string   `json:"notes"`
}

// InsuranceCDTCode is one code entry on the insurance response.
type InsuranceCDTCode struct {
	Code        string       `json:"code"`
	Description string       `json:"description"`
	Category    cdt.Category `json:"category"`
}

// TreatmentResponse is the API envelope for a treatment summary.
type TreatmentResponse struct {
	Success             bool                   `json:"success"`
	Document            TreatmentDocument      `json:"document"`
	CDTCodes            *TreatmentCDT          `json:"cdt_codes"`
	Metadata            map[string]interface{} `json:"metadata"`
	UUID                string                 `json:"uuid"`
	IsRegenerated       bool                   `json:"is_regenerated"`
	PreviousVersionUUID *string                `json:"previous_version_uuid"`
	Seed                int                    `json:"seed"`
}

// InsuranceResponse is the API envelope for an insurance summary.
type InsuranceResponse struct {
	Success             bool                   `json:"success"`
	Document            InsuranceDocument      `json:"document"`
	CDTCodes            []InsuranceCDTCode     `json:"cdt_codes"`
	Metadata            map[string]interface{} `json:"metadata"`
	UUID                string                 `json:"uuid"`
	IsRegenerated       bool                   `json:"is_regenerated"`
	PreviousVersionUUID *string                `json:"previous_version_uuid"`
	Seed                int                    `json:"seed"`
}

func parseParent(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fieldError("previous_version_uuid", "must be a valid UUID")
	}
	return &id, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func fieldError(field, problem string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, problem)
}
