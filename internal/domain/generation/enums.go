package generation

import (
	"fmt"
	"strings"
)

// TreatmentType is the appliance class named in the summary.
type TreatmentType string

const (
	TreatmentClearAligners     TreatmentType = "clear aligners"
	TreatmentTraditionalBraces TreatmentType = "traditional braces"
	TreatmentLingualBraces     TreatmentType = "lingual braces"
	TreatmentRetainers         TreatmentType = "retainers"
)

func ParseTreatmentType(s string) (TreatmentType, error) {
	switch normalize(s) {
	case "clear aligners":
		return TreatmentClearAligners, nil
	case "traditional braces":
		return TreatmentTraditionalBraces, nil
	case "lingual braces":
		return TreatmentLingualBraces, nil
	case "retainers":
		return TreatmentRetainers, nil
	default:
		return "", enumError("treatment_type", s)
	}
}

// Arches names which arches are treated. The treatment flow calls the same
// set "area_treated".
type Arches string

const (
	ArchesUpper Arches = "upper"
	ArchesLower Arches = "lower"
	ArchesBoth  Arches = "both"
)

func ParseArches(field, s string) (Arches, error) {
	switch normalize(s) {
	case "upper":
		return ArchesUpper, nil
	case "lower":
		return ArchesLower, nil
	case "both":
		return ArchesBoth, nil
	default:
		return "", enumError(field, s)
	}
}

type CaseDifficulty string

const (
	DifficultySimple   CaseDifficulty = "simple"
	DifficultyModerate CaseDifficulty = "moderate"
	DifficultyComplex  CaseDifficulty = "complex"
)

func ParseCaseDifficulty(s string) (CaseDifficulty, error) {
	switch normalize(s) {
	case "simple":
		return DifficultySimple, nil
	case "moderate":
		return DifficultyModerate, nil
	case "complex":
		return DifficultyComplex, nil
	default:
		return "", enumError("case_difficulty", s)
	}
}

type MonitoringApproach string

const (
	MonitoringRemote   MonitoringApproach = "remote"
	MonitoringMixed    MonitoringApproach = "mixed"
	MonitoringInClinic MonitoringApproach = "in-clinic"
)

func ParseMonitoringApproach(s string) (MonitoringApproach, error) {
	switch normalize(s) {
	case "remote":
		return MonitoringRemote, nil
	case "mixed":
		return MonitoringMixed, nil
	case "in-clinic":
		return MonitoringInClinic, nil
	default:
		return "", enumError("monitoring_approach", s)
	}
}

type Attachments string

const (
	AttachmentsNone      Attachments = "none"
	AttachmentsSome      Attachments = "some"
	AttachmentsExtensive Attachments = "extensive"
)

func ParseAttachments(s string) (Attachments, error) {
	switch normalize(s) {
	case "none":
		return AttachmentsNone, nil
	case "some":
		return AttachmentsSome, nil
	case "extensive":
		return AttachmentsExtensive, nil
	default:
		return "", enumError("attachments", s)
	}
}

type Audience string

const (
	AudiencePatient  Audience = "patient"
	AudienceInternal Audience = "internal"
)

func ParseAudience(s string) (Audience, error) {
	switch normalize(s) {
	case "patient":
		return AudiencePatient, nil
	case "internal":
		return AudienceInternal, nil
	default:
		return "", enumError("audience", s)
	}
}

type Tone string

const (
	ToneConcise    Tone = "concise"
	ToneCasual     Tone = "casual"
	ToneReassuring Tone = "reassuring"
	ToneClinical   Tone = "clinical"
)

func ParseTone(s string) (Tone, error) {
	switch normalize(s) {
	case "concise":
		return ToneConcise, nil
	case "casual":
		return ToneCasual, nil
	case "reassuring":
		return ToneReassuring, nil
	case "clinical":
		return ToneClinical, nil
	default:
		return "", enumError("tone", s)
	}
}

// CaseTier is the four-bucket tier used by the treatment flow.
type CaseTier string

const (
	TierExpress  CaseTier = "express"
	TierMild     CaseTier = "mild"
	TierModerate CaseTier = "moderate"
	TierComplex  CaseTier = "complex"
)

func ParseCaseTier(s string) (CaseTier, error) {
	switch normalize(s) {
	case "express":
		return TierExpress, nil
	case "mild":
		return TierMild, nil
	case "moderate":
		return TierModerate, nil
	case "complex":
		return TierComplex, nil
	default:
		return "", enumError("tier", s)
	}
}

// InsuranceTier collapses express and mild into one bucket; both map to the
// same limited-treatment rules.
type InsuranceTier string

const (
	InsuranceTierExpressMild InsuranceTier = "express_mild"
	InsuranceTierModerate    InsuranceTier = "moderate"
	InsuranceTierComplex     InsuranceTier = "complex"
)

func ParseInsuranceTier(s string) (InsuranceTier, error) {
	switch normalize(s) {
	case "express_mild":
		return InsuranceTierExpressMild, nil
	case "moderate":
		return InsuranceTierModerate, nil
	case "complex":
		return InsuranceTierComplex, nil
	default:
		return "", enumError("tier", s)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func enumError(field, value string) error {
	return fmt.Errorf("%w: %s: unknown value %q", ErrValidation, field, value)
}
