package generation

import (
	"fmt"
	"strings"

	"github.com/bitesoft/docgen/internal/domain/cdt"
)

// TreatmentUserPrompt renders the case details as a stable key/value block.
// The same input always yields a byte-identical prompt.
func TreatmentUserPrompt(in *TreatmentInput) string {
	parts := []string{
		"Generate a treatment summary with the following case details:",
		"",
	}

	if in.PatientName != "" {
		parts = append(parts, fmt.Sprintf("**Patient Name:** %s", in.PatientName))
	}
	if in.PracticeName != "" {
		parts = append(parts, fmt.Sprintf("**Practice Name:** %s", in.PracticeName))
	}
	if in.PatientAge != nil {
		parts = append(parts, fmt.Sprintf("**Patient Age:** %d (%s)", *in.PatientAge, cdt.AgeGroupFromAge(*in.PatientAge)))
	}

	parts = append(parts,
		fmt.Sprintf("**Treatment Type:** %s", in.TreatmentType),
		fmt.Sprintf("**Area Treated:** %s", in.AreaTreated),
		fmt.Sprintf("**Expected Duration:** %s", in.DurationRange),
		fmt.Sprintf("**Case Difficulty:** %s", in.CaseDifficulty),
		fmt.Sprintf("**Monitoring Approach:** %s", in.MonitoringApproach),
		fmt.Sprintf("**Attachments:** %s", in.Attachments),
		fmt.Sprintf("**Whitening Included:** %s", yesNo(in.WhiteningIncluded)),
	)

	if in.DentistNote != "" {
		parts = append(parts, fmt.Sprintf("**Dentist Note:** %s", in.DentistNote))
	}

	parts = append(parts,
		"",
		fmt.Sprintf("**Target Audience:** %s", in.Audience),
		fmt.Sprintf("**Desired Tone:** %s", in.Tone),
		"",
		"Please generate the treatment summary following all guidelines and restrictions.",
	)

	return strings.Join(parts, "\n")
}

// InsuranceUserPrompt renders the case details for the insurance flow.
// Diagnostic assets are listed explicitly, flagged or not, so the model
// never has to guess what was collected.
func InsuranceUserPrompt(in *InsuranceInput) string {
	parts := []string{
		"Generate an insurance summary with the following case details:",
		"",
		fmt.Sprintf("**Tier:** %s", in.Tier),
		fmt.Sprintf("**Arches:** %s", in.Arches),
		fmt.Sprintf("**Age Group:** %s", in.AgeGroup),
		fmt.Sprintf("**Retainers Included:** %s", retainersLabel(in.RetainersIncluded)),
		fmt.Sprintf("**Monitoring Approach:** %s", in.MonitoringApproach),
		"",
		"**Diagnostic Assets:**",
	}

	if in.DiagnosticAssets.IntraoralPhotos {
		parts = append(parts, "- Intraoral photos: Yes")
	} else {
		parts = append(parts, "- Intraoral photos: No")
	}
	if in.DiagnosticAssets.PanoramicXray {
		parts = append(parts, "- Panoramic X-ray: Yes")
	} else {
		parts = append(parts, "- Panoramic X-ray: No")
	}
	if in.DiagnosticAssets.FMX {
		parts = append(parts, "- FMX (Full Mouth X-rays): Yes")
	} else {
		parts = append(parts, "- FMX: No")
	}

	if in.Notes != "" {
		parts = append(parts,
			"",
			fmt.Sprintf("**Additional Notes:** %s", in.Notes),
		)
	}

	parts = append(parts,
		"",
		"Generate the insurance summary following all guidelines. Remember:",
		"- Use neutral, factual, non-promissory language",
		"- Do NOT include diagnosis language or medical necessity statements",
		"- Do NOT promise coverage or guarantee reimbursement",
		"- Do NOT include pricing information",
		"- Reference that this is for administrative/insurance documentation purposes",
		"- Mention retention is included if retainers are bundled",
	)

	return strings.Join(parts, "\n")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func retainersLabel(b bool) string {
	if b {
		return "Yes (bundled)"
	}
	return "No"
}
