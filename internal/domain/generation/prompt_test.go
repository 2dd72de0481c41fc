package generation

import (
	"strings"
	"testing"
)

func intPtr(n int) *int { return &n }

func TestTreatmentUserPrompt_AllFields(t *testing.T) {
	req := TreatmentRequest{
		Tier:               "moderate",
		PatientName:        "Jane Doe",
		PracticeName:       "Smile Dental",
		PatientAge:         intPtr(34),
		WhiteningIncluded:  true,
		DentistNote:        "Slight crowding lower front.",
		MonitoringApproach: "remote",
	}
	in, err := req.Normalize()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	want := `Generate a treatment summary with the following case details:

**Patient Name:** Jane Doe
**Practice Name:** Smile Dental
**Patient Age:** 34 (adult)
**Treatment Type:** clear aligners
**Area Treated:** both
**Expected Duration:** 4-6 months
**Case Difficulty:** moderate
**Monitoring Approach:** remote
**Attachments:** some
**Whitening Included:** Yes
**Dentist Note:** Slight crowding lower front.

**Target Audience:** patient
**Desired Tone:** reassuring

Please generate the treatment summary following all guidelines and restrictions.`

	if got := TreatmentUserPrompt(in); got != want {
		t.Errorf("prompt mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreatmentUserPrompt_OmitsAbsentOptionals(t *testing.T) {
	req := TreatmentRequest{}
	in, err := req.Normalize()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	want := `Generate a treatment summary with the following case details:

**Treatment Type:** clear aligners
**Area Treated:** both
**Expected Duration:** 4-6 months
**Case Difficulty:** moderate
**Monitoring Approach:** mixed
**Attachments:** some
**Whitening Included:** No

**Target Audience:** patient
**Desired Tone:** reassuring

Please generate the treatment summary following all guidelines and restrictions.`

	if got := TreatmentUserPrompt(in); got != want {
		t.Errorf("prompt mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreatmentUserPrompt_AdolescentAgeLabel(t *testing.T) {
	req := TreatmentRequest{PatientAge: intPtr(17), Tier: "express"}
	in, err := req.Normalize()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	prompt := TreatmentUserPrompt(in)
	if want := "**Patient Age:** 17 (adolescent)"; !strings.Contains(prompt, want) {
		t.Errorf("expected %q in prompt:\n%s", want, prompt)
	}
}

func TestTreatmentUserPrompt_Deterministic(t *testing.T) {
	req := TreatmentRequest{
		Tier:        "complex",
		PatientAge:  intPtr(29),
		PatientName: "Alex Smith",
		Tone:        "clinical",
		Audience:    "internal",
	}
	in, err := req.Normalize()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	first := TreatmentUserPrompt(in)
	for i := 0; i < 10; i++ {
		if got := TreatmentUserPrompt(in); got != first {
			t.Fatalf("prompt not deterministic on run %d", i)
		}
	}
}

func TestInsuranceUserPrompt(t *testing.T) {
	retainers := true
	req := InsuranceRequest{
		Tier:              "moderate",
		AgeGroup:          "adult",
		RetainersIncluded: &retainers,
		Notes:             "Records attached.",
	}
	req.DiagnosticAssets.IntraoralPhotos = true
	req.DiagnosticAssets.PanoramicXray = true

	in, err := req.Normalize()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	want := `Generate an insurance summary with the following case details:

**Tier:** moderate
**Arches:** both
**Age Group:** adult
**Retainers Included:** Yes (bundled)
**Monitoring Approach:** mixed

**Diagnostic Assets:**
- Intraoral photos: Yes
- Panoramic X-ray: Yes
- FMX: No

**Additional Notes:** Records attached.

Generate the insurance summary following all guidelines. Remember:
- Use neutral, factual, non-promissory language
- Do NOT include diagnosis language or medical necessity statements
- Do NOT promise coverage or guarantee reimbursement
- Do NOT include pricing information
- Reference that this is for administrative/insurance documentation purposes
- Mention retention is included if retainers are bundled`

	if got := InsuranceUserPrompt(in); got != want {
		t.Errorf("prompt mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestInsuranceUserPrompt_NoRetainersNoNotes(t *testing.T) {
	retainers := false
	req := InsuranceRequest{
		Tier:              "express_mild",
		AgeGroup:          "adolescent",
		RetainersIncluded: &retainers,
	}
	req.DiagnosticAssets.FMX = true

	in, err := req.Normalize()
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	prompt := InsuranceUserPrompt(in)
	for _, want := range []string{
		"**Retainers Included:** No",
		"- Intraoral photos: No",
		"- Panoramic X-ray: No",
		"- FMX (Full Mouth X-rays): Yes",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected %q in prompt:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "**Additional Notes:**") {
		t.Error("expected notes block omitted when notes are empty")
	}
}
