package generation

import (
	"encoding/json"
	"fmt"
)

// Output schemas sent to the model. Strict mode pins the shape; the parse
// helpers below re-check locally because strictness is best-effort.

var treatmentOutputSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"title": map[string]interface{}{
			"type":        "string",
			"description": "A brief title for the treatment summary",
		},
		"summary": map[string]interface{}{
			"type":        "string",
			"description": "The main treatment summary text",
		},
	},
	"required":             []string{"title", "summary"},
	"additionalProperties": false,
}

var insuranceOutputSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"insurance_summary": map[string]interface{}{
			"type":        "string",
			"description": "The generated insurance summary text (admin use only)",
		},
		"disclaimer": map[string]interface{}{
			"type":        "string",
			"description": "Required disclaimer (always included)",
		},
	},
	"required":             []string{"insurance_summary", "disclaimer"},
	"additionalProperties": false,
}

func parseTreatmentDocument(raw json.RawMessage) (*TreatmentDocument, error) {
	var doc TreatmentDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if doc.Title == "" || doc.Summary == "" {
		return nil, fmt.Errorf("%w: title and summary must be non-empty", ErrMalformedOutput)
	}
	return &doc, nil
}

func parseInsuranceDocument(raw json.RawMessage) (*InsuranceDocument, error) {
	var doc InsuranceDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if doc.InsuranceSummary == "" {
		return nil, fmt.Errorf("%w: insurance_summary must be non-empty", ErrMalformedOutput)
	}
	return &doc, nil
}
