// Package phi applies the audit redaction policy to request payloads before
// they are persisted. Audit rows are append-only, so redaction has to happen
// on the way in; there is no later scrub.
package phi

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const markerPrefix = "[REDACTED:"

// RedactValue replaces a value with a marker carrying the first 8 hex
// characters of its SHA-256 digest. The digest prefix lets two audit rows be
// compared for equality of the redacted field without revealing it. Values
// that already carry the marker are returned unchanged.
func RedactValue(value string) string {
	if strings.HasPrefix(value, markerPrefix) {
		return value
	}
	sum := sha256.Sum256([]byte(value))
	return markerPrefix + hex.EncodeToString(sum[:])[:8] + "]"
}

// Redactor holds the audit payload policy resolved from configuration.
type Redactor struct {
	// StoreFullData keeps full input payloads in audit rows. When false the
	// entire payload is replaced with a redaction marker object.
	StoreFullData bool
	// RedactFields enables per-field redaction of the names in Fields.
	RedactFields bool
	Fields       []string
}

// Apply returns the payload as it should be persisted in the audit trail.
// Only non-empty string values are redacted; non-string and missing fields
// are left untouched. Nested objects are not recursed. The input map is
// never mutated.
func (r *Redactor) Apply(payload map[string]interface{}) map[string]interface{} {
	if !r.StoreFullData {
		return map[string]interface{}{"redacted": true}
	}

	if !r.RedactFields || len(r.Fields) == 0 {
		return clone(payload)
	}

	out := clone(payload)
	for _, field := range r.Fields {
		if s, ok := out[field].(string); ok && s != "" {
			out[field] = RedactValue(s)
		}
	}
	return out
}

func clone(payload map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		out[k] = v
	}
	return out
}
