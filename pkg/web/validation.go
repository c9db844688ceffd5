package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// FieldViolation is a single failed constraint on a named input field.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationErrors collects boundary validation failures. It is the error
// the dispatcher maps to a 422 VALIDATION_ERROR envelope.
type ValidationErrors struct {
	Violations []FieldViolation
}

func (v *ValidationErrors) Error() string {
	if len(v.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", v.Violations[0].Field, v.Violations[0].Message)
}

// Add appends a violation and returns the receiver for chaining.
func (v *ValidationErrors) Add(field, message string) *ValidationErrors {
	v.Violations = append(v.Violations, FieldViolation{Field: field, Message: message})
	return v
}

// Empty reports whether no violations were recorded.
func (v *ValidationErrors) Empty() bool { return len(v.Violations) == 0 }

// Details maps each field to its first recorded message. Later violations
// on the same field are dropped.
func (v *ValidationErrors) Details() map[string]any {
	out := map[string]any{}
	for _, viol := range v.Violations {
		if _, seen := out[viol.Field]; !seen {
			out[viol.Field] = viol.Message
		}
	}
	return out
}

// Validator is implemented by request payloads that carry their own field
// constraints. DecodeJSON runs it after unmarshalling.
type Validator interface {
	Validate() *ValidationErrors
}

// DecodeJSON strictly decodes the request body into dst. Malformed or
// trailing input surfaces as a body-level validation error so the client
// gets the standard 422 envelope rather than a bare 400.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return (&ValidationErrors{}).Add("body", "Invalid request body: "+err.Error())
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return (&ValidationErrors{}).Add("body", "Invalid request body: unexpected trailing data")
	}
	if v, ok := dst.(Validator); ok {
		if verr := v.Validate(); verr != nil && !verr.Empty() {
			return verr
		}
	}
	return nil
}
