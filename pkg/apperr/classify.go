package apperr

import "errors"

// Severity is a logging-priority classification, independent of HTTP status.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "medium"
	}
}

var severityByKind = map[Kind]Severity{
	KindValidation:      SeverityLow,
	KindNotFound:        SeverityLow,
	KindNotAllowed:      SeverityMedium,
	KindDuplicate:       SeverityMedium,
	KindConflict:        SeverityMedium,
	KindAuthentication:  SeverityMedium,
	KindForbidden:       SeverityMedium,
	KindExternalService: SeverityHigh,
	KindConfiguration:   SeverityCritical,
	KindRateLimit:       SeverityCritical,
	KindInternal:        SeverityMedium,
}

// SeverityOf derives the logging priority for a failure. Unclassified
// errors are medium.
func SeverityOf(err error) Severity {
	var e *Error
	if errors.As(err, &e) {
		if s, ok := severityByKind[e.Kind]; ok {
			return s
		}
	}
	return SeverityMedium
}

// Retriable reports whether the caller may safely re-issue the request:
// only transient external-service and rate-limit failures qualify.
func Retriable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == KindExternalService || e.Kind == KindRateLimit
	}
	return false
}
