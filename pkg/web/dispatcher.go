// Package web glues the error taxonomy, envelope and token layers into the
// HTTP boundary: a dispatcher that turns handler results into uniform
// envelopes, the request-validation surface, bearer authentication and the
// usual edge middleware.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/codes"
	"github.com/elemental-io/elemental/pkg/envelope"
	log "github.com/elemental-io/elemental/pkg/logger"
)

// tracebackLines caps how many stack lines a development error response
// carries.
const tracebackLines = 5

// HandlerFunc is an application handler. It returns the success payload and
// status, or an error to be classified at the boundary. A zero status
// defaults to 200.
type HandlerFunc func(r *http.Request) (any, int, error)

// Dispatcher converts handler outcomes into enveloped JSON responses.
// Failures are classified in priority order: typed application errors,
// boundary validation errors, then everything else as a generic internal
// fault. Each failure is logged exactly once; logging is best-effort and
// can never alter the response.
type Dispatcher struct {
	// Development gates traceback exposure in internal-error details.
	Development bool
}

// NewDispatcher builds a dispatcher. Development should come from
// AppConfig.IsDevelopment().
func NewDispatcher(development bool) *Dispatcher {
	return &Dispatcher{Development: development}
}

// Wrap adapts a HandlerFunc into an http.Handler. Panics inside the
// handler are recovered and classified as unhandled failures.
func (d *Dispatcher) Wrap(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				d.Fail(w, r, fmt.Errorf("panic: %v", rec))
			}
		}()

		data, status, err := h(r)
		if err != nil {
			d.Fail(w, r, err)
			return
		}
		if status == 0 {
			status = http.StatusOK
		}
		writeJSON(w, status, envelope.Build(data, status, r.URL.Path, r.Method))
	})
}

// Fail classifies err, logs it once and writes the failure envelope.
func (d *Dispatcher) Fail(w http.ResponseWriter, r *http.Request, err error) {
	env := d.classify(r, err)
	d.logFailure(r, err, env)
	writeJSON(w, env.StatusCode, env)
}

func (d *Dispatcher) classify(r *http.Request, err error) envelope.Envelope {
	path, method := r.URL.Path, r.Method

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return envelope.FromError(appErr, path, method)
	}

	var valErr *ValidationErrors
	if errors.As(err, &valErr) {
		first := "Input validation failed."
		if len(valErr.Violations) > 0 {
			first = valErr.Violations[0].Message
		}
		return envelope.BuildError(http.StatusUnprocessableEntity, path, method,
			codes.ValidationError.Name, "Validation failed: "+first, valErr.Details())
	}

	details := map[string]any{}
	if d.Development {
		details["traceback"] = lastStackLines(tracebackLines)
	}
	return envelope.BuildError(http.StatusInternalServerError, path, method,
		codes.InternalServerError.Name, "An unexpected internal error occurred.", details)
}

// logFailure logs one line per failed request. A panicking log hook must
// not suppress the response, so the whole call is fenced.
func (d *Dispatcher) logFailure(r *http.Request, err error, env envelope.Envelope) {
	defer func() {
		_ = recover()
	}()

	severity := failureSeverity(err)
	entry := log.WithTrace(r.Context()).WithFields(log.Fields{
		"method":    r.Method,
		"path":      r.URL.Path,
		"status":    env.StatusCode,
		"severity":  severity.String(),
		"retriable": apperr.Retriable(err),
	})
	if env.Error != nil {
		entry = entry.WithField("error_code", env.Error.Code)
	}
	if severity >= apperr.SeverityHigh {
		entry.Error(err.Error())
	} else {
		entry.Warn(err.Error())
	}
}

func failureSeverity(err error) apperr.Severity {
	var valErr *ValidationErrors
	if errors.As(err, &valErr) {
		return apperr.SeverityLow
	}
	return apperr.SeverityOf(err)
}

func lastStackLines(n int) []string {
	lines := strings.Split(strings.TrimSpace(string(debug.Stack())), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("write response failed")
	}
}
