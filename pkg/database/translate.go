package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/elemental-io/elemental/pkg/apperr"
	"github.com/elemental-io/elemental/pkg/codes"
)

// Translate maps a database failure onto the error taxonomy. Driver text is
// kept out of the returned message; what the client sees are the generic
// taxonomy messages only.
//
// Already-translated errors pass through unchanged so repository code can
// call Translate unconditionally.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.ExternalTimeout("database", 0)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return apperr.Duplicate("")
		case "23503", "23514": // foreign_key_violation, check_violation
			return apperr.Conflicted("")
		}
		if pqErr.Code.Class() == "08" { // connection exceptions
			return apperr.New(apperr.KindExternalService, codes.DatabaseConnectionFailed, "", nil)
		}
		return apperr.New(apperr.KindExternalService, codes.ExternalServiceError, "", nil)
	}

	return apperr.New(apperr.KindExternalService, codes.ExternalServiceError, "", nil)
}
