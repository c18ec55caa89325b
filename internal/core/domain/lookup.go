// internal/core/domain/lookup.go
package domain

import (
	"errors"
	"fmt"
)

// LookupErrorKind classifies why a barcode lookup produced no item
type LookupErrorKind string

const (
	LookupMissingInput         LookupErrorKind = "missing_input"
	LookupConfigurationError   LookupErrorKind = "configuration"
	LookupAuthenticationFailed LookupErrorKind = "authentication"
	LookupNotFound             LookupErrorKind = "not_found"
	LookupUnexpected           LookupErrorKind = "unexpected"
)

// NotFoundReason says how a NotFound scan ended
type NotFoundReason string

const (
	ReasonExhausted      NotFoundReason = "exhausted"
	ReasonPageCap        NotFoundReason = "page_cap"
	ReasonUpstreamStatus NotFoundReason = "upstream_status"
)

// LookupError is returned by the stock resolver for every non-success outcome
type LookupError struct {
	Kind         LookupErrorKind
	ScannedPages int
	Reason       NotFoundReason // NotFound only
	Err          error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case LookupMissingInput:
		return "barcode is required"
	case LookupConfigurationError:
		if e.Err != nil {
			return fmt.Sprintf("missing catalog credentials: %v", e.Err)
		}
		return "missing catalog credentials"
	case LookupAuthenticationFailed:
		return fmt.Sprintf("catalog rejected credentials after %d pages", e.ScannedPages)
	case LookupNotFound:
		return fmt.Sprintf("barcode not found after %d pages (%s)", e.ScannedPages, e.Reason)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unexpected lookup failure"
	}
}

func (e *LookupError) Unwrap() error { return e.Err }

// Degraded reports a NotFound that did not scan the whole catalog
func (e *LookupError) Degraded() bool {
	return e.Kind == LookupNotFound && e.Reason != ReasonExhausted
}

// LookupKind extracts the kind from err, empty when err is not a LookupError
func LookupKind(err error) LookupErrorKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// LookupResult is a successful resolution
type LookupResult struct {
	Item         Item
	ScannedPages int
}
