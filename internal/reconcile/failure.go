package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/hireboard/internal/models"
)

// Kind is the failure taxonomy callers react to
type Kind int

const (
	// KindNotFound means the candidate is unknown to the service. Never retried.
	KindNotFound Kind = iota + 1
	// KindStaleState means the asserted source stage no longer matches the service.
	KindStaleState
	// KindDomainRule means a service-side rule forbids the request.
	KindDomainRule
	// KindTransient covers timeouts and service or network outages.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindStaleState:
		return "stale_state"
	case KindDomainRule:
		return "domain_rule"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Codes the client assigns itself when the service gave none
const (
	CodeTimeout            = "TIMEOUT"
	CodeCanceled           = "CANCELED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Failure is a classified error from a reconciliation call.
// Message is the service's message, kept verbatim for display.
type Failure struct {
	Op      string
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s: %s", f.Op, f.Code, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Retryable reports whether a manual retry could succeed.
// A missing candidate stays missing; everything else may change.
func (f *Failure) Retryable() bool {
	return f.Kind != KindNotFound
}

// AsFailure extracts a Failure from an error chain
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Classify converts any error returned for op into a Failure
func Classify(op string, err error) *Failure {
	if err == nil {
		return nil
	}
	if f, ok := AsFailure(err); ok {
		return f
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &Failure{Op: op, Kind: KindTransient, Code: CodeTimeout,
			Message: "the request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return &Failure{Op: op, Kind: KindTransient, Code: CodeCanceled,
			Message: "the request was canceled", Err: err}
	}

	if apiErr, ok := models.AsAPIError(err); ok {
		return &Failure{Op: op, Kind: kindForCode(apiErr.Code), Code: apiErr.Code,
			Message: apiErr.Message, Err: err}
	}

	return &Failure{Op: op, Kind: KindTransient, Code: CodeServiceUnavailable,
		Message: err.Error(), Err: err}
}

func kindForCode(code string) Kind {
	switch code {
	case models.CodeCandidateNotFound:
		return KindNotFound
	case models.CodeInvalidStatusTransition:
		return KindStaleState
	case models.CodeDeliveryFailed:
		return KindTransient
	default:
		// Rules are owned by the service; an unrecognized code is one of them.
		return KindDomainRule
	}
}
