package normalize

import "errors"

var (
	// ErrMalformedPayload marks a payload missing required sections. Callers
	// treat it like an unavailable upstream but it is logged separately.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrEventNotFound is reported when the summary has no header.
	ErrEventNotFound = errors.New("event not found")
	// ErrNoCompetition is reported when the header has no competitions.
	ErrNoCompetition = errors.New("no competition")
)

// MalformedPayloadError carries the reason a payload could not be normalized.
type MalformedPayloadError struct {
	EventID string
	Reason  error
}

func (e *MalformedPayloadError) Error() string {
	msg := ErrMalformedPayload.Error()
	if e.EventID != "" {
		msg += " for " + e.EventID
	}
	if e.Reason != nil {
		msg += ": " + e.Reason.Error()
	}
	return msg
}

// Unwrap lets errors.Is match both the class and the specific reason.
func (e *MalformedPayloadError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrMalformedPayload}
	}
	return []error{ErrMalformedPayload, e.Reason}
}
