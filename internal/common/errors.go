package common

import (
	"context"
	"errors"
	"fmt"
)

// Error taxonomy for the publishing pipeline. Callers branch with errors.Is.
var (
	// ErrNotFound covers absent source documents, page documents, and fields.
	// Read paths generally report absence as an explicit empty result instead;
	// this sentinel is for paths where the caller asked for something by name.
	ErrNotFound = errors.New("not found")

	// ErrTypeMismatch is returned when a list append targets a field that is
	// not list-shaped.
	ErrTypeMismatch = errors.New("field is not a list")

	// ErrCollaboratorUnavailable wraps network/auth failures from any backing
	// service (document repository, object storage, model, document store).
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrCollaboratorTimeout is the bounded-timeout variant; it propagates to
	// the run's caller so the trigger source can decide whether to retry.
	ErrCollaboratorTimeout = errors.New("collaborator timeout")

	// ErrMalformedExtraction means the model response did not parse as JSON.
	// Never retried automatically: a second model call is not guaranteed to
	// converge.
	ErrMalformedExtraction = errors.New("malformed extraction")

	// ErrIncompleteExtraction means the response parsed but is missing
	// required fields of the target record schema.
	ErrIncompleteExtraction = errors.New("incomplete extraction")
)

// Collaborator classifies an external-call failure against the taxonomy,
// keeping the original error in the chain. Deadline expiry becomes
// ErrCollaboratorTimeout; everything else ErrCollaboratorUnavailable.
func Collaborator(service string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", service, ErrCollaboratorTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", service, ErrCollaboratorUnavailable, err)
}
