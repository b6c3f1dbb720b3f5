package app

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers configuration rejected before any work begins:
	// bad chunk parameters, non-PDF uploads, malformed user IDs, empty text.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDocuments means the user has no vector collection yet. Callers
	// must tell the user to upload documents first, not report a server error.
	ErrNoDocuments = errors.New("no documents uploaded for this user")

	// ErrUpstreamUnavailable wraps failures of the embedding/chat API or the
	// vector store. The original error text rides along as diagnostics only.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrClassification means the model failed to produce the required
	// structured sentiment output.
	ErrClassification = errors.New("sentiment classification failed")
)

func upstreamError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUpstreamUnavailable, op, err)
}
