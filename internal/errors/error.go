package errors

import "github.com/pkg/errors"

var (
	// configuration errors
	ErrAPIKeyMissing  = errors.New("environment variable SPARKPOST_API_KEY not set")
	ErrInvalidSender  = errors.New("sender address is not valid")
	ErrArchiveMissing = errors.New("archive bucket is not configured")

	// generator errors
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrInvalidCount    = errors.New("repetition count must be at least 1")

	// record errors
	ErrMalformedRecord = errors.New("malformed event record")
	ErrUnknownSubtype  = errors.New("unknown event subtype")
)
