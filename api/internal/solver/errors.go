package solver

import "errors"

// Failure taxonomy surfaced by handlers. Each request error wraps exactly one
// of these so HTTP status mapping stays deterministic.
var (
	// ErrValidation marks a request that is malformed before any work is done.
	ErrValidation = errors.New("invalid request")

	// ErrInvalidImage marks a payload that is not base64 or not a decodable
	// image. The message text is part of the client contract.
	ErrInvalidImage = errors.New("Invalid image data")

	// ErrGeneration marks any failure of the remote generation call.
	ErrGeneration = errors.New("generation failed")
)
