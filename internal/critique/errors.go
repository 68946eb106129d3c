package critique

import (
	"errors"
	"fmt"
)

// ErrGeneration matches every GenerationError via errors.Is.
var ErrGeneration = errors.New("critique generation failed")

// ErrEmptyOutput is returned by a ContentGenerator whose call completed but
// carried no usable text. The Generator treats it like malformed output.
var ErrEmptyOutput = errors.New("generation returned no content")

// GenerationError means the text-generation call itself did not complete
// (network, auth, quota or a caller-imposed deadline).
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("%s: %v", ErrGeneration, e.Err)
	}
	return fmt.Sprintf("%s (model %s): %v", ErrGeneration, e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}
