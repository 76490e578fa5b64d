package field

import "errors"

// Domain errors for field construction.
var (
	// ErrInvalidParams indicates a parameter outside its valid range.
	ErrInvalidParams = errors.New("field: invalid parameters")

	// ErrParticleOutOfBounds indicates a preset particle placed outside the bounds.
	ErrParticleOutOfBounds = errors.New("field: particle outside bounds")
)
