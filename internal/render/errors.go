package render

import "errors"

var (
	// ErrInvalidOptions indicates renderer options outside their valid range.
	ErrInvalidOptions = errors.New("render: invalid options")

	// ErrNilHost indicates a renderer built without a host.
	ErrNilHost = errors.New("render: nil host")
)
