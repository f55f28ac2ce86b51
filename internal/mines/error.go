package mines

import "errors"

var (
	ErrOutOfBounds   = errors.New("cell out of bounds")
	ErrInvalidParams = errors.New("invalid game params")
)
