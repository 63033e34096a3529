package composite

import "errors"

var (
	ErrDuplicateRule = errors.New("duplicate rule")
	ErrNilRule       = errors.New("attempt to add nil rule")
	ErrInvalidKey    = errors.New("invalid rule key")
)
