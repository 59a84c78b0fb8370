package blinktree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a range lookup count is not positive.
	ErrInvalidRange = errors.New("range count must be positive")
)

// ErrDuplicateKey is returned by Insert when duplicate checking is enabled
// and the key is already present.
type ErrDuplicateKey struct {
	Key any
}

func (e *ErrDuplicateKey) Error() string {
	return fmt.Sprintf("duplicate key: %v", e.Key)
}
