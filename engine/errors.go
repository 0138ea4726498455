package engine

import "errors"

var (
	// ErrIllegalMove is wrapped by every mutator that rejects an action.
	// A rejected action leaves the hand unchanged.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidConfiguration is wrapped when a hand or game cannot be created.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
