package roulette

import "errors"

// Errors for bet placement, rigging, and settlement. All of them are
// recoverable, caller-facing rejections; the operation that returns one
// leaves state unchanged.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidBetShape   = errors.New("malformed bet shape")
	ErrInvalidPocket     = errors.New("no such pocket")
	ErrInvalidRigNumber  = errors.New("rig number outside the pocket set")
	ErrInvalidRigColor   = errors.New("unknown rig color")
	ErrBetNotFound       = errors.New("bet not found")
	ErrBetAlreadySettled = errors.New("bet already settled")
)
