package core

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalMove is wrapped by every move rejection reason
	ErrIllegalMove = errors.New("illegal move")

	ErrOffBoard     = fmt.Errorf("%w: square is off the board", ErrIllegalMove)
	ErrEmptySquare  = fmt.Errorf("%w: no piece on source square", ErrIllegalMove)
	ErrWrongTurn    = fmt.Errorf("%w: piece belongs to the side not on move", ErrIllegalMove)
	ErrSelfCapture  = fmt.Errorf("%w: destination holds own piece", ErrIllegalMove)
	ErrNullMove     = fmt.Errorf("%w: source and destination are the same", ErrIllegalMove)
	ErrBadGeometry  = fmt.Errorf("%w: piece cannot reach destination", ErrIllegalMove)
	ErrSelfCheck    = fmt.Errorf("%w: move leaves own king in check", ErrIllegalMove)
	ErrNotSelected  = fmt.Errorf("%w: destination not in legal set", ErrIllegalMove)
	ErrNoSelection  = errors.New("no piece selected")
	ErrGameNotFound = errors.New("game not found")

	ErrInvalidPlacement = errors.New("invalid placement")
)

// Error codes
const (
	ErrCodeGameNotFound      = "GAME_NOT_FOUND"
	ErrCodeInvalidMove       = "INVALID_MOVE"
	ErrCodeNoSelection       = "NO_SELECTION"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInvalidPlacement  = "INVALID_PLACEMENT"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// ErrorCode maps a domain error onto its API code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return ErrCodeGameNotFound
	case errors.Is(err, ErrNoSelection):
		return ErrCodeNoSelection
	case errors.Is(err, ErrIllegalMove):
		return ErrCodeInvalidMove
	case errors.Is(err, ErrInvalidPlacement):
		return ErrCodeInvalidPlacement
	default:
		return ErrCodeInternalError
	}
}
