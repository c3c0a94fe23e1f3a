package game

import (
	"errors"
	"fmt"
)

var (
	ErrGameNotFound           = errors.New("game not found")
	ErrPlayerNotFound         = errors.New("player not found")
	ErrInvalidRoundTransition = errors.New("invalid round transition")
	ErrInvalidSubmission      = errors.New("invalid submission")
	ErrGameFull               = errors.New("game full")
	ErrInvalidRequest         = errors.New("invalid request")
)

const (
	msgGameNotFound   = "Could not get game"
	msgPlayerNotFound = "Could not get player"
	msgBeginRound     = "Cannot begin round"
	msgChoose         = "Cannot choose punchlines"
	msgEnterState     = "Cannot enter state"
	msgChooseWinner   = "Cannot choose winner"
	msgStartRound     = "Cannot start round"
	msgJoinGame       = "Cannot join game"
	msgGameFull       = "Game is full"
)

// Error is a domain failure. Message is safe to show to players; Reason
// names the precondition that failed and is meant for logs.
type Error struct {
	Kind    error
	Message string
	Reason  string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message, reason string, args ...any) *Error {
	if len(args) > 0 {
		reason = fmt.Sprintf(reason, args...)
	}
	return &Error{Kind: kind, Message: message, Reason: reason}
}

func GameNotFound(code string) *Error {
	return newError(ErrGameNotFound, msgGameNotFound, "no game with code %q", code)
}

func PlayerNotFound(id string) *Error {
	return newError(ErrPlayerNotFound, msgPlayerNotFound, "no player with id %q", id)
}

func InvalidRequest(message string) *Error {
	return newError(ErrInvalidRequest, message, message)
}

// Reason extracts the logged reason from a domain error, or the error text otherwise.
func Reason(err error) string {
	var gameErr *Error
	if errors.As(err, &gameErr) {
		return gameErr.Reason
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
