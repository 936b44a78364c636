package service

import (
	"errors"
	"fmt"

	"power-store/repository"
)

type ErrorKind string

const (
	KindUnknownCard         ErrorKind = "UnknownCard"
	KindCardNotOwned        ErrorKind = "CardNotOwned"
	KindTargetRequired      ErrorKind = "TargetRequired"
	KindSelfTargetForbidden ErrorKind = "SelfTargetForbidden"
	KindTargetNotFound      ErrorKind = "TargetNotFound"
	KindInsufficientFunds   ErrorKind = "InsufficientFunds"
	KindNoEligibleCards     ErrorKind = "NoEligibleCards"
	KindInvalidPower        ErrorKind = "InvalidPower"
	KindStoreConflict       ErrorKind = "StoreConflict"
	KindStoreUnavailable    ErrorKind = "StoreUnavailable"
	KindPlayerNotFound      ErrorKind = "PlayerNotFound"
	KindNotAuthorized       ErrorKind = "NotAuthorized"
	KindTransactionTooLarge ErrorKind = "TransactionTooLarge"
	KindInvalidAmount       ErrorKind = "InvalidAmount"
	KindBadRequest          ErrorKind = "BadRequest"
)

// GameError is the only error type the engine returns. Message is safe to
// show to players; Err holds the internal cause, if any.
type GameError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *GameError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = defaultMessages[e.Kind]
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *GameError) Unwrap() error { return e.Err }

// Is matches on kind alone, so errors.Is(err, ErrCardNotOwned) holds for any
// CardNotOwned error regardless of its message.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnknownCard         = &GameError{Kind: KindUnknownCard}
	ErrCardNotOwned        = &GameError{Kind: KindCardNotOwned}
	ErrTargetRequired      = &GameError{Kind: KindTargetRequired}
	ErrSelfTargetForbidden = &GameError{Kind: KindSelfTargetForbidden}
	ErrTargetNotFound      = &GameError{Kind: KindTargetNotFound}
	ErrInsufficientFunds   = &GameError{Kind: KindInsufficientFunds}
	ErrNoEligibleCards     = &GameError{Kind: KindNoEligibleCards}
	ErrInvalidPower        = &GameError{Kind: KindInvalidPower}
	ErrStoreConflict       = &GameError{Kind: KindStoreConflict}
	ErrStoreUnavailable    = &GameError{Kind: KindStoreUnavailable}
	ErrPlayerNotFound      = &GameError{Kind: KindPlayerNotFound}
	ErrNotAuthorized       = &GameError{Kind: KindNotAuthorized}
	ErrTransactionTooLarge = &GameError{Kind: KindTransactionTooLarge}
	ErrInvalidAmount       = &GameError{Kind: KindInvalidAmount}
	ErrBadRequest          = &GameError{Kind: KindBadRequest}
)

var defaultMessages = map[ErrorKind]string{
	KindUnknownCard:         "Card not found. Please use the exact card name or ID.",
	KindCardNotOwned:        "You don't have that card.",
	KindTargetRequired:      "This card needs a target player.",
	KindSelfTargetForbidden: "You cannot target yourself with this card.",
	KindTargetNotFound:      "Target player not found.",
	KindInsufficientFunds:   "You don't have enough Power Coins.",
	KindNoEligibleCards:     "There are no cards to use this on.",
	KindInvalidPower:        "Invalid God power. Choose Blessing, Smite or Tribute.",
	KindStoreConflict:       "The game is busy right now. Nothing was changed, please try again.",
	KindStoreUnavailable:    "The game is unavailable right now. Please try again later.",
	KindPlayerNotFound:      "You are not registered yet. Use /start to join.",
	KindNotAuthorized:       "You are not authorized to use this command.",
	KindTransactionTooLarge: "Too many players are involved for this to happen at once. Nothing was changed.",
	KindInvalidAmount:       "The amount must not be zero.",
	KindBadRequest:          "That request could not be understood.",
}

func gameErr(kind ErrorKind, format string, args ...any) *GameError {
	return &GameError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// BadRequest wraps a decoding failure of a front-end request.
func BadRequest(err error) error {
	return &GameError{Kind: KindBadRequest, Err: err}
}

// KindOf classifies err. Store failures that escaped the engine's own
// classification count as StoreUnavailable.
func KindOf(err error) ErrorKind {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	switch {
	case errors.Is(err, repository.ErrConflict):
		return KindStoreConflict
	case errors.Is(err, repository.ErrTxTooLarge):
		return KindTransactionTooLarge
	default:
		return KindStoreUnavailable
	}
}

// UserMessage is the plain text shown to a player for err. Internal causes
// never leak into it.
func UserMessage(err error) string {
	var ge *GameError
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	return defaultMessages[KindOf(err)]
}

// classify turns whatever a transaction returned into a GameError.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ge *GameError
	if errors.As(err, &ge) {
		return ge
	}
	kind := KindOf(err)
	return &GameError{Kind: kind, Err: err}
}
