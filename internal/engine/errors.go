package engine

import "fmt"

// Reason identifies why an action was rejected.
type Reason string

const (
	ReasonHandComplete      Reason = "hand_complete"
	ReasonNotYourTurn       Reason = "not_your_turn"
	ReasonUnknownSeat       Reason = "unknown_seat"
	ReasonPlayerFolded      Reason = "player_folded"
	ReasonPlayerAllIn       Reason = "player_all_in"
	ReasonNothingToCall     Reason = "nothing_to_call"
	ReasonFacingBet         Reason = "facing_bet"
	ReasonNoOutstandingBet  Reason = "no_outstanding_bet"
	ReasonBetTooSmall       Reason = "bet_too_small"
	ReasonRaiseTooSmall     Reason = "raise_too_small"
	ReasonInsufficientChips Reason = "insufficient_chips"
	ReasonNoChips           Reason = "no_chips"
)

// ValidationError rejects an illegal action. It is always recoverable and
// the game state is left untouched.
type ValidationError struct {
	Seat   int
	Kind   ActionKind
	Reason Reason
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("seat %d %s rejected: %s (%s)", e.Seat, e.Kind, e.Reason, e.Detail)
	}
	return fmt.Sprintf("seat %d %s rejected: %s", e.Seat, e.Kind, e.Reason)
}

// rejectf builds a ValidationError with a formatted detail message.
func rejectf(seat int, kind ActionKind, reason Reason, format string, args ...any) *ValidationError {
	return &ValidationError{Seat: seat, Kind: kind, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// reject builds a ValidationError without detail.
func reject(seat int, kind ActionKind, reason Reason) *ValidationError {
	return &ValidationError{Seat: seat, Kind: kind, Reason: reason}
}

// InvariantError reports internal state corruption: chip conservation
// mismatch, a negative stack, or a turn-order entry for a nonexistent
// player. It indicates an engine bug, the hand is aborted and the error
// is never silently corrected.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Msg
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}
