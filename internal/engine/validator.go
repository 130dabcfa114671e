package engine

// LegalAction describes one action kind available to the current actor.
// Min and Max bound the new total wager for Bet and Raise; for Call they
// both hold the amount owed; for AllIn the player's remaining stack.
type LegalAction struct {
	Kind ActionKind `json:"kind"`
	Min  int        `json:"min,omitempty"`
	Max  int        `json:"max,omitempty"`
}

// LegalActionsFor derives the legal action set for a player from the
// table's current bet, the minimum raise increment and the minimum
// opening bet. It is a pure function of its inputs: external strategy
// modules are expected to consult it before constructing an action.
//
// With nothing to match the set is {check, bet, all-in}; facing a wager
// it is {fold, call, raise, all-in}. All-in is legal whenever the player
// has chips. Folding with nothing to call is not legal: checking is free.
func LegalActionsFor(p *Player, currentBet, minRaise, minBet int) []LegalAction {
	if !p.CanAct() {
		return nil
	}

	toCall := currentBet - p.Bet
	total := p.Bet + p.Chips

	var actions []LegalAction
	if toCall <= 0 {
		actions = append(actions, LegalAction{Kind: Check})
		openTo := minBet
		if currentBet > 0 {
			// Already matched a live wager (the big blind option):
			// reopening must reach a full raise.
			openTo = currentBet + minRaise
		}
		if total >= openTo && p.Chips > 0 {
			actions = append(actions, LegalAction{Kind: Bet, Min: openTo, Max: total})
		}
	} else {
		actions = append(actions, LegalAction{Kind: Fold})
		if p.Chips >= toCall {
			actions = append(actions, LegalAction{Kind: Call, Min: toCall, Max: toCall})
		}
		if p.Chips > toCall && total >= currentBet+minRaise {
			actions = append(actions, LegalAction{Kind: Raise, Min: currentBet + minRaise, Max: total})
		}
	}
	if p.Chips > 0 {
		actions = append(actions, LegalAction{Kind: AllIn, Min: p.Chips, Max: p.Chips})
	}

	return actions
}

// validateAction checks a proposed action against the actor's betting
// state, returning a ValidationError with a specific reason when the
// action is outside the legal set. The caller has already established
// that it is this player's turn.
func validateAction(p *Player, act Action, currentBet, minRaise, minBet int) error {
	if p.Folded {
		return reject(p.Seat, act.Kind, ReasonPlayerFolded)
	}
	if p.AllIn || p.SittingOut || p.Chips == 0 {
		return reject(p.Seat, act.Kind, ReasonPlayerAllIn)
	}

	toCall := currentBet - p.Bet
	total := p.Bet + p.Chips

	switch act.Kind {
	case Fold:
		if toCall <= 0 {
			return rejectf(p.Seat, act.Kind, ReasonNothingToCall, "check instead")
		}

	case Check:
		if toCall > 0 {
			return rejectf(p.Seat, act.Kind, ReasonFacingBet, "must call %d", toCall)
		}

	case Call:
		if toCall <= 0 {
			return reject(p.Seat, act.Kind, ReasonNothingToCall)
		}
		if p.Chips < toCall {
			return rejectf(p.Seat, act.Kind, ReasonInsufficientChips, "owe %d with stack %d", toCall, p.Chips)
		}

	case Bet:
		if toCall > 0 {
			return rejectf(p.Seat, act.Kind, ReasonFacingBet, "raise instead")
		}
		openTo := minBet
		if currentBet > 0 {
			openTo = currentBet + minRaise
		}
		if act.Amount < openTo {
			return rejectf(p.Seat, act.Kind, ReasonBetTooSmall, "minimum %d", openTo)
		}
		if act.Amount > total {
			return rejectf(p.Seat, act.Kind, ReasonInsufficientChips, "bet %d with %d behind", act.Amount, total)
		}

	case Raise:
		if toCall <= 0 {
			return rejectf(p.Seat, act.Kind, ReasonNoOutstandingBet, "bet instead")
		}
		if act.Amount > total {
			return rejectf(p.Seat, act.Kind, ReasonInsufficientChips, "raise to %d with %d behind", act.Amount, total)
		}
		if act.Amount < currentBet+minRaise {
			return rejectf(p.Seat, act.Kind, ReasonRaiseTooSmall, "minimum %d", currentBet+minRaise)
		}

	case AllIn:
		// Always legal with chips behind; the zero-chip case was
		// rejected above.

	default:
		return rejectf(p.Seat, act.Kind, ReasonFacingBet, "unknown action")
	}

	return nil
}
