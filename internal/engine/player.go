package engine

import "github.com/lox/holdem-engine/internal/deck"

// Player represents a seat in a hand
type Player struct {
	Seat       int
	Name       string
	Chips      int
	HoleCards  []deck.Card
	Folded     bool
	AllIn      bool
	SittingOut bool // seated with no chips, skipped for the whole hand
	Bet        int  // wager in the current betting round
	TotalBet   int  // total wagered this hand
}

// CanAct returns true if the player can still make a betting decision.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && !p.SittingOut && p.Chips > 0
}

// InHand returns true if the player has not folded and is dealt in.
func (p *Player) InHand() bool {
	return !p.Folded && !p.SittingOut
}

// pay moves up to amount chips from the stack into the current bet,
// marking the player all-in when the stack empties.
func (p *Player) pay(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}
