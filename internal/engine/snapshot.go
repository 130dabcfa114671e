package engine

import (
	"github.com/lox/holdem-engine/internal/deck"
)

// PlayerState is the externally visible view of a seat.
type PlayerState struct {
	Seat       int         `json:"seat"`
	Name       string      `json:"name"`
	Chips      int         `json:"chips"`
	HoleCards  []deck.Card `json:"hole_cards,omitempty"`
	Folded     bool        `json:"folded"`
	AllIn      bool        `json:"all_in"`
	SittingOut bool        `json:"sitting_out"`
	Bet        int         `json:"bet"`
	TotalBet   int         `json:"total_bet"`
}

// GameState is a deep, independent copy of the hand state. Mutating a
// snapshot never touches the engine's internals, and the engine never
// hands out references to its own pots, players or turn order. Snapshots
// round-trip through JSON without losing any field.
type GameState struct {
	HandNum    int            `json:"hand_num"`
	Street     Street         `json:"street"`
	Button     int            `json:"button"`
	SmallBlind int            `json:"small_blind"`
	BigBlind   int            `json:"big_blind"`
	SBSeat     int            `json:"sb_seat"`
	BBSeat     int            `json:"bb_seat"`
	Players    []PlayerState  `json:"players"`
	Board      []deck.Card    `json:"board"`
	Pots       []Pot          `json:"pots"`
	CurrentBet int            `json:"current_bet"`
	MinRaise   int            `json:"min_raise"`
	TurnOrder  []int          `json:"turn_order"`
	Actor      *int           `json:"actor,omitempty"` // nil when no decision pending
	Records    []ActionRecord `json:"records"`
	Complete   bool           `json:"complete"`
}

// Snapshot builds a deep copy of the current state.
func (h *Hand) Snapshot() *GameState {
	gs := &GameState{
		HandNum:    h.num,
		Street:     h.street,
		Button:     h.button,
		SmallBlind: h.smallBlind,
		BigBlind:   h.bigBlind,
		SBSeat:     h.sbSeat,
		BBSeat:     h.bbSeat,
		Board:      append([]deck.Card(nil), h.board...),
		Pots:       h.ledger.Pots(),
		CurrentBet: h.currentBet,
		MinRaise:   h.minRaise,
		TurnOrder:  h.queue.pending(),
		Records:    append([]ActionRecord(nil), h.records...),
		Complete:   h.result != nil,
	}

	for _, p := range h.players {
		gs.Players = append(gs.Players, PlayerState{
			Seat:       p.Seat,
			Name:       p.Name,
			Chips:      p.Chips,
			HoleCards:  append([]deck.Card(nil), p.HoleCards...),
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			SittingOut: p.SittingOut,
			Bet:        p.Bet,
			TotalBet:   p.TotalBet,
		})
	}

	if seat, ok := h.CurrentActor(); ok {
		gs.Actor = &seat
	}

	return gs
}

// PotTotal returns the chips across all pots plus uncollected wagers.
func (gs *GameState) PotTotal() int {
	total := 0
	for _, pot := range gs.Pots {
		total += pot.Amount
	}
	for _, p := range gs.Players {
		total += p.Bet
	}
	return total
}

func clonePots(pots []Pot) []Pot {
	out := make([]Pot, len(pots))
	for i, pot := range pots {
		out[i] = pot
		out[i].Eligible = append([]int(nil), pot.Eligible...)
	}
	return out
}
