package engine

import (
	"sort"

	"github.com/lox/holdem-engine/internal/evaluator"
)

// Pot is a main or side pot. Eligible lists the seats that can win it.
// Cap is the per-player total contribution that closed this layer
// (0 for the uncapped top layer).
type Pot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
	Main     bool  `json:"main"`
	Cap      int   `json:"cap,omitempty"`
}

// Ledger tracks the main pot and any side pots for a hand. Pot layers are
// rebuilt from the players' total contributions whenever bets are
// collected, so each short all-in spawns its own capped layer.
type Ledger struct {
	pots      []Pot
	collected int // total chips collected out of player bets
}

// NewLedger creates a ledger with a single empty main pot.
func NewLedger(players []*Player) *Ledger {
	l := &Ledger{}
	l.rebuild(players)
	return l
}

// Total returns the number of chips across all pots.
func (l *Ledger) Total() int {
	total := 0
	for _, pot := range l.pots {
		total += pot.Amount
	}
	return total
}

// Pots returns a deep copy of the current pot layers.
func (l *Ledger) Pots() []Pot {
	out := make([]Pot, len(l.pots))
	for i, pot := range l.pots {
		out[i] = pot
		out[i].Eligible = append([]int(nil), pot.Eligible...)
	}
	return out
}

// Collect sweeps each player's current-round wager into the ledger and
// recomputes the pot layers from total contributions.
func (l *Ledger) Collect(players []*Player) {
	for _, p := range players {
		if p.Bet > 0 {
			l.collected += p.Bet
			p.Bet = 0
		}
	}
	l.rebuild(players)
}

// rebuild derives the pot layers from collected contributions only; a
// wager still sitting in Player.Bet belongs to the live round, not the
// pot. Every non-folded all-in contribution closes a layer at that cap;
// contributions above the highest cap form the final uncapped layer.
// Folded players' chips stay in whichever layers they reached but folded
// players are never eligible.
func (l *Ledger) rebuild(players []*Player) {
	collected := func(p *Player) int { return p.TotalBet - p.Bet }

	levels := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if c := collected(p); p.AllIn && p.InHand() && c > 0 && !seen[c] {
			seen[c] = true
			levels = append(levels, c)
		}
	}
	sort.Ints(levels)

	pots := make([]Pot, 0, len(levels)+1)
	prev := 0
	for _, level := range levels {
		pot := Pot{Cap: level}
		for _, p := range players {
			c := collected(p)
			contrib := min(c, level) - min(c, prev)
			if contrib > 0 {
				pot.Amount += contrib
			}
			if p.InHand() && c > prev {
				pot.Eligible = append(pot.Eligible, p.Seat)
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}

	top := Pot{}
	for _, p := range players {
		if c := collected(p); c > prev {
			top.Amount += c - prev
			if p.InHand() {
				top.Eligible = append(top.Eligible, p.Seat)
			}
		}
	}
	if top.Amount > 0 || len(pots) == 0 {
		// Eligibility of an empty opening pot is everyone still in.
		if top.Amount == 0 {
			top.Eligible = nil
			for _, p := range players {
				if p.InHand() {
					top.Eligible = append(top.Eligible, p.Seat)
				}
			}
		}
		pots = append(pots, top)
	}

	pots[0].Main = true
	l.pots = pots
}

// ShowdownHand pairs a seat with its evaluated rank. Distribute preserves
// the order given, which fixes the deterministic odd-chip assignment.
type ShowdownHand struct {
	Seat int
	Rank evaluator.HandRank
}

// Payout is the amount a seat collects at resolution.
type Payout struct {
	Seat   int `json:"seat"`
	Amount int `json:"amount"`
}

// Distribute resolves every pot independently: candidates are restricted
// to the pot's eligible seats, the best hand among them takes the pot,
// ties split equally and any remainder chips go one at a time to the
// earliest tied winners in evaluation order. The sum of all payouts
// always equals the sum of all pots.
func (l *Ledger) Distribute(ranked []ShowdownHand) ([]Payout, error) {
	bySeat := make(map[int]*evaluator.HandRank, len(ranked))
	order := make([]int, 0, len(ranked))
	for i := range ranked {
		bySeat[ranked[i].Seat] = &ranked[i].Rank
		order = append(order, ranked[i].Seat)
	}

	amounts := make(map[int]int)
	for _, pot := range l.pots {
		if pot.Amount == 0 {
			continue
		}

		// Winners among eligible candidates, kept in evaluation order.
		var winners []int
		var best *evaluator.HandRank
		for _, seat := range order {
			if !containsSeat(pot.Eligible, seat) {
				continue
			}
			rank := bySeat[seat]
			if best == nil {
				best = rank
				winners = []int{seat}
				continue
			}
			switch evaluator.Compare(*rank, *best) {
			case 1:
				best = rank
				winners = []int{seat}
			case 0:
				winners = append(winners, seat)
			}
		}
		if len(winners) == 0 {
			return nil, invariantf("pot of %d has no eligible showdown hand", pot.Amount)
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, seat := range winners {
			amounts[seat] += share
			if i < remainder {
				amounts[seat]++
			}
		}
	}

	var payouts []Payout
	paid := 0
	for _, seat := range order {
		if amt := amounts[seat]; amt > 0 {
			payouts = append(payouts, Payout{Seat: seat, Amount: amt})
			paid += amt
		}
	}
	if paid != l.Total() {
		return nil, invariantf("distributed %d from pots totalling %d", paid, l.Total())
	}

	return payouts, nil
}

// AwardAll pays the entire ledger to a single seat, used when everyone
// else has folded.
func (l *Ledger) AwardAll(seat int) Payout {
	return Payout{Seat: seat, Amount: l.Total()}
}

// consume empties the ledger after its pots have been paid out, keeping
// the conservation invariant intact: awarded chips now live in stacks.
func (l *Ledger) consume() {
	l.pots = nil
	l.collected = 0
}

func containsSeat(seats []int, seat int) bool {
	for _, s := range seats {
		if s == seat {
			return true
		}
	}
	return false
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
