package engine

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Table runs a cash game across many hands: stacks persist between
// hands, the button rotates past eliminated seats, and broke players sit
// out until an external caller rebuys them. Each table is an isolated
// handle; nothing here is a process-wide singleton, so any number of
// tables can run independently.
type Table struct {
	rng        *rand.Rand
	smallBlind int
	bigBlind   int
	names      []string
	stacks     []int
	button     int
	handNum    int
	hand       *Hand
	logger     *log.Logger
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithTableLogger attaches a structured logger to the table and the
// hands it deals.
func WithTableLogger(logger *log.Logger) TableOption {
	return func(t *Table) {
		t.logger = logger
	}
}

// NewTable creates an empty table. The RNG drives every shuffle.
func NewTable(rng *rand.Rand, smallBlind, bigBlind int, opts ...TableOption) (*Table, error) {
	if rng == nil {
		return nil, fmt.Errorf("rng is required")
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", smallBlind, bigBlind)
	}
	t := &Table{
		rng:        rng,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		button:     -1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	return t, nil
}

// AddPlayer seats a player with a starting stack and returns their seat.
// Seats are fixed for the life of the table.
func (t *Table) AddPlayer(name string, chips int) (int, error) {
	if t.hand != nil && !t.hand.Complete() {
		return 0, fmt.Errorf("cannot seat players mid-hand")
	}
	if chips <= 0 {
		return 0, fmt.Errorf("buy-in must be positive")
	}
	t.names = append(t.names, name)
	t.stacks = append(t.stacks, chips)
	return len(t.names) - 1, nil
}

// Rebuy tops up a seat between hands.
func (t *Table) Rebuy(seat, chips int) error {
	if seat < 0 || seat >= len(t.stacks) {
		return fmt.Errorf("no such seat %d", seat)
	}
	if chips <= 0 {
		return fmt.Errorf("rebuy must be positive")
	}
	if t.hand != nil && !t.hand.Complete() {
		return fmt.Errorf("cannot rebuy mid-hand")
	}
	t.stacks[seat] += chips
	return nil
}

// Stacks returns a copy of the current stacks by seat.
func (t *Table) Stacks() []int {
	return append([]int(nil), t.stacks...)
}

// FundedPlayers returns the number of seats with chips.
func (t *Table) FundedPlayers() int {
	n := 0
	for _, chips := range t.stacks {
		if chips > 0 {
			n++
		}
	}
	return n
}

// DealNewHand rotates the button to the next funded seat and deals a
// fresh hand over the surviving stacks.
func (t *Table) DealNewHand() (*GameState, error) {
	if t.hand != nil && !t.hand.Complete() {
		return nil, fmt.Errorf("hand %d still in progress", t.handNum)
	}
	if t.FundedPlayers() < 2 {
		return nil, fmt.Errorf("need at least 2 funded players, have %d", t.FundedPlayers())
	}

	t.button = t.nextFundedSeat(t.button + 1)
	t.handNum++

	hand, err := NewHand(t.rng, t.names, t.button, t.smallBlind, t.bigBlind,
		WithChips(append([]int(nil), t.stacks...)),
		WithHandNum(t.handNum),
		WithLogger(t.logger),
	)
	if err != nil {
		return nil, err
	}
	t.hand = hand
	t.syncStacks()
	return hand.Snapshot(), nil
}

// SubmitAction forwards an action to the live hand. When the action
// completes the hand, the final stacks are carried back to the table.
func (t *Table) SubmitAction(seat int, act Action) (*GameState, error) {
	if t.hand == nil {
		return nil, fmt.Errorf("no hand dealt")
	}
	gs, err := t.hand.SubmitAction(seat, act)
	if err != nil {
		return nil, err
	}
	t.syncStacks()
	return gs, nil
}

// CurrentActor returns the seat due to act in the live hand.
func (t *Table) CurrentActor() (int, bool) {
	if t.hand == nil {
		return 0, false
	}
	return t.hand.CurrentActor()
}

// LegalActions returns the legal actions for the current actor.
func (t *Table) LegalActions() []LegalAction {
	if t.hand == nil {
		return nil
	}
	return t.hand.LegalActions()
}

// IsHandComplete reports whether the current hand has been resolved.
func (t *Table) IsHandComplete() bool {
	return t.hand == nil || t.hand.Complete()
}

// Result returns the result of the most recent hand, nil if unresolved.
func (t *Table) Result() *HandResult {
	if t.hand == nil {
		return nil
	}
	return t.hand.Result()
}

// Snapshot returns a deep copy of the live hand state, or nil before the
// first deal.
func (t *Table) Snapshot() *GameState {
	if t.hand == nil {
		return nil
	}
	return t.hand.Snapshot()
}

// HandNum returns the number of hands dealt so far.
func (t *Table) HandNum() int {
	return t.handNum
}

// Button returns the current dealer seat, -1 before the first hand.
func (t *Table) Button() int {
	return t.button
}

func (t *Table) syncStacks() {
	if t.hand == nil || !t.hand.Complete() {
		return
	}
	for i, p := range t.hand.players {
		t.stacks[i] = p.Chips
	}
}

func (t *Table) nextFundedSeat(from int) int {
	n := len(t.stacks)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if t.stacks[seat] > 0 {
			return seat
		}
	}
	return -1
}
