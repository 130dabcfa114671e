package engine

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

// Hand owns the authoritative state of a single hand. Callers submit one
// action at a time and receive deep-copied snapshots back; the internal
// players, pots and turn order are never shared outward.
type Hand struct {
	num        int
	players    []*Player
	button     int
	sbSeat     int
	bbSeat     int
	smallBlind int
	bigBlind   int
	street     Street
	board      []deck.Card
	deck       *deck.Deck
	ledger     *Ledger
	currentBet int
	minRaise   int
	queue      *actionQueue
	records    []ActionRecord
	result     *HandResult
	aborted    error
	logger     *log.Logger
	totalChips int
}

// Winner is one share of a resolved hand.
type Winner struct {
	Seat   int                 `json:"seat"`
	Name   string              `json:"name"`
	Amount int                 `json:"amount"`
	Rank   *evaluator.HandRank `json:"rank,omitempty"` // nil when won by fold
}

// HandResult describes a completed hand.
type HandResult struct {
	HandNum  int            `json:"hand_num"`
	Winners  []Winner       `json:"winners"`
	Pot      int            `json:"pot"`
	Showdown bool           `json:"showdown"`
	Board    []deck.Card    `json:"board"`
	Pots     []Pot          `json:"pots"`
	Records  []ActionRecord `json:"records"`
}

// NewHand creates and deals a new hand. The RNG is required so shuffles
// are deterministic under test; use WithDeck to stack the deal outright.
func NewHand(rng *rand.Rand, names []string, button, smallBlind, bigBlind int, opts ...HandOption) (*Hand, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("at least 2 players required")
	}
	if button < 0 || button >= len(names) {
		return nil, fmt.Errorf("button seat %d out of range", button)
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", smallBlind, bigBlind)
	}

	cfg := &handConfig{startChips: 1000}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.chipCounts != nil && len(cfg.chipCounts) != len(names) {
		return nil, fmt.Errorf("chip counts must match number of players")
	}

	h := &Hand{
		num:        cfg.handNum,
		button:     button,
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		street:     Preflop,
		minRaise:   bigBlind,
		logger:     cfg.logger,
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}

	for i, name := range names {
		chips := cfg.startChips
		if cfg.chipCounts != nil {
			chips = cfg.chipCounts[i]
		}
		h.players = append(h.players, &Player{
			Seat:       i,
			Name:       name,
			Chips:      chips,
			SittingOut: chips == 0,
		})
		h.totalChips += chips
	}

	funded := 0
	for _, p := range h.players {
		if !p.SittingOut {
			funded++
		}
	}
	if funded < 2 {
		return nil, fmt.Errorf("need at least 2 funded players, have %d", funded)
	}
	if h.players[button].SittingOut {
		return nil, fmt.Errorf("button seat %d is sitting out", button)
	}

	if cfg.deck != nil {
		h.deck = cfg.deck
	} else {
		if rng == nil {
			return nil, fmt.Errorf("rng is required without an explicit deck")
		}
		h.deck = deck.New(rng)
	}

	h.postBlinds(funded)
	if err := h.dealHoleCards(); err != nil {
		return nil, err
	}
	h.ledger = NewLedger(h.players)
	h.queue = h.buildRoundOrder()

	h.logger.Debug("hand dealt",
		"hand", h.num, "button", h.button, "sb", h.sbSeat, "bb", h.bbSeat, "players", funded)

	if err := h.settle(); err != nil {
		return nil, err
	}
	return h, nil
}

// postBlinds assigns blind seats and posts the forced wagers. Heads-up
// the button posts the small blind.
func (h *Hand) postBlinds(funded int) {
	if funded == 2 {
		h.sbSeat = h.button
		h.bbSeat = h.nextFunded(h.button + 1)
	} else {
		h.sbSeat = h.nextFunded(h.button + 1)
		h.bbSeat = h.nextFunded(h.sbSeat + 1)
	}

	h.players[h.sbSeat].pay(h.smallBlind)
	h.players[h.bbSeat].pay(h.bigBlind)
	h.currentBet = h.bigBlind
}

func (h *Hand) dealHoleCards() error {
	seat := h.nextFunded(h.button + 1)
	for i := 0; i < len(h.players); i++ {
		p := h.players[(seat+i)%len(h.players)]
		if p.SittingOut {
			continue
		}
		cards, err := h.deck.Deal(2)
		if err != nil {
			return err
		}
		p.HoleCards = cards
	}
	return nil
}

// nextFunded returns the first seat at or after the given position whose
// player is dealt into the hand.
func (h *Hand) nextFunded(from int) int {
	n := len(h.players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if !h.players[seat].SittingOut {
			return seat
		}
	}
	return -1
}

// buildRoundOrder constructs the turn order for the current street from a
// single read of player state: everyone who can still act, in seat order
// starting one past the big blind preflop or one past the button after.
func (h *Hand) buildRoundOrder() *actionQueue {
	start := h.button + 1
	if h.street == Preflop {
		start = h.bbSeat + 1
	}

	n := len(h.players)
	var seats []int
	for i := 0; i < n; i++ {
		p := h.players[((start+i)%n+n)%n]
		if p.CanAct() {
			seats = append(seats, p.Seat)
		}
	}
	return newActionQueue(seats)
}

// rebuildAfterAggression reopens the action: the new order holds, in seat
// order starting after the aggressor, every player who can act and has
// not yet matched the new table bet. The aggressor is excluded.
func (h *Hand) rebuildAfterAggression(aggressor int) {
	n := len(h.players)
	var seats []int
	for i := 1; i <= n; i++ {
		p := h.players[(aggressor+i)%n]
		if p.Seat != aggressor && p.CanAct() && p.Bet != h.currentBet {
			seats = append(seats, p.Seat)
		}
	}
	h.queue = newActionQueue(seats)
}

// CurrentActor returns the seat whose turn it is. ok is false once the
// hand is complete or no decision is pending.
func (h *Hand) CurrentActor() (int, bool) {
	if h.result != nil || h.aborted != nil {
		return 0, false
	}
	return h.queue.current()
}

// Complete returns true once the hand is resolved.
func (h *Hand) Complete() bool {
	return h.result != nil
}

// Result returns the hand result, or nil while play continues.
func (h *Hand) Result() *HandResult {
	if h.result == nil {
		return nil
	}
	out := *h.result
	out.Winners = append([]Winner(nil), h.result.Winners...)
	out.Board = append([]deck.Card(nil), h.result.Board...)
	out.Records = append([]ActionRecord(nil), h.result.Records...)
	out.Pots = clonePots(h.result.Pots)
	return &out
}

// LegalActions returns the legal action set for the current actor, or nil
// when no action is pending.
func (h *Hand) LegalActions() []LegalAction {
	seat, ok := h.CurrentActor()
	if !ok {
		return nil
	}
	return LegalActionsFor(h.players[seat], h.currentBet, h.minRaise, h.bigBlind)
}

// SubmitAction validates and applies one action as a single atomic
// transform: the action is checked against current state, the mutation is
// applied, and the turn order, street and pots are re-derived together.
// On any error the state is unchanged and the returned snapshot is nil.
func (h *Hand) SubmitAction(seat int, act Action) (*GameState, error) {
	if h.aborted != nil {
		return nil, h.aborted
	}
	if h.result != nil {
		return nil, reject(seat, act.Kind, ReasonHandComplete)
	}
	if seat < 0 || seat >= len(h.players) {
		return nil, reject(seat, act.Kind, ReasonUnknownSeat)
	}

	actor, ok := h.queue.current()
	if !ok {
		// settle() always leaves a pending actor or a result.
		return nil, h.abort(invariantf("no pending actor on %s with hand unresolved", h.street))
	}
	p := h.players[seat]
	if seat != actor {
		switch {
		case p.Folded:
			return nil, reject(seat, act.Kind, ReasonPlayerFolded)
		case p.AllIn:
			return nil, reject(seat, act.Kind, ReasonPlayerAllIn)
		default:
			return nil, rejectf(seat, act.Kind, ReasonNotYourTurn, "action on seat %d", actor)
		}
	}
	if err := validateAction(p, act, h.currentBet, h.minRaise, h.bigBlind); err != nil {
		return nil, err
	}

	h.apply(p, act)

	h.records = append(h.records, ActionRecord{
		HandNum:    h.num,
		Street:     h.street,
		Seat:       seat,
		Kind:       act.Kind,
		Amount:     p.Bet,
		PotAfter:   h.potTotal(),
		StackAfter: p.Chips,
	})
	h.logger.Debug("action applied",
		"hand", h.num, "street", h.street, "seat", seat, "action", act.Kind,
		"bet", p.Bet, "stack", p.Chips, "pot", h.potTotal())

	if err := h.settle(); err != nil {
		return nil, err
	}
	if err := h.auditChips(); err != nil {
		return nil, h.abort(err)
	}
	return h.Snapshot(), nil
}

// apply mutates the betting state for a validated action and re-derives
// the turn order. Validation has already succeeded, so this cannot fail.
func (h *Hand) apply(p *Player, act Action) {
	switch act.Kind {
	case Fold:
		p.Folded = true
		h.queue.remove(p.Seat)

	case Check:
		h.queue.advance()

	case Call:
		p.pay(h.currentBet - p.Bet)
		h.queue.advance()

	case Bet, Raise:
		prev := h.currentBet
		p.pay(act.Amount - p.Bet)
		h.currentBet = act.Amount
		h.minRaise = act.Amount - prev
		h.rebuildAfterAggression(p.Seat)

	case AllIn:
		p.pay(p.Chips)
		if p.Bet > h.currentBet {
			// A short all-in raise reopens action but does not
			// reset the minimum raise increment.
			if p.Bet-h.currentBet >= h.minRaise {
				h.minRaise = p.Bet - h.currentBet
			}
			h.currentBet = p.Bet
			h.rebuildAfterAggression(p.Seat)
		} else {
			h.queue.advance()
		}
	}

	// Anyone the action left all-in is no longer owed a decision.
	for _, other := range h.players {
		if other.AllIn && h.queue.contains(other.Seat) {
			h.queue.remove(other.Seat)
		}
	}
}

// settle drives the state machine after an action (or the initial deal):
// it detects round completion, advances streets, runs out the board when
// betting is over, and resolves the hand.
func (h *Hand) settle() error {
	for {
		if h.result != nil {
			return nil
		}

		inHand := h.playersInHand()
		if len(inHand) == 1 {
			return h.resolveByFold(inHand[0])
		}

		if !h.queue.exhausted() {
			return nil
		}

		// Round over. Everyone still able to act must have matched;
		// anything else means the order tracking broke.
		for _, p := range h.players {
			if p.CanAct() && p.Bet != h.currentBet {
				return h.abort(invariantf(
					"round complete on %s but seat %d bet %d vs table %d",
					h.street, p.Seat, p.Bet, h.currentBet))
			}
		}

		h.ledger.Collect(h.players)
		h.currentBet = 0
		h.minRaise = h.bigBlind

		if h.street == River {
			return h.resolveShowdown()
		}

		canAct := 0
		for _, p := range h.players {
			if p.CanAct() {
				canAct++
			}
		}
		if canAct <= 1 {
			// All betting is finished for the hand: run out the
			// remaining board and go straight to showdown.
			if err := h.runOutBoard(); err != nil {
				return h.abort(err)
			}
			return h.resolveShowdown()
		}

		if err := h.advanceStreet(); err != nil {
			return h.abort(err)
		}
		h.queue = h.buildRoundOrder()
		h.logger.Debug("street dealt", "hand", h.num, "street", h.street, "board", h.board)
	}
}

// advanceStreet moves to the next street and deals its community cards.
func (h *Hand) advanceStreet() error {
	h.street++
	need := h.street.boardCards() - len(h.board)
	if need > 0 {
		cards, err := h.deck.Deal(need)
		if err != nil {
			return err
		}
		h.board = append(h.board, cards...)
	}
	return nil
}

// runOutBoard deals every remaining community card at once.
func (h *Hand) runOutBoard() error {
	for h.street < River {
		if err := h.advanceStreet(); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hand) resolveByFold(winner *Player) error {
	h.ledger.Collect(h.players)
	payout := h.ledger.AwardAll(winner.Seat)
	pot := payout.Amount
	pots := h.ledger.Pots()
	winner.Chips += payout.Amount
	h.ledger.consume()

	h.street = Showdown
	h.result = &HandResult{
		HandNum:  h.num,
		Winners:  []Winner{{Seat: winner.Seat, Name: winner.Name, Amount: payout.Amount}},
		Pot:      pot,
		Board:    append([]deck.Card(nil), h.board...),
		Pots:     pots,
		Records:  append([]ActionRecord(nil), h.records...),
	}
	h.logger.Debug("hand won by fold", "hand", h.num, "seat", winner.Seat, "pot", pot)
	return h.auditChips()
}

// resolveShowdown evaluates every player still in the hand, in seat order
// starting past the button, and distributes each pot. That evaluation
// order also fixes where odd chips land.
func (h *Hand) resolveShowdown() error {
	var ranked []ShowdownHand
	n := len(h.players)
	for i := 1; i <= n; i++ {
		p := h.players[(h.button+i)%n]
		if !p.InHand() {
			continue
		}
		rank, err := evaluator.Evaluate(p.HoleCards, h.board)
		if err != nil {
			return h.abort(invariantf("showdown evaluation for seat %d: %v", p.Seat, err))
		}
		ranked = append(ranked, ShowdownHand{Seat: p.Seat, Rank: rank})
	}

	payouts, err := h.ledger.Distribute(ranked)
	if err != nil {
		return h.abort(err)
	}

	pot := h.ledger.Total()
	pots := h.ledger.Pots()
	var winners []Winner
	for _, payout := range payouts {
		p := h.players[payout.Seat]
		p.Chips += payout.Amount
		var rank *evaluator.HandRank
		for i := range ranked {
			if ranked[i].Seat == payout.Seat {
				r := ranked[i].Rank
				rank = &r
				break
			}
		}
		winners = append(winners, Winner{Seat: payout.Seat, Name: p.Name, Amount: payout.Amount, Rank: rank})
	}
	h.ledger.consume()

	h.street = Showdown
	h.result = &HandResult{
		HandNum:  h.num,
		Winners:  winners,
		Pot:      pot,
		Showdown: true,
		Board:    append([]deck.Card(nil), h.board...),
		Pots:     pots,
		Records:  append([]ActionRecord(nil), h.records...),
	}
	h.logger.Debug("hand resolved at showdown", "hand", h.num, "pot", pot, "winners", len(winners))
	return h.auditChips()
}

// potTotal is the live pot: collected chips plus wagers not yet swept.
func (h *Hand) potTotal() int {
	total := h.ledger.Total()
	for _, p := range h.players {
		total += p.Bet
	}
	return total
}

func (h *Hand) playersInHand() []*Player {
	var out []*Player
	for _, p := range h.players {
		if p.InHand() {
			out = append(out, p)
		}
	}
	return out
}

// auditChips verifies chip conservation: stacks plus live wagers plus
// pots must equal the chips the hand started with, after every action.
func (h *Hand) auditChips() error {
	total := 0
	for _, p := range h.players {
		if p.Chips < 0 {
			return invariantf("seat %d has negative stack %d", p.Seat, p.Chips)
		}
		total += p.Chips + p.Bet
	}
	total += h.ledger.Total()
	if total != h.totalChips {
		return invariantf("chip conservation broken: have %d, started with %d", total, h.totalChips)
	}
	return nil
}

// abort marks the hand unrecoverable. The defect is surfaced, never
// papered over by resetting indices.
func (h *Hand) abort(err error) error {
	h.aborted = err
	h.logger.Error("hand aborted", "hand", h.num, "error", err)
	return err
}
