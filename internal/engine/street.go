package engine

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// boardCards returns how many community cards are on the table for a street.
func (s Street) boardCards() int {
	switch s {
	case Preflop:
		return 0
	case Flop:
		return 3
	case Turn:
		return 4
	default:
		return 5
	}
}

// ActionKind represents the kind of player action
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionKind) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// Action is a proposed player action. Amount is the new total wager for
// this round and only applies to Bet and Raise; other kinds ignore it.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Amount int        `json:"amount,omitempty"`
}

// ActionRecord is an append-only log entry describing an applied action.
// It exists for replay and audit and is never consulted by engine logic.
type ActionRecord struct {
	HandNum    int        `json:"hand_num"`
	Street     Street     `json:"street"`
	Seat       int        `json:"seat"`
	Kind       ActionKind `json:"kind"`
	Amount     int        `json:"amount"`
	PotAfter   int        `json:"pot_after"`
	StackAfter int        `json:"stack_after"`
}
