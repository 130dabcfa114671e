package simulator

import (
	"fmt"
	"math/rand"

	"github.com/lox/holdem-engine/internal/engine"
)

// Strategy picks one action from the engine's legal action set. The
// engine guarantees every returned LegalAction is playable, so a
// strategy only chooses, it never re-validates.
type Strategy interface {
	Name() string
	Act(gs *engine.GameState, legal []engine.LegalAction) engine.Action
}

var validStrategies = map[string]bool{
	"caller": true,
	"folder": true,
	"raiser": true,
	"random": true,
}

// NewStrategy builds a strategy by config name.
func NewStrategy(name string, rng *rand.Rand) (Strategy, error) {
	switch name {
	case "caller":
		return &callingStation{}, nil
	case "folder":
		return &folder{}, nil
	case "raiser":
		return &raiser{}, nil
	case "random":
		return &randomStrategy{rng: rng}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func findAction(legal []engine.LegalAction, kind engine.ActionKind) (engine.LegalAction, bool) {
	for _, a := range legal {
		if a.Kind == kind {
			return a, true
		}
	}
	return engine.LegalAction{}, false
}

// callingStation checks when free and calls any bet, shoving only when
// calling is no longer affordable in full.
type callingStation struct{}

func (c *callingStation) Name() string { return "caller" }

func (c *callingStation) Act(gs *engine.GameState, legal []engine.LegalAction) engine.Action {
	if _, ok := findAction(legal, engine.Check); ok {
		return engine.Action{Kind: engine.Check}
	}
	if _, ok := findAction(legal, engine.Call); ok {
		return engine.Action{Kind: engine.Call}
	}
	if _, ok := findAction(legal, engine.AllIn); ok {
		return engine.Action{Kind: engine.AllIn}
	}
	return engine.Action{Kind: engine.Fold}
}

// folder surrenders to any wager and checks everything else down.
type folder struct{}

func (f *folder) Name() string { return "folder" }

func (f *folder) Act(gs *engine.GameState, legal []engine.LegalAction) engine.Action {
	if _, ok := findAction(legal, engine.Check); ok {
		return engine.Action{Kind: engine.Check}
	}
	return engine.Action{Kind: engine.Fold}
}

// raiser applies maximum pressure: minimum bet or raise whenever the
// action is open, otherwise call.
type raiser struct{}

func (r *raiser) Name() string { return "raiser" }

func (r *raiser) Act(gs *engine.GameState, legal []engine.LegalAction) engine.Action {
	if a, ok := findAction(legal, engine.Bet); ok {
		return engine.Action{Kind: engine.Bet, Amount: a.Min}
	}
	if a, ok := findAction(legal, engine.Raise); ok {
		return engine.Action{Kind: engine.Raise, Amount: a.Min}
	}
	if _, ok := findAction(legal, engine.Call); ok {
		return engine.Action{Kind: engine.Call}
	}
	if _, ok := findAction(legal, engine.AllIn); ok {
		return engine.Action{Kind: engine.AllIn}
	}
	return engine.Action{Kind: engine.Fold}
}

// randomStrategy plays a uniformly random legal action with a uniformly
// random size, which makes it a useful fuzzer for the engine.
type randomStrategy struct {
	rng *rand.Rand
}

func (r *randomStrategy) Name() string { return "random" }

func (r *randomStrategy) Act(gs *engine.GameState, legal []engine.LegalAction) engine.Action {
	choice := legal[r.rng.Intn(len(legal))]
	act := engine.Action{Kind: choice.Kind}
	switch choice.Kind {
	case engine.Bet, engine.Raise:
		act.Amount = choice.Min + r.rng.Intn(choice.Max-choice.Min+1)
	}
	return act
}
