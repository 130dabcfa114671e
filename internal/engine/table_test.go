package engine

import (
	"math/rand"
	"testing"
)

func newTestTable(t *testing.T, seed int64, sb, bb int, stacks ...int) *Table {
	t.Helper()
	tbl, err := NewTable(rand.New(rand.NewSource(seed)), sb, bb)
	if err != nil {
		t.Fatal(err)
	}
	for i, chips := range stacks {
		if _, err := tbl.AddPlayer(string(rune('a'+i)), chips); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func foldToBigBlind(t *testing.T, tbl *Table) {
	t.Helper()
	for !tbl.IsHandComplete() {
		seat, ok := tbl.CurrentActor()
		if !ok {
			t.Fatal("no actor with hand unresolved")
		}
		act := Action{Kind: Fold}
		if _, found := findKind(tbl.LegalActions(), Fold); !found {
			act = Action{Kind: Check}
		}
		if _, err := tbl.SubmitAction(seat, act); err != nil {
			t.Fatalf("seat %d: %v", seat, err)
		}
	}
}

func findKind(actions []LegalAction, kind ActionKind) (LegalAction, bool) {
	for _, a := range actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return LegalAction{}, false
}

func TestTableRotatesButtonAndCarriesStacks(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, 1, 5, 10, 1000, 1000, 1000)

	if _, err := tbl.DealNewHand(); err != nil {
		t.Fatal(err)
	}
	if tbl.Button() != 0 {
		t.Fatalf("button = %d, want 0", tbl.Button())
	}
	foldToBigBlind(t, tbl)

	// Everyone folded to the big blind: seat 2 picks up the blinds.
	want := []int{1000, 995, 1005}
	for i, chips := range tbl.Stacks() {
		if chips != want[i] {
			t.Fatalf("stacks after hand 1 = %v, want %v", tbl.Stacks(), want)
		}
	}

	if _, err := tbl.DealNewHand(); err != nil {
		t.Fatal(err)
	}
	if tbl.Button() != 1 || tbl.HandNum() != 2 {
		t.Fatalf("button/hand = %d/%d, want 1/2", tbl.Button(), tbl.HandNum())
	}
	foldToBigBlind(t, tbl)

	want = []int{1005, 995, 1000}
	for i, chips := range tbl.Stacks() {
		if chips != want[i] {
			t.Fatalf("stacks after hand 2 = %v, want %v", tbl.Stacks(), want)
		}
	}
}

func TestTableButtonSkipsBrokeSeats(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, 1, 5, 10, 1000, 1000, 1000)
	tbl.stacks[1] = 0

	if _, err := tbl.DealNewHand(); err != nil {
		t.Fatal(err)
	}
	foldToBigBlind(t, tbl)

	// The next button would be seat 1, but it is broke.
	if _, err := tbl.DealNewHand(); err != nil {
		t.Fatal(err)
	}
	if tbl.Button() != 2 {
		t.Errorf("button = %d, want 2 skipping the broke seat", tbl.Button())
	}
}

func TestTableGuards(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, 1, 5, 10, 1000, 1000)

	if _, err := tbl.DealNewHand(); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.DealNewHand(); err == nil {
		t.Error("dealing over a live hand must fail")
	}
	if _, err := tbl.AddPlayer("late", 1000); err == nil {
		t.Error("seating a player mid-hand must fail")
	}
	if err := tbl.Rebuy(0, 500); err == nil {
		t.Error("rebuying mid-hand must fail")
	}
	foldToBigBlind(t, tbl)

	if err := tbl.Rebuy(0, 500); err != nil {
		t.Errorf("rebuy between hands: %v", err)
	}
	if err := tbl.Rebuy(9, 500); err == nil {
		t.Error("rebuying an unknown seat must fail")
	}
}

func TestTableNeedsTwoFundedPlayers(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, 1, 5, 10, 1000, 1000)
	tbl.stacks[1] = 0

	if _, err := tbl.DealNewHand(); err == nil {
		t.Error("one funded player cannot be dealt a hand")
	}

	if err := tbl.Rebuy(1, 500); err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.DealNewHand(); err != nil {
		t.Errorf("rebuy should make the table playable again: %v", err)
	}
}

// TestRandomPlayConservesChips drives many hands of random legal actions
// and checks that no chip is ever created or destroyed, every offered
// action is accepted by the engine, and eliminated seats stay out.
func TestRandomPlayConservesChips(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	tbl := newTestTable(t, 42, 5, 10, 500, 500, 500, 500)
	const total = 2000

	for hand := 0; hand < 200 && tbl.FundedPlayers() >= 2; hand++ {
		if _, err := tbl.DealNewHand(); err != nil {
			t.Fatal(err)
		}

		for !tbl.IsHandComplete() {
			seat, ok := tbl.CurrentActor()
			if !ok {
				t.Fatal("no actor with hand unresolved")
			}
			actions := tbl.LegalActions()
			if len(actions) == 0 {
				t.Fatalf("no legal actions for seat %d", seat)
			}
			choice := actions[rng.Intn(len(actions))]

			act := Action{Kind: choice.Kind}
			switch choice.Kind {
			case Bet, Raise:
				act.Amount = choice.Min + rng.Intn(choice.Max-choice.Min+1)
			}

			gs, err := tbl.SubmitAction(seat, act)
			if err != nil {
				t.Fatalf("hand %d seat %d %s: %v", hand, seat, act.Kind, err)
			}

			sum := gs.PotTotal()
			for _, p := range gs.Players {
				sum += p.Chips
			}
			if sum != total {
				t.Fatalf("hand %d: %d chips on the table, started with %d", hand, sum, total)
			}
		}

		sum := 0
		for _, chips := range tbl.Stacks() {
			sum += chips
		}
		if sum != total {
			t.Fatalf("hand %d: stacks sum to %d, want %d", hand, sum, total)
		}
	}
}
