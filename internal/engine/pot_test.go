package engine

import (
	"testing"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/evaluator"
)

func contributed(seat, amount int, allIn bool) *Player {
	return &Player{
		Seat:     seat,
		Chips:    1000,
		Bet:      amount,
		TotalBet: amount,
		AllIn:    allIn,
	}
}

func TestSidePotLayers(t *testing.T) {
	t.Parallel()

	// Short all-in for 50 against two full 100 wagers: a 150 main pot
	// everyone can win and a 100 side pot for the two big stacks.
	players := []*Player{
		contributed(0, 50, true),
		contributed(1, 100, false),
		contributed(2, 100, false),
	}

	l := NewLedger(players)
	l.Collect(players)

	pots := l.Pots()
	if len(pots) != 2 {
		t.Fatalf("expected 2 pots, got %d: %+v", len(pots), pots)
	}

	main := pots[0]
	if !main.Main || main.Amount != 150 || main.Cap != 50 {
		t.Errorf("main pot = %+v, want 150 capped at 50", main)
	}
	if len(main.Eligible) != 3 {
		t.Errorf("main pot eligible = %v, want all three seats", main.Eligible)
	}

	side := pots[1]
	if side.Main || side.Amount != 100 {
		t.Errorf("side pot = %+v, want 100", side)
	}
	if len(side.Eligible) != 2 || !containsSeat(side.Eligible, 1) || !containsSeat(side.Eligible, 2) {
		t.Errorf("side pot eligible = %v, want seats 1 and 2", side.Eligible)
	}

	if l.Total() != 250 {
		t.Errorf("total = %d, want 250", l.Total())
	}
}

func TestFoldedChipsStayInPotButFoldedNeverEligible(t *testing.T) {
	t.Parallel()

	folded := contributed(1, 60, false)
	folded.Folded = true
	players := []*Player{
		contributed(0, 100, false),
		folded,
		contributed(2, 100, false),
	}

	l := NewLedger(players)
	l.Collect(players)

	pots := l.Pots()
	if len(pots) != 1 {
		t.Fatalf("expected single pot, got %d", len(pots))
	}
	if pots[0].Amount != 260 {
		t.Errorf("pot = %d, want 260 including the folded chips", pots[0].Amount)
	}
	if containsSeat(pots[0].Eligible, 1) {
		t.Errorf("folded seat 1 must not be eligible: %v", pots[0].Eligible)
	}
}

func TestMultipleAllInLevels(t *testing.T) {
	t.Parallel()

	players := []*Player{
		contributed(0, 25, true),
		contributed(1, 75, true),
		contributed(2, 200, false),
		contributed(3, 200, false),
	}

	l := NewLedger(players)
	l.Collect(players)

	pots := l.Pots()
	if len(pots) != 3 {
		t.Fatalf("expected 3 pots, got %d: %+v", len(pots), pots)
	}

	wantAmounts := []int{100, 150, 250}
	wantEligible := []int{4, 3, 2}
	for i, pot := range pots {
		if pot.Amount != wantAmounts[i] {
			t.Errorf("pot %d amount = %d, want %d", i, pot.Amount, wantAmounts[i])
		}
		if len(pot.Eligible) != wantEligible[i] {
			t.Errorf("pot %d eligible = %v, want %d seats", i, pot.Eligible, wantEligible[i])
		}
	}
	if l.Total() != 500 {
		t.Errorf("total = %d, want 500", l.Total())
	}
}

func rankOf(t *testing.T, hole, board string) evaluator.HandRank {
	t.Helper()
	h, err := deck.ParseAll(hole)
	if err != nil {
		t.Fatal(err)
	}
	b, err := deck.ParseAll(board)
	if err != nil {
		t.Fatal(err)
	}
	rank, err := evaluator.Evaluate(h, b)
	if err != nil {
		t.Fatal(err)
	}
	return rank
}

func TestDistributePerPotWinners(t *testing.T) {
	t.Parallel()

	// Seat 0 is all-in short with the best hand: it takes the main pot
	// only, and the side pot goes to the better of the other two.
	players := []*Player{
		contributed(0, 50, true),
		contributed(1, 100, false),
		contributed(2, 100, false),
	}
	l := NewLedger(players)
	l.Collect(players)

	board := "2c 7d 9h 3s 5c"
	ranked := []ShowdownHand{
		{Seat: 1, Rank: rankOf(t, "Kh Kd", board)},
		{Seat: 2, Rank: rankOf(t, "Qh Qd", board)},
		{Seat: 0, Rank: rankOf(t, "Ah Ad", board)},
	}

	payouts, err := l.Distribute(ranked)
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[int]int)
	for _, p := range payouts {
		got[p.Seat] = p.Amount
	}
	if got[0] != 150 {
		t.Errorf("seat 0 payout = %d, want main pot 150", got[0])
	}
	if got[1] != 100 {
		t.Errorf("seat 1 payout = %d, want side pot 100", got[1])
	}
	if got[2] != 0 {
		t.Errorf("seat 2 payout = %d, want 0", got[2])
	}
}

func TestDistributeOddChipGoesToFirstInOrder(t *testing.T) {
	t.Parallel()

	players := []*Player{
		contributed(0, 10, false),
		contributed(1, 5, false),
		contributed(2, 10, false),
	}
	players[1].Folded = true
	l := NewLedger(players)
	l.Collect(players)

	// Board plays for both live hands: 25 chips split 13/12 with the
	// extra chip going to the seat listed first.
	board := "As Ks Qs Js Ts"
	ranked := []ShowdownHand{
		{Seat: 2, Rank: rankOf(t, "2h 3d", board)},
		{Seat: 0, Rank: rankOf(t, "2d 3h", board)},
	}

	payouts, err := l.Distribute(ranked)
	if err != nil {
		t.Fatal(err)
	}
	if len(payouts) != 2 {
		t.Fatalf("expected 2 payouts, got %+v", payouts)
	}

	got := make(map[int]int)
	for _, p := range payouts {
		got[p.Seat] = p.Amount
	}
	if got[2] != 13 || got[0] != 12 {
		t.Errorf("payouts = %v, want seat 2 = 13 and seat 0 = 12", got)
	}
}

func TestDistributeConservesEveryChip(t *testing.T) {
	t.Parallel()

	players := []*Player{
		contributed(0, 33, true),
		contributed(1, 77, true),
		contributed(2, 120, false),
		contributed(3, 120, false),
	}
	l := NewLedger(players)
	l.Collect(players)
	total := l.Total()

	board := "2c 7d 9h 3s 5c"
	ranked := []ShowdownHand{
		{Seat: 1, Rank: rankOf(t, "Ah Ad", board)},
		{Seat: 2, Rank: rankOf(t, "Kh Kd", board)},
		{Seat: 3, Rank: rankOf(t, "Qh Qd", board)},
		{Seat: 0, Rank: rankOf(t, "Jh Jd", board)},
	}

	payouts, err := l.Distribute(ranked)
	if err != nil {
		t.Fatal(err)
	}
	paid := 0
	for _, p := range payouts {
		paid += p.Amount
	}
	if paid != total {
		t.Errorf("paid %d of %d", paid, total)
	}
}
