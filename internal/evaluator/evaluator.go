package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-engine/internal/deck"
)

// Evaluate finds the best 5-card hand from two hole cards and up to five
// board cards. At least five cards in total are required. Every 5-card
// subset is scored and the strongest is returned.
func Evaluate(hole []deck.Card, board []deck.Card) (HandRank, error) {
	cards := make([]deck.Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)

	if len(cards) < 5 {
		return HandRank{}, fmt.Errorf("need at least 5 cards, have %d", len(cards))
	}
	if len(cards) > 7 {
		return HandRank{}, fmt.Errorf("too many cards: %d", len(cards))
	}

	var best HandRank
	first := true
	combo := [5]deck.Card{}
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						combo[0], combo[1], combo[2], combo[3], combo[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						rank := scoreFive(combo)
						if first || Compare(rank, best) > 0 {
							best = rank
							first = false
						}
					}
				}
			}
		}
	}

	return best, nil
}

// scoreFive ranks exactly five cards.
func scoreFive(combo [5]deck.Card) HandRank {
	cards := make([]deck.Card, 5)
	copy(cards, combo[:])
	sort.Slice(cards, func(i, j int) bool { return cards[i].Rank > cards[j].Rank })

	flush := true
	for i := 1; i < 5; i++ {
		if cards[i].Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh, isStraight := straightHigh(cards)

	if flush && isStraight {
		if straightHigh == deck.Ace {
			return HandRank{Category: RoyalFlush, Value: deck.Ace, Cards: cards}
		}
		return HandRank{Category: StraightFlush, Value: straightHigh, Cards: cards}
	}

	// Group ranks by multiplicity, groups of equal size ordered high to low.
	counts := map[deck.Rank]int{}
	for _, c := range cards {
		counts[c.Rank]++
	}
	type group struct {
		rank  deck.Rank
		count int
	}
	groups := make([]group, 0, 5)
	for r, n := range counts {
		groups = append(groups, group{rank: r, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	kickersAfter := func(skip int) []deck.Rank {
		var ks []deck.Rank
		for _, g := range groups[skip:] {
			ks = append(ks, g.rank)
		}
		return ks
	}

	switch {
	case groups[0].count == 4:
		return HandRank{Category: FourOfAKind, Value: groups[0].rank, Kickers: kickersAfter(1), Cards: cards}

	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: FullHouse, Value: groups[0].rank, Kickers: []deck.Rank{groups[1].rank}, Cards: cards}

	case flush:
		return HandRank{Category: Flush, Value: cards[0].Rank, Kickers: ranksOf(cards[1:]), Cards: cards}

	case isStraight:
		return HandRank{Category: Straight, Value: straightHigh, Cards: cards}

	case groups[0].count == 3:
		return HandRank{Category: ThreeOfAKind, Value: groups[0].rank, Kickers: kickersAfter(1), Cards: cards}

	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: TwoPair, Value: groups[0].rank, Kickers: []deck.Rank{groups[1].rank, groups[2].rank}, Cards: cards}

	case groups[0].count == 2:
		return HandRank{Category: Pair, Value: groups[0].rank, Kickers: kickersAfter(1), Cards: cards}

	default:
		return HandRank{Category: HighCard, Value: cards[0].Rank, Kickers: ranksOf(cards[1:]), Cards: cards}
	}
}

// straightHigh reports whether the five cards (sorted descending) form a
// straight and returns its high rank. The wheel A-2-3-4-5 ranks as 5-high.
func straightHigh(cards []deck.Card) (deck.Rank, bool) {
	run := true
	for i := 1; i < 5; i++ {
		if cards[i-1].Rank != cards[i].Rank+1 {
			run = false
			break
		}
	}
	if run {
		return cards[0].Rank, true
	}

	// Wheel: A 5 4 3 2 in descending order.
	if cards[0].Rank == deck.Ace &&
		cards[1].Rank == deck.Five &&
		cards[2].Rank == deck.Four &&
		cards[3].Rank == deck.Three &&
		cards[4].Rank == deck.Two {
		return deck.Five, true
	}

	return 0, false
}

func ranksOf(cards []deck.Card) []deck.Rank {
	ranks := make([]deck.Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	return ranks
}
