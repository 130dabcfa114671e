package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
)

// Category represents the class of a poker hand, ordered weakest to strongest.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandRank is a totally ordered ranking of a 5-card hand: category first,
// then the category's defining rank value, then kickers in descending order.
// Cards holds the exact five cards used, so callers can highlight the
// winning combination.
type HandRank struct {
	Category Category    `json:"category"`
	Value    deck.Rank   `json:"value"`
	Kickers  []deck.Rank `json:"kickers,omitempty"`
	Cards    []deck.Card `json:"cards"`
}

// String returns a human-readable description like "Full House [2c 2d 2h 7s 7c]"
func (hr HandRank) String() string {
	strs := make([]string, len(hr.Cards))
	for i, c := range hr.Cards {
		strs[i] = c.String()
	}
	return fmt.Sprintf("%s [%s]", hr.Category, strings.Join(strs, " "))
}

// Compare orders two hand ranks: 1 if a is stronger, -1 if b is stronger,
// 0 only for a fully tied hand (category, value and every kicker equal).
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	if a.Value != b.Value {
		if a.Value > b.Value {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if a.Kickers[i] != b.Kickers[i] {
			if a.Kickers[i] > b.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Beats returns true if a strictly beats b.
func (hr HandRank) Beats(other HandRank) bool {
	return Compare(hr, other) > 0
}

// Ties returns true if the hands are of exactly equal strength.
func (hr HandRank) Ties(other HandRank) bool {
	return Compare(hr, other) == 0
}
