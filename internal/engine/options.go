package engine

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/deck"
)

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

type handConfig struct {
	chipCounts []int
	startChips int
	deck       *deck.Deck
	logger     *log.Logger
	handNum    int
}

// WithUniformChips sets the same starting stack for every player.
// Default is 1000.
func WithUniformChips(chips int) HandOption {
	return func(c *handConfig) {
		c.startChips = chips
		c.chipCounts = nil
	}
}

// WithChips sets individual starting stacks. The length must match the
// number of players; a zero stack seats the player out for the hand.
func WithChips(chips []int) HandOption {
	return func(c *handConfig) {
		c.chipCounts = chips
	}
}

// WithDeck supplies a pre-built deck, overriding the RNG shuffle.
// Combined with deck.Stacked this makes deals fully deterministic.
func WithDeck(d *deck.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = d
	}
}

// WithLogger attaches a structured logger. Without one the hand logs to
// a discard writer.
func WithLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) {
		c.logger = logger
	}
}

// WithHandNum tags the hand with a sequence number for records.
func WithHandNum(num int) HandOption {
	return func(c *handConfig) {
		c.handNum = num
	}
}
