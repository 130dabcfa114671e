package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/engine"
	"github.com/lox/holdem-engine/internal/randutil"
)

// Simulator plays configured strategies against each other across one or
// more independent tables, one goroutine per table. Tables never share
// state, so the only synchronisation is joining the workers.
type Simulator struct {
	cfg    *Config
	logger *log.Logger
}

// TableResult aggregates one table's run.
type TableResult struct {
	Table     int
	Hands     int
	Showdowns int
	FoldWins  int
	Net       map[string]int
	Wins      map[string]int
}

// Results aggregates every table.
type Results struct {
	Tables    int
	Hands     int
	Showdowns int
	FoldWins  int
	Net       map[string]int
	Wins      map[string]int
	Elapsed   time.Duration
}

// New creates a simulator from a validated configuration.
func New(cfg *Config, logger *log.Logger) *Simulator {
	return &Simulator{cfg: cfg, logger: logger}
}

// Run plays the configured number of hands at every table in parallel
// and merges the per-table results. The first engine error cancels the
// whole run: a simulator never plays on through a corrupted game.
func (s *Simulator) Run(ctx context.Context) (*Results, error) {
	start := time.Now()

	results := make([]*TableResult, s.cfg.Simulation.Tables)
	g, ctx := errgroup.WithContext(ctx)
	for i := range results {
		i := i
		g.Go(func() error {
			res, err := s.runTable(ctx, i)
			if err != nil {
				return fmt.Errorf("table %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Results{
		Tables: len(results),
		Net:    make(map[string]int),
		Wins:   make(map[string]int),
	}
	for _, res := range results {
		merged.Hands += res.Hands
		merged.Showdowns += res.Showdowns
		merged.FoldWins += res.FoldWins
		for name, net := range res.Net {
			merged.Net[name] += net
		}
		for name, wins := range res.Wins {
			merged.Wins[name] += wins
		}
	}
	merged.Elapsed = time.Since(start)

	s.logger.Info("simulation complete",
		"tables", merged.Tables, "hands", merged.Hands,
		"showdowns", merged.Showdowns, "elapsed", merged.Elapsed)
	return merged, nil
}

func (s *Simulator) runTable(ctx context.Context, id int) (*TableResult, error) {
	// Each table gets its own RNG so runs are reproducible regardless of
	// goroutine scheduling.
	rng := randutil.New(s.cfg.Simulation.Seed + int64(id))
	logger := s.logger.WithPrefix(fmt.Sprintf("table-%d", id))

	tbl, err := engine.NewTable(rng, s.cfg.Simulation.SmallBlind, s.cfg.Simulation.BigBlind,
		engine.WithTableLogger(logger))
	if err != nil {
		return nil, err
	}

	strategies := make(map[int]Strategy)
	buyIns := make(map[int]int)
	names := make(map[int]string)
	for _, pc := range s.cfg.Players {
		strat, err := NewStrategy(pc.Strategy, rng)
		if err != nil {
			return nil, err
		}
		seat, err := tbl.AddPlayer(pc.Name, pc.BuyIn)
		if err != nil {
			return nil, err
		}
		strategies[seat] = strat
		buyIns[seat] = pc.BuyIn
		names[seat] = pc.Name
	}

	res := &TableResult{
		Table: id,
		Net:   make(map[string]int),
		Wins:  make(map[string]int),
	}

	for res.Hands < s.cfg.Simulation.Hands && tbl.FundedPlayers() >= 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if _, err := tbl.DealNewHand(); err != nil {
			return nil, err
		}

		for !tbl.IsHandComplete() {
			seat, ok := tbl.CurrentActor()
			if !ok {
				return nil, fmt.Errorf("hand %d unresolved with no actor", tbl.HandNum())
			}
			act := strategies[seat].Act(tbl.Snapshot(), tbl.LegalActions())
			if _, err := tbl.SubmitAction(seat, act); err != nil {
				return nil, fmt.Errorf("hand %d seat %d: %w", tbl.HandNum(), seat, err)
			}
		}

		hr := tbl.Result()
		res.Hands++
		if hr.Showdown {
			res.Showdowns++
		} else {
			res.FoldWins++
		}
		for _, w := range hr.Winners {
			res.Wins[w.Name]++
		}
	}

	for seat, chips := range tbl.Stacks() {
		res.Net[names[seat]] = chips - buyIns[seat]
	}

	// Chips only move between seats, never in or out of the table.
	totalNet := 0
	for _, net := range res.Net {
		totalNet += net
	}
	if totalNet != 0 {
		return nil, fmt.Errorf("table leaked %d chips over %d hands", totalNet, res.Hands)
	}

	logger.Debug("table finished", "hands", res.Hands, "showdowns", res.Showdowns)
	return res, nil
}
