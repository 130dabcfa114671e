package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-engine/internal/simulator"
)

var CLI struct {
	Config   string `short:"c" default:"holdem-sim.hcl" help:"Path to HCL configuration file"`
	Hands    int    `short:"n" help:"Number of hands per table (overrides config)"`
	Tables   int    `short:"t" help:"Number of parallel tables (overrides config)"`
	Seed     int64  `help:"RNG seed (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := simulator.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	if CLI.Hands > 0 {
		cfg.Simulation.Hands = CLI.Hands
	}
	if CLI.Tables > 0 {
		cfg.Simulation.Tables = CLI.Tables
	}
	if CLI.Seed != 0 {
		cfg.Simulation.Seed = CLI.Seed
	}
	if CLI.LogLevel != "" {
		cfg.Simulation.LogLevel = CLI.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "holdem-sim",
	})
	level, err := log.ParseLevel(cfg.Simulation.LogLevel)
	if err != nil {
		fmt.Printf("Invalid log level %q: %v\n", cfg.Simulation.LogLevel, err)
		kctx.Exit(1)
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting simulation",
		"tables", cfg.Simulation.Tables, "hands", cfg.Simulation.Hands,
		"blinds", fmt.Sprintf("%d/%d", cfg.Simulation.SmallBlind, cfg.Simulation.BigBlind),
		"players", len(cfg.Players))

	res, err := simulator.New(cfg, logger).Run(ctx)
	if err != nil {
		logger.Error("simulation failed", "error", err)
		kctx.Exit(1)
	}

	printResults(cfg, res)
}

func printResults(cfg *simulator.Config, res *simulator.Results) {
	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Simulation: %d hands across %d tables in %s",
		res.Hands, res.Tables, res.Elapsed.Round(time.Millisecond))))
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d showdowns, %d hands won by fold",
		res.Showdowns, res.FoldWins)))
	fmt.Println()

	// Most profitable first.
	names := make([]string, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		names = append(names, p.Name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return res.Net[names[i]] > res.Net[names[j]]
	})

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-12s %-10s %10s %8s", "PLAYER", "STRATEGY", "NET", "WINS")))
	for _, name := range names {
		strategy := ""
		for _, p := range cfg.Players {
			if p.Name == name {
				strategy = p.Strategy
			}
		}
		net := res.Net[name]
		netStr := fmt.Sprintf("%+d", net)
		style := winStyle
		if net < 0 {
			style = lossStyle
		}
		fmt.Printf("%s %s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-12s", name)),
			dimStyle.Render(fmt.Sprintf("%-10s", strategy)),
			style.Render(fmt.Sprintf("%10s", netStr)),
			fmt.Sprintf("%8d", res.Wins[name]))
	}
	fmt.Println()
	fmt.Println(dimStyle.Render(strings.Repeat("─", 44)))
}
