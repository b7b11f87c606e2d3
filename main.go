package main

import (
	"connect4/config"
	"connect4/engine"
	"connect4/experiments"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher/agent"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	mode := flag.String("mode", "game", "game or experiment")
	kindA := flag.String("a", agent.KindMinimax, "agent playing A: minimax, montecarlo, uct or random")
	kindB := flag.String("b", agent.KindMonteCarlo, "agent playing B: minimax, montecarlo, uct or random")
	opening := flag.String("opening", "", "comma-separated columns played before the agents take over, A first")
	experiment := flag.String("experiment", "strength", "strength, throughput or baseline")
	duration := flag.Duration("duration", 10*time.Millisecond, "UCT time budget per move in the throughput experiment")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "board rows")
	flag.IntVar(&cfg.Cols, "cols", cfg.Cols, "board columns")
	flag.IntVar(&cfg.Connect, "connect", cfg.Connect, "pieces in a row needed to win")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "minimax search depth")
	flag.IntVar(&cfg.Simulations, "simulations", cfg.Simulations, "Monte-Carlo playouts per column")
	flag.IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "UCT iterations per move")
	flag.IntVar(&cfg.Goroutines, "goroutines", cfg.Goroutines, "goroutines per search")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 seeds from the clock")
	flag.IntVar(&cfg.Games, "games", cfg.Games, "games per matchup in an experiment")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "directory for experiment CSV files")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	var err error
	switch *mode {
	case "game":
		err = runGame(cfg, *kindA, *kindB, *opening)
	case "experiment":
		err = runExperiment(cfg, *experiment, *duration)
	default:
		err = errors.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

// runGame plays one game and prints the board after every move.
func runGame(cfg *config.Config, kindA, kindB, opening string) error {
	board := cfg.Board()
	columns, err := parseColumns(opening)
	if err != nil {
		return err
	}
	if board, err = game.Replay(board, game.PlayerA, columns...); err != nil {
		return errors.Wrap(err, "opening")
	}

	agents := make([]agent.Agent, 2)
	for i, kind := range []string{kindA, kindB} {
		// Offset seeds so two agents of the same kind do not mirror each other
		seed := cfg.Seed
		if seed != 0 {
			seed += uint64(i)
		}
		agents[i], err = agent.New(agentConfig(cfg, i+1, kind, seed))
		if err != nil {
			return errors.Wrapf(err, "player %s", game.Piece(i+1))
		}
	}

	fmt.Printf("%s vs %s\n%s\n", agents[0].Name(), agents[1].Name(), board)
	observer := func(move metrics.MoveMetric, board game.Board) {
		fmt.Printf("Move %d: %s drops into column %d (%s)\n%s\n",
			move.Step, game.Piece(move.Player), move.Column, move.Duration.Round(time.Microsecond), board)
	}
	winner, gameMetric, moveMetrics, err := engine.LocalEngine(board, agents, engine.WithObserver(observer)).Run()
	if err != nil {
		return err
	}

	if winner == game.Empty {
		fmt.Printf("Draw after %d moves\n", gameMetric.TotalMoves)
	} else {
		fmt.Printf("%s (%s) wins after %d moves\n", winner, agents[winner-game.PlayerA].Name(), gameMetric.TotalMoves)
	}
	printTimings(os.Stdout, agents, moveMetrics)
	return nil
}

// printTimings summarizes the search time of each agent and names the
// faster one.
func printTimings(w io.Writer, agents []agent.Agent, moveMetrics []metrics.MoveMetric) {
	var total [2]time.Duration
	var moves [2]int
	for _, mm := range moveMetrics {
		total[mm.Player-1] += mm.Duration
		moves[mm.Player-1]++
	}
	for i, a := range agents {
		if moves[i] == 0 {
			continue
		}
		fmt.Fprintf(w, "%s %s: %d moves, %s total, %s per move\n",
			game.Piece(i+1), a.Name(), moves[i], total[i], total[i]/time.Duration(moves[i]))
	}
	if moves[0] == 0 || moves[1] == 0 {
		return
	}
	faster := 0
	if total[1] < total[0] {
		faster = 1
	}
	fmt.Fprintf(w, "%s %s is faster overall\n", game.Piece(faster+1), agents[faster].Name())
}

func runExperiment(cfg *config.Config, name string, duration time.Duration) error {
	var configs []metrics.AgentConfig
	var matchUps []experiments.MatchUp
	switch name {
	case "strength":
		depths := []int{}
		for depth := 1; depth <= cfg.Depth; depth++ {
			depths = append(depths, depth)
		}
		configs, matchUps = experiments.Strength(depths, cfg.Simulations, cfg.Seed)
	case "throughput":
		goroutines := []int{1}
		for n := 2; n <= max(cfg.Goroutines, 8); n *= 2 {
			goroutines = append(goroutines, n)
		}
		configs, matchUps = experiments.Throughput(goroutines, duration, cfg.Seed)
	case "baseline":
		configs, matchUps = experiments.Baseline([]metrics.AgentConfig{
			agentConfig(cfg, 1, agent.KindMinimax, cfg.Seed),
			agentConfig(cfg, 2, agent.KindMonteCarlo, cfg.Seed),
			agentConfig(cfg, 3, agent.KindUCT, cfg.Seed),
		}, cfg.Seed)
	default:
		return errors.Errorf("unknown experiment %q", name)
	}

	options := []experiments.Option{experiments.WithBoard(cfg.Board())}
	if cfg.OutputDir != "" {
		options = append(options, experiments.WithWriter(cfg.OutputDir))
	}
	tallies, err := experiments.Run(name, configs, matchUps, cfg.Games, options...)
	if err != nil {
		return err
	}

	fmt.Printf("%-6s %-12s %6s %6s %6s %6s\n", "agent", "kind", "games", "wins", "losses", "draws")
	for i, tally := range tallies {
		fmt.Printf("%-6d %-12s %6d %6d %6d %6d\n", tally.Agent, configs[i].Kind, tally.Games, tally.Wins, tally.Losses, tally.Draws)
	}
	return nil
}

func agentConfig(cfg *config.Config, id int, kind string, seed uint64) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          id,
		Kind:        kind,
		Depth:       cfg.Depth,
		Simulations: cfg.Simulations,
		Episodes:    cfg.Episodes,
		Goroutines:  cfg.Goroutines,
		Seed:        seed,
	}
}

func parseColumns(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	columns := make([]int, 0, len(fields))
	for _, field := range fields {
		col, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, errors.Wrapf(err, "opening column %q", field)
		}
		columns = append(columns, col)
	}
	return columns, nil
}
