package experiments

import (
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher/agent"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Tally counts the results of one agent config over all its games. A
// self-play game counts once for each side.
type Tally struct {
	Agent  int // metrics.AgentConfig.ID
	Games  int
	Wins   int
	Losses int
	Draws  int
}

type MatchUp [2]metrics.AgentConfig

type runner struct {
	board     game.Board
	outputDir string
	observer  engine.Observer
}

type Option func(r *runner)

// WithBoard plays every game on a copy of board instead of an empty 6x7 board.
func WithBoard(board game.Board) Option {
	return func(r *runner) {
		r.board = board
	}
}

// WithWriter stores agent configs, game records and move records as CSV
// files under root.
func WithWriter(root string) Option {
	return func(r *runner) {
		r.outputDir = root
	}
}

func WithObserver(observer engine.Observer) Option {
	return func(r *runner) {
		r.observer = observer
	}
}

// Run plays numGames games per matchup. The two agents take turns starting:
// in even games the first config of the matchup plays game.PlayerA. The
// returned tallies follow the order of configs.
func Run(name string, configs []metrics.AgentConfig, matchUps []MatchUp, numGames int, options ...Option) ([]Tally, error) {
	r := &runner{board: game.NewStandardBoard()}
	for _, option := range options {
		option(r)
	}

	if numGames < 1 {
		return nil, errors.Errorf("number of games must be positive, got %d", numGames)
	}
	index := make(map[int]int, len(configs))
	tallies := make([]Tally, len(configs))
	for i, config := range configs {
		if _, ok := index[config.ID]; ok {
			return nil, errors.Errorf("duplicate agent config id %d", config.ID)
		}
		index[config.ID] = i
		tallies[i].Agent = config.ID
	}
	for _, matchUp := range matchUps {
		for _, config := range matchUp {
			if _, ok := index[config.ID]; !ok {
				return nil, errors.Errorf("matchup uses unknown agent config id %d", config.ID)
			}
		}
	}

	logger := log.With().Str("experiment", name).Str("run", uuid.NewString()).Logger()
	logger.Info().Msgf("starting %s experiment...", name)

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for mi, matchUp := range matchUps {
		logger.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < numGames; i++ {
			first, second := matchUp[0], matchUp[1]
			if i%2 == 1 {
				first, second = second, first
			}

			winner, gameMetric, moveMetrics, err := r.runGame(i, first, second)
			if err != nil {
				return tallies, errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				Game:       count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			a, b := &tallies[index[first.ID]], &tallies[index[second.ID]]
			a.Games++
			b.Games++
			switch winner {
			case game.PlayerA:
				a.Wins++
				b.Losses++
			case game.PlayerB:
				b.Wins++
				a.Losses++
			default:
				a.Draws++
				b.Draws++
			}

			logger.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
		logger.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}
	logger.Info().Msgf("completed %s experiment", name)

	if r.outputDir != "" {
		if err := store(name, r.outputDir, configs, gameRecords, moveRecords); err != nil {
			return tallies, err
		}
	}
	return tallies, nil
}

// runGame plays game number i of a matchup where config1 plays
// game.PlayerA.
func (r *runner) runGame(i int, config1, config2 metrics.AgentConfig) (game.Piece, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := agent.New(gameConfig(config1, i))
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, errors.Wrapf(err, "agent %d", config1.ID)
	}
	agent2, err := agent.New(gameConfig(config2, i))
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, errors.Wrapf(err, "agent %d", config2.ID)
	}

	options := []engine.Option{}
	if r.observer != nil {
		options = append(options, engine.WithObserver(r.observer))
	}
	e := engine.LocalEngine(r.board, []agent.Agent{agent1, agent2}, options...)
	return e.Run()
}

// gameConfig derives the seed of game i from a fixed config seed, so games
// of a matchup differ while a whole run stays reproducible. A zero seed
// stays zero and is taken from the clock.
func gameConfig(config metrics.AgentConfig, i int) metrics.AgentConfig {
	if config.Seed != 0 {
		config.Seed += uint64(i)
	}
	return config
}

func store(name, root string, configs []metrics.AgentConfig, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return errors.Wrap(err, "failed to create experiment writer")
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored agent configs")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}
