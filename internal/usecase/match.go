package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/tictactoe"
)

// maxRejections bounds how often one side may submit an illegal move in a row.
const maxRejections = 10

var ErrTooManyRejections = errors.New("too many rejected moves")

// Mover picks a cell for player on board.
type Mover interface {
	NextMove(ctx context.Context, board entity.Board, player entity.Player) (int, error)
}

// Rejecter is implemented by movers that want to hear why a move was refused.
type Rejecter interface {
	Rejected(cell int, err error)
}

// Observer is told about every accepted move and the final state.
type Observer interface {
	MoveMade(board entity.Board, player entity.Player, cell int)
	GameOver(board entity.Board, state entity.GameState)
}

// Match plays one game on its own engine between two movers.
type Match struct {
	ID       string
	logger   *slog.Logger
	engine   *tictactoe.Engine
	movers   map[entity.Player]Mover
	observer Observer
}

// NewMatch - observer may be nil.
func NewMatch(logger *slog.Logger, playerX, playerO Mover, observer Observer) *Match {
	id := uuid.New().String()

	return &Match{
		ID:     id,
		logger: logger.With("component", "match", "match.id", id),
		engine: tictactoe.New(),
		movers: map[entity.Player]Mover{
			entity.PlayerX: playerX,
			entity.PlayerO: playerO,
		},
		observer: observer,
	}
}

// Run drives the engine until the game is over.
func (that *Match) Run(ctx context.Context) (entity.GameState, error) {
	that.logger.Info("Match started")

	for !that.engine.IsOver() {
		if err := that.turn(ctx); err != nil {
			return that.engine.CheckState(), err
		}
	}

	state := that.engine.CheckState()
	that.logger.Info("Match finished", "result", state.String(), "moves", that.engine.MoveCount())

	if that.observer != nil {
		that.observer.GameOver(that.engine.Board(), state)
	}

	return state, nil
}

func (that *Match) Engine() *tictactoe.Engine {
	return that.engine
}

func (that *Match) turn(ctx context.Context) error {
	player := that.engine.ActivePlayer()
	mover := that.movers[player]

	for attempt := 0; attempt < maxRejections; attempt++ {
		cell, err := mover.NextMove(ctx, that.engine.Board(), player)
		if err != nil {
			return fmt.Errorf("player %s failed to move: %w", player, err)
		}

		err = that.engine.MakeMove(cell)
		if err == nil {
			that.logger.Debug("Move made", "player", player.String(), "cell", cell)
			if that.observer != nil {
				that.observer.MoveMade(that.engine.Board(), player, cell)
			}
			return nil
		}

		if !errors.Is(err, apperror.ErrOutOfBounds) && !errors.Is(err, apperror.ErrCellOccupied) {
			return fmt.Errorf("failed make move: %w", err)
		}

		that.logger.Debug("Move rejected", "player", player.String(), "cell", cell, "error", err)
		if rejecter, ok := mover.(Rejecter); ok {
			rejecter.Rejected(cell, err)
		}
	}

	return fmt.Errorf("player %s: %w", player, ErrTooManyRejections)
}
