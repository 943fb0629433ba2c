package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
	"github.com/rocketscienceinc/tictactoe-core/internal/tictactoe"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrNoMove = errors.New("no move available")

var tracer = otel.Tracer("usecase")

type solutionRepo interface {
	Save(ctx context.Context, solution *entity.Solution) error
	Get(ctx context.Context, board entity.Board, player entity.Player) (*entity.Solution, error)
}

// Advisor answers "what is the best move here" with the minimax search, memoizing results in an
// optional solution cache. Cache failures never change the answer.
type Advisor struct {
	logger       *slog.Logger
	solutionRepo solutionRepo
}

// NewAdvisor - solutionRepo may be nil, in which case every call searches.
func NewAdvisor(logger *slog.Logger, solutionRepo solutionRepo) *Advisor {
	return &Advisor{
		logger:       logger.With("component", "advisor"),
		solutionRepo: solutionRepo,
	}
}

// Suggest returns the optimal move for player, false when the board is already terminal.
func (that *Advisor) Suggest(ctx context.Context, board entity.Board, player entity.Player) (int, bool, error) {
	ctx, span := tracer.Start(ctx, "advisor.Suggest", trace.WithAttributes(
		attribute.String("board", board.Key()),
		attribute.String("player", player.String()),
	))
	defer span.End()

	if tictactoe.IsOver(board) {
		return 0, false, nil
	}

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "context done before search")
		return 0, false, fmt.Errorf("suggest: %w", err)
	}

	if move, ok := that.cached(ctx, board, player); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true), attribute.Int("move", move))
		return move, true, nil
	}

	result, _ := tictactoe.Search(board, player)
	span.SetAttributes(
		attribute.Bool("cache.hit", false),
		attribute.Int("move", result.Move),
		attribute.Int("search.nodes", result.Nodes),
	)
	that.logger.Debug("Position searched",
		"board", board.Key(), "player", player.String(),
		"move", result.Move, "score", result.Score, "nodes", result.Nodes)

	that.store(ctx, board, player, result)

	return result.Move, true, nil
}

// NextMove lets the advisor play one side of a match.
func (that *Advisor) NextMove(ctx context.Context, board entity.Board, player entity.Player) (int, error) {
	move, ok, err := that.Suggest(ctx, board, player)
	if err != nil {
		return 0, err
	}

	if !ok {
		return 0, ErrNoMove
	}

	return move, nil
}

func (that *Advisor) cached(ctx context.Context, board entity.Board, player entity.Player) (int, bool) {
	if that.solutionRepo == nil {
		return 0, false
	}

	solution, err := that.solutionRepo.Get(ctx, board, player)
	if errors.Is(err, repository.ErrSolutionNotFound) {
		return 0, false
	}

	if err != nil {
		that.logger.Warn("could not read solution cache", "board", board.Key(), "error", err)
		return 0, false
	}

	if !solution.Matches(board, player) {
		that.logger.Warn("ignoring foreign cached solution",
			"board", board.Key(), "version", solution.Version, "cached.board", solution.Board)
		return 0, false
	}

	// a stale or foreign entry must still be a legal move on this board
	if _, err = tictactoe.ApplyMove(board, player, solution.Move); err != nil {
		that.logger.Warn("ignoring invalid cached solution", "board", board.Key(), "move", solution.Move, "error", err)
		return 0, false
	}

	return solution.Move, true
}

func (that *Advisor) store(ctx context.Context, board entity.Board, player entity.Player, result tictactoe.Result) {
	if that.solutionRepo == nil {
		return
	}

	solution := &entity.Solution{
		Version: entity.SolutionVersion,
		Board:   board.Key(),
		Player:  player.String(),
		Move:    result.Move,
		Score:   result.Score,
	}

	if err := that.solutionRepo.Save(ctx, solution); err != nil {
		that.logger.Warn("could not write solution cache", "board", board.Key(), "error", err)
	}
}
