package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// Engine holds one game: the board and the player to move.
// It is not safe for concurrent use; hosts sharing an engine must serialize access.
type Engine struct {
	board  entity.Board
	active entity.Player
	moves  int
}

// New returns an engine with an empty board and PlayerX to move.
func New() *Engine {
	return &Engine{
		active: entity.PlayerX,
	}
}

// MakeMove marks cell for the active player and hands the turn over.
// Out-of-range indices are reported before anything else, then moves on a finished game,
// then occupied cells. On error the engine is unchanged.
func (that *Engine) MakeMove(cell int) error {
	if err := validateCell(cell); err != nil {
		return err
	}

	if that.IsOver() {
		return apperror.ErrGameFinished
	}

	board, err := ApplyMove(that.board, that.active, cell)
	if err != nil {
		return err
	}

	that.board = board
	that.active = that.active.Opponent()
	that.moves++

	return nil
}

// Board returns a copy of the current cells.
func (that *Engine) Board() entity.Board {
	return that.board
}

func (that *Engine) ActivePlayer() entity.Player {
	return that.active
}

func (that *Engine) MoveCount() int {
	return that.moves
}

func (that *Engine) CheckState() entity.GameState {
	return Evaluate(that.board)
}

func (that *Engine) IsOver() bool {
	return IsOver(that.board)
}

// BestMove returns the optimal move for the active player, false once the game is over.
func (that *Engine) BestMove() (int, bool) {
	return BestMove(that.board, that.active)
}
