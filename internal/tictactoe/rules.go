package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// WinCombos are scanned in this order: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// ApplyMove returns a copy of board with cell marked by player. The input board is never modified,
// so a failed validation leaves the caller's state untouched.
func ApplyMove(board entity.Board, player entity.Player, cell int) (entity.Board, error) {
	if err := validateMove(board, cell); err != nil {
		return board, err
	}

	board[cell] = entity.MarkOf(player)

	return board, nil
}

// validateMove - checks bounds first, then occupancy.
func validateMove(board entity.Board, cell int) error {
	if err := validateCell(cell); err != nil {
		return err
	}

	if !board[cell].IsEmpty() {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

func validateCell(cell int) error {
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrOutOfBounds, cell)
	}
	return nil
}

// Evaluate derives the game state from the board alone.
func Evaluate(board entity.Board) entity.GameState {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if !a.IsEmpty() && a == b && b == c {
			winner, _ := a.Owner()
			return entity.WinFor(winner)
		}
	}

	for _, cell := range board {
		if cell.IsEmpty() {
			return entity.InProgress
		}
	}

	return entity.Tie
}

func IsOver(board entity.Board) bool {
	return Evaluate(board).IsOver()
}
