package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

var errQuit = errors.New("player quit")

// scriptedMover replays a fixed list of cells and records rejections.
type scriptedMover struct {
	moves    []int
	rejected []error
	err      error
}

func (that *scriptedMover) NextMove(_ context.Context, _ entity.Board, _ entity.Player) (int, error) {
	if that.err != nil {
		return 0, that.err
	}
	if len(that.moves) == 0 {
		return 9, nil
	}
	cell := that.moves[0]
	that.moves = that.moves[1:]
	return cell, nil
}

func (that *scriptedMover) Rejected(_ int, err error) {
	that.rejected = append(that.rejected, err)
}

type recordingObserver struct {
	cells []int
	final entity.GameState
	ended bool
}

func (that *recordingObserver) MoveMade(_ entity.Board, _ entity.Player, cell int) {
	that.cells = append(that.cells, cell)
}

func (that *recordingObserver) GameOver(_ entity.Board, state entity.GameState) {
	that.final = state
	that.ended = true
}

func TestMatch_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Scripted win", func(t *testing.T) {
		// Given: X plays the top row while O plays the middle row
		observer := &recordingObserver{}
		match := NewMatch(discardLogger(), &scriptedMover{moves: []int{0, 1, 2}}, &scriptedMover{moves: []int{4, 5}}, observer)

		// When: the match runs
		state, err := match.Run(ctx)

		// Then: X wins and every move was observed in order
		require.NoError(t, err)
		assert.Equal(t, entity.WinFor(entity.PlayerX), state)
		assert.Equal(t, []int{0, 4, 1, 5, 2}, observer.cells)
		assert.True(t, observer.ended)
		assert.Equal(t, state, observer.final)
		assert.NotEmpty(t, match.ID)
	})

	t.Run("Rejected moves are retried", func(t *testing.T) {
		// Given: O first tries an occupied cell and then an out-of-range one
		playerX := &scriptedMover{moves: []int{0, 1, 2}}
		playerO := &scriptedMover{moves: []int{0, 9, 4, 5}}
		match := NewMatch(discardLogger(), playerX, playerO, nil)

		state, err := match.Run(ctx)

		// Then: O heard about both rejections and the game still finished
		require.NoError(t, err)
		assert.Equal(t, entity.WinFor(entity.PlayerX), state)
		require.Len(t, playerO.rejected, 2)
		assert.ErrorIs(t, playerO.rejected[0], apperror.ErrCellOccupied)
		assert.ErrorIs(t, playerO.rejected[1], apperror.ErrOutOfBounds)
		assert.Empty(t, playerX.rejected)
	})

	t.Run("Too many rejections", func(t *testing.T) {
		// Given: X only ever sends out-of-range cells
		playerX := &scriptedMover{}
		match := NewMatch(discardLogger(), playerX, &scriptedMover{}, nil)

		state, err := match.Run(ctx)

		require.ErrorIs(t, err, ErrTooManyRejections)
		assert.Equal(t, entity.InProgress, state)
		assert.Len(t, playerX.rejected, maxRejections)
		assert.Zero(t, match.Engine().MoveCount())
	})

	t.Run("Mover error stops the match", func(t *testing.T) {
		match := NewMatch(discardLogger(), &scriptedMover{err: errQuit}, &scriptedMover{}, nil)

		_, err := match.Run(ctx)

		require.ErrorIs(t, err, errQuit)
	})

	t.Run("Advisor self play is a tie", func(t *testing.T) {
		advisor := NewAdvisor(discardLogger(), nil)
		observer := &recordingObserver{}
		match := NewMatch(discardLogger(), advisor, advisor, observer)

		state, err := match.Run(ctx)

		require.NoError(t, err)
		assert.Equal(t, entity.Tie, state)
		assert.Len(t, observer.cells, entity.BoardSize)
	})

	t.Run("Advisor never loses to a scripted opponent", func(t *testing.T) {
		// Given: X opens in a corner and follows up on the edges
		advisor := NewAdvisor(discardLogger(), nil)
		playerX := &scriptedMover{moves: []int{0, 1, 2, 3, 5, 6, 7, 8}}
		match := NewMatch(discardLogger(), &skippingMover{inner: playerX}, advisor, nil)

		state, err := match.Run(ctx)

		require.NoError(t, err)
		assert.NotEqual(t, entity.WinFor(entity.PlayerX), state)
	})
}

// skippingMover picks the first scripted cell that is still empty.
type skippingMover struct {
	inner *scriptedMover
}

func (that *skippingMover) NextMove(ctx context.Context, board entity.Board, player entity.Player) (int, error) {
	for {
		cell, err := that.inner.NextMove(ctx, board, player)
		if err != nil || cell >= entity.BoardSize || board[cell].IsEmpty() {
			return cell, err
		}
	}
}
