package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

var ErrInputClosed = errors.New("input closed")

// Console reads moves from in and writes the board and prompts to out.
// It is both a usecase.Mover for human players and a usecase.Observer.
// Lines are read by a single goroutine so a blocked prompt still observes ctx.
type Console struct {
	logger *slog.Logger
	in     io.Reader
	out    io.Writer

	startReader sync.Once
	lines       chan string
	readErr     error // set before lines is closed
}

func New(logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "cli"),
		in:     in,
		out:    out,
		lines:  make(chan string),
	}
}

// Greet prints the opening banner.
func (that *Console) Greet() {
	that.printf("Welcome! Let's play Tic-Tac-Toe!\n")
}

// RenderBoard draws the board as three rows separated by "---|---|---".
func RenderBoard(board entity.Board) string {
	var sb strings.Builder
	for row := 0; row < 3; row++ {
		fmt.Fprintf(&sb, " %s | %s | %s \n", board[row*3], board[row*3+1], board[row*3+2])
		if row < 2 {
			sb.WriteString("---|---|---\n")
		}
	}
	return sb.String()
}

// ResultMessage is the closing line for a finished game.
func ResultMessage(state entity.GameState) string {
	switch state.Outcome {
	case entity.OutcomeWin:
		return fmt.Sprintf("Player %s wins!", state.Winner)
	case entity.OutcomeTie:
		return "It's a tie!"
	default:
		return "Game in progress."
	}
}

// NextMove prompts until a number is entered; legality is left to the engine.
func (that *Console) NextMove(ctx context.Context, board entity.Board, player entity.Player) (int, error) {
	that.printf("-----------------\n%s-----------------\n", RenderBoard(board))

	for {
		that.printf("Player %s, enter your move (0-8):\n", player)

		line, err := that.readLine(ctx)
		if err != nil {
			return 0, err
		}

		cell, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			that.printf("Invalid input! Please enter a number from 0 to 8.\n")
			continue
		}

		return cell, nil
	}
}

func (that *Console) Rejected(cell int, err error) {
	switch {
	case errors.Is(err, apperror.ErrOutOfBounds):
		that.printf("Invalid index! Must be 0-8.\n")
	case errors.Is(err, apperror.ErrCellOccupied):
		that.printf("Cell already taken! Try another.\n")
	default:
		that.printf("Move %d rejected: %v\n", cell, err)
	}
}

func (that *Console) MoveMade(_ entity.Board, player entity.Player, cell int) {
	that.printf("Player %s marks cell %d\n", player, cell)
}

func (that *Console) GameOver(board entity.Board, state entity.GameState) {
	that.printf("--- Final Board ---\n%s--- Game Over! ---\n%s\n", RenderBoard(board), ResultMessage(state))
}

// Choose prints a numbered menu and returns the picked option's index.
func (that *Console) Choose(ctx context.Context, title string, options ...string) (int, error) {
	for {
		that.printf("%s\n", title)
		for i, option := range options {
			that.printf("\t%d. %s\n", i+1, option)
		}

		line, err := that.readLine(ctx)
		if err != nil {
			return 0, err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && choice >= 1 && choice <= len(options) {
			return choice - 1, nil
		}

		that.printf("Invalid choice!\n")
	}
}

// readLine waits for the next input line or for ctx to end, whichever comes first.
func (that *Console) readLine(ctx context.Context) (string, error) {
	that.startReader.Do(func() {
		go that.readLoop()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			if that.readErr != nil {
				return "", fmt.Errorf("failed to read input: %w", that.readErr)
			}
			return "", ErrInputClosed
		}
		return line, nil
	}
}

func (that *Console) readLoop() {
	defer close(that.lines)

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- scanner.Text()
	}
	that.readErr = scanner.Err()
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("could not write to console", "error", err)
	}
}
