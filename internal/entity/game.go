package entity

import "strings"

// BoardSize is the number of cells, addressed 0-8 row-major.
const BoardSize = 9

// Cell is either empty or holds the mark of a player.
type Cell uint8

const EmptyCell Cell = 0

// MarkOf returns the cell value marked by p.
func MarkOf(p Player) Cell {
	return Cell(p)
}

// Owner reports which player marked the cell, if any.
func (that Cell) Owner() (Player, bool) {
	if that == EmptyCell {
		return 0, false
	}
	return Player(that), true
}

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

func (that Cell) String() string {
	if that == EmptyCell {
		return "."
	}
	return Player(that).String()
}

// Board is a value type; copying it yields an independent snapshot.
type Board [BoardSize]Cell

// EmptyCells returns the indices of unmarked cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell.IsEmpty() {
			cells = append(cells, i)
		}
	}
	return cells
}

// Count returns how many cells p has marked.
func (that Board) Count(p Player) int {
	n := 0
	for _, cell := range that {
		if cell == MarkOf(p) {
			n++
		}
	}
	return n
}

// Key is a compact encoding such as "X.O.X...." used for cache keys.
func (that Board) Key() string {
	var sb strings.Builder
	sb.Grow(BoardSize)
	for _, cell := range that {
		sb.WriteString(cell.String())
	}
	return sb.String()
}

// ParseBoard is the inverse of Board.Key.
func ParseBoard(key string) (Board, bool) {
	var board Board
	if len(key) != BoardSize {
		return board, false
	}
	for i := range key {
		switch key[i] {
		case '.':
		case 'X':
			board[i] = MarkOf(PlayerX)
		case 'O':
			board[i] = MarkOf(PlayerO)
		default:
			return Board{}, false
		}
	}
	return board, true
}

type Outcome uint8

const (
	OutcomeInProgress Outcome = iota
	OutcomeWin
	OutcomeTie
)

// GameState is derived from a board, never stored on its own. Winner is set only for OutcomeWin.
type GameState struct {
	Outcome Outcome
	Winner  Player
}

var (
	InProgress = GameState{Outcome: OutcomeInProgress}
	Tie        = GameState{Outcome: OutcomeTie}
)

func WinFor(p Player) GameState {
	return GameState{Outcome: OutcomeWin, Winner: p}
}

func (that GameState) IsOver() bool {
	return that.Outcome != OutcomeInProgress
}

func (that GameState) String() string {
	switch that.Outcome {
	case OutcomeWin:
		return "player " + that.Winner.String() + " wins"
	case OutcomeTie:
		return "tie"
	default:
		return "in progress"
	}
}
