package tictactoe

import "github.com/rocketscienceinc/tictactoe-core/internal/entity"

const (
	// winScore minus the ply depth rewards quicker wins and slower losses.
	winScore = 10

	lowerBound = -winScore - 1
	upperBound = winScore + 1

	noMove = -1
)

// Result describes the outcome of a search from the root position.
type Result struct {
	Move  int
	Score int
	Nodes int
}

type searcher struct {
	root  entity.Player
	nodes int
}

// BestMove returns the optimal cell for player, or false when the board is already terminal.
// Among equally scored moves the lowest index wins.
func BestMove(board entity.Board, player entity.Player) (int, bool) {
	result, ok := Search(board, player)
	return result.Move, ok
}

// Search runs a full alpha-beta minimax over the remaining game tree.
func Search(board entity.Board, player entity.Player) (Result, bool) {
	if IsOver(board) {
		return Result{Move: noMove}, false
	}

	s := &searcher{root: player}
	best := Result{Move: noMove, Score: lowerBound}
	alpha := lowerBound

	for _, cell := range board.EmptyCells() {
		child := board
		child[cell] = entity.MarkOf(player)

		// A child pruned against alpha comes back <= alpha, so the strict comparison
		// picks the same move an unpruned search would.
		score := s.minimax(child, player.Opponent(), 1, alpha, upperBound)
		if score > best.Score {
			best.Score = score
			best.Move = cell
		}
		alpha = max(alpha, score)
	}

	best.Nodes = s.nodes

	return best, true
}

func (that *searcher) minimax(board entity.Board, turn entity.Player, depth, alpha, beta int) int {
	that.nodes++

	switch state := Evaluate(board); state.Outcome {
	case entity.OutcomeWin:
		if state.Winner == that.root {
			return winScore - depth
		}
		return depth - winScore
	case entity.OutcomeTie:
		return 0
	case entity.OutcomeInProgress:
	}

	maximizing := turn == that.root

	value := upperBound
	if maximizing {
		value = lowerBound
	}

	for _, cell := range board.EmptyCells() {
		child := board
		child[cell] = entity.MarkOf(turn)

		score := that.minimax(child, turn.Opponent(), depth+1, alpha, beta)
		if maximizing {
			value = max(value, score)
			alpha = max(alpha, value)
		} else {
			value = min(value, score)
			beta = min(beta, value)
		}

		if alpha >= beta {
			break
		}
	}

	return value
}
