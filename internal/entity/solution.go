package entity

// SolutionVersion changes whenever the search scoring changes; entries from another version are not trusted.
const SolutionVersion = 1

// Solution is a solved position: the chosen move and its minimax score for the player to move.
type Solution struct {
	Version int    `json:"version"`
	Board   string `json:"board"`
	Player  string `json:"player"`
	Move    int    `json:"move"`
	Score   int    `json:"score"`
}

// Matches reports whether the entry was written by the current search for board and player.
func (that *Solution) Matches(board Board, player Player) bool {
	return that.Version == SolutionVersion && that.Board == board.Key() && that.Player == player.String()
}
