package entity

// Player is one of the two sides. PlayerX always moves first.
type Player uint8

const (
	PlayerX Player = iota + 1
	PlayerO
)

// Opponent returns the other side.
func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Player) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "?"
	}
}

// ParsePlayer maps "X"/"O" (case-insensitive) onto a Player.
func ParsePlayer(mark string) (Player, bool) {
	switch mark {
	case "X", "x":
		return PlayerX, true
	case "O", "o":
		return PlayerO, true
	default:
		return 0, false
	}
}
