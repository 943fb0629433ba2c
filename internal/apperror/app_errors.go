package apperror

import "errors"

var (
	ErrOutOfBounds  = errors.New("cell index out of bounds")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrGameFinished = errors.New("game is already finished")
)
