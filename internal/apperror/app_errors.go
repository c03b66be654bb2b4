package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrInvalidMove   = errors.New("move index out of history range")
	ErrUnknownAction = errors.New("unknown action")
)
