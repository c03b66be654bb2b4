package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// Action is a player input: a cell click or a history click.
type Action interface {
	isAction()
}

// Play places the next mark at Cell on the current snapshot.
type Play struct {
	Cell int
}

// Jump moves the cursor to Move.
type Jump struct {
	Move int
}

func (Play) isAction() {}
func (Jump) isAction() {}

// Dispatch - the only way a game changes. A rejected action returns the
// input game together with the reason.
func Dispatch(game entity.Game, action Action) (entity.Game, error) {
	switch act := action.(type) {
	case Play:
		next, err := ApplyMove(game.CurrentSquares(), act.Cell, NextMark(game.CurrentMove))
		if err != nil {
			return game, fmt.Errorf("invalid turn: %w", err)
		}

		return Record(game, next), nil
	case Jump:
		return JumpTo(game, act.Move)
	default:
		return game, fmt.Errorf("%w: %T", apperror.ErrUnknownAction, action)
	}
}

// IsIllegalMove reports whether err is a silently rejected move rather than a fault.
func IsIllegalMove(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrInvalidCell)
}
