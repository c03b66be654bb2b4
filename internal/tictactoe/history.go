package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// Record - drops every snapshot after the cursor, appends next and moves the
// cursor onto it. The returned game never shares its history with the input.
func Record(game entity.Game, next entity.Board) entity.Game {
	history := make([]entity.Board, game.CurrentMove+1, game.CurrentMove+2)
	copy(history, game.History[:game.CurrentMove+1])
	history = append(history, next)

	return entity.Game{
		ID:          game.ID,
		History:     history,
		CurrentMove: len(history) - 1,
	}
}

// JumpTo - moves the cursor to move without touching the history.
func JumpTo(game entity.Game, move int) (entity.Game, error) {
	if move < 0 || move >= len(game.History) {
		return game, fmt.Errorf("%w: move %d of %d", apperror.ErrInvalidMove, move, len(game.History))
	}

	game.CurrentMove = move

	return game, nil
}
