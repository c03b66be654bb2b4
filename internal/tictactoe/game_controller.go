package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// CalculateWinner - returns the mark that owns a complete line, or EmptyCell.
func CalculateWinner(board entity.Board) entity.Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// ApplyMove - returns a copy of board with mark placed at cell.
// The input board is never modified.
func ApplyMove(board entity.Board, cell int, mark entity.Mark) (entity.Board, error) {
	if err := validateMove(board, cell); err != nil {
		return board, err
	}

	next := board
	next[cell] = mark

	return next, nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int) error {
	if cell < 0 || cell >= len(board) {
		return apperror.ErrInvalidCell
	}

	if CalculateWinner(board) != entity.EmptyCell {
		return apperror.ErrGameFinished
	}

	if board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// NextMark - X moves on even history indexes, O on odd ones.
func NextMark(move int) entity.Mark {
	if move%2 == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}

// DetermineStatus - returns the status of a board and its winner, if any.
func DetermineStatus(board entity.Board) (string, entity.Mark) {
	if winner := CalculateWinner(board); winner != entity.EmptyCell {
		return entity.StatusWon, winner
	}

	// the game will continue until all the squares are full
	if board.IsFull() {
		return entity.StatusDraw, entity.PlayerTie
	}

	return entity.StatusOngoing, entity.EmptyCell
}
