package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// HistoryEntry is one line of the move list.
type HistoryEntry struct {
	Move        int    `json:"move"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
}

// View holds everything a renderer needs for one game. It is derived from the
// game on every read and never stored.
type View struct {
	ID          string         `json:"id"`
	Squares     entity.Board   `json:"squares"`
	History     []HistoryEntry `json:"history"`
	CurrentMove int            `json:"current_move"`
	Next        entity.Mark    `json:"next,omitempty"`
	Winner      entity.Mark    `json:"winner,omitempty"`
	Status      string         `json:"status"`
	StatusText  string         `json:"status_text"`
}

func NewView(game entity.Game) View {
	squares := game.CurrentSquares()
	status, winner := DetermineStatus(squares)

	view := View{
		ID:          game.ID,
		Squares:     squares,
		History:     make([]HistoryEntry, 0, len(game.History)),
		CurrentMove: game.CurrentMove,
		Status:      status,
	}

	for move := range game.History {
		view.History = append(view.History, HistoryEntry{
			Move:        move,
			Description: describeMove(move),
			Current:     move == game.CurrentMove,
		})
	}

	switch status {
	case entity.StatusWon:
		view.Winner = winner
		view.StatusText = "Winner: " + string(winner)
	case entity.StatusDraw:
		view.StatusText = "Draw"
	default:
		view.Next = NextMark(game.CurrentMove)
		view.StatusText = "Next player: " + string(view.Next)
	}

	return view
}

func describeMove(move int) string {
	if move > 0 {
		return fmt.Sprintf("Go to move #%d", move)
	}
	return "Go to game start"
}
