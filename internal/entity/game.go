package entity

// Mark is the content of a single board cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

// Board is a 3x3 grid stored row-major.
type Board [BoardSize]Mark

// IsFull reports whether every cell is taken.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Game is a session's move history plus the cursor into it.
// History[0] is always the empty board.
type Game struct {
	ID          string  `json:"id"`
	History     []Board `json:"history"`
	CurrentMove int     `json:"current_move"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:          id,
		History:     []Board{{}},
		CurrentMove: 0,
	}
}

// CurrentSquares returns the snapshot the cursor points at.
func (that *Game) CurrentSquares() Board {
	return that.History[that.CurrentMove]
}

// Clone returns a copy that shares no backing array with the receiver.
func (that *Game) Clone() *Game {
	history := make([]Board, len(that.History))
	copy(history, that.History)

	return &Game{
		ID:          that.ID,
		History:     history,
		CurrentMove: that.CurrentMove,
	}
}

// IsValid checks the invariants a stored game must satisfy.
func (that *Game) IsValid() bool {
	if len(that.History) == 0 || that.History[0] != (Board{}) {
		return false
	}

	return that.CurrentMove >= 0 && that.CurrentMove < len(that.History)
}
