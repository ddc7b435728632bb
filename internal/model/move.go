package model

// Square pairs a position with the piece standing on it.
type Square struct {
	Position Position `json:"position"`
	Piece    *Piece   `json:"piece"`
}

// MoveRecord describes one executed move, for journaling and state broadcast.
// Captured is a snapshot of the overwritten occupant, if any; the board no
// longer holds that piece.
type MoveRecord struct {
	Piece     PieceKind `json:"piece"`
	Color     Color     `json:"color"`
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Captured  *Piece    `json:"captured,omitempty"`
	MoveCount int       `json:"moveCount"`
	Notation  string    `json:"notation"`
}

// SimpleMove is the wire form of a requested move.
type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func moveNotation(kind PieceKind, to Position, capture bool) string {
	notation := kind.getPieceNotation()
	if capture {
		notation += "x"
	}
	return notation + to.String()
}
