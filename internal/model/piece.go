package model

import "fmt"

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

func (k PieceKind) getPieceNotation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// Piece is one chessman. Its position lives here and nowhere else; move
// generation takes it as a plain argument. MoveCount only ever increases,
// and only through Move.
type Piece struct {
	Kind      PieceKind `json:"kind"`
	Color     Color     `json:"color"`
	Position  Position  `json:"position"`
	MoveCount int       `json:"moveCount"`
}

// CandidateMoves returns the pseudo-legal destinations from the piece's
// current square, for hint display and for Move itself.
func (p *Piece) CandidateMoves() []Position {
	return CandidateMoves(p.Kind, p.Color, p.Position)
}

// Move relocates the piece to dst if dst is on the board and a member of the
// candidate set computed from the current square. On failure the piece is
// left untouched.
func (p *Piece) Move(dst Position) error {
	if !dst.InRange() {
		return fmt.Errorf("%w: (%d,%d)", ErrPositionOutOfRange, dst.Rank, dst.File)
	}
	reachable := false
	for _, candidate := range p.CandidateMoves() {
		if candidate == dst {
			reachable = true
			break
		}
	}
	if !reachable {
		return fmt.Errorf("%w: %s cannot reach %s from %s", ErrIllegalMove, p.Kind, dst, p.Position)
	}
	p.Position = dst
	p.MoveCount++
	return nil
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s on %s", p.Color, p.Kind, p.Position)
}
