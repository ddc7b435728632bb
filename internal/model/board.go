package model

import (
	"fmt"
	"iter"
	"sort"
)

// Board maps occupied squares to pieces, at most one piece per square. The
// board exclusively owns its pieces; a piece overwritten by a move is gone.
//
// Board is not safe for concurrent use. Callers that share one board must
// serialize MovePiece externally.
type Board struct {
	squares map[Position]*Piece
}

var backRankOrder = []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns a board with the standard starting layout: pawns on ranks
// 2 and 7, back ranks 1 and 8 ordered R N B Q K B N R across files 1..8.
// It always builds a fresh board; there is no reset-in-place.
func NewBoard() *Board {
	b := &Board{squares: make(map[Position]*Piece, 32)}
	for file := 1; file <= 8; file++ {
		b.place(Pawn, White, Position{Rank: 2, File: file})
		b.place(Pawn, Black, Position{Rank: 7, File: file})
		b.place(backRankOrder[file-1], White, Position{Rank: 1, File: file})
		b.place(backRankOrder[file-1], Black, Position{Rank: 8, File: file})
	}
	return b
}

func (b *Board) place(kind PieceKind, color Color, pos Position) {
	b.squares[pos] = &Piece{Kind: kind, Color: color, Position: pos}
}

// PieceAt returns the piece on pos, or nil for an empty square.
func (b *Board) PieceAt(pos Position) *Piece {
	return b.squares[pos]
}

// Len returns the number of occupied squares.
func (b *Board) Len() int {
	return len(b.squares)
}

// MovePiece executes one move transition: the piece on from relocates to to,
// overwriting any occupant there. Either color may move on any call; there is
// no turn tracking. On any failure the board is left exactly as it was, and
// the error from Piece.Move is propagated unchanged.
func (b *Board) MovePiece(from, to Position) (MoveRecord, error) {
	piece, ok := b.squares[from]
	if !ok {
		return MoveRecord{}, fmt.Errorf("%w: %s", ErrNoPieceAtSource, from)
	}
	var captured *Piece
	if occupant := b.squares[to]; occupant != nil {
		snapshot := *occupant
		captured = &snapshot
	}
	if err := piece.Move(to); err != nil {
		return MoveRecord{}, err
	}
	delete(b.squares, from)
	b.squares[to] = piece
	return MoveRecord{
		Piece:     piece.Kind,
		Color:     piece.Color,
		From:      from,
		To:        to,
		Captured:  captured,
		MoveCount: piece.MoveCount,
		Notation:  moveNotation(piece.Kind, to, captured != nil),
	}, nil
}

// Squares iterates the occupied squares in ascending (rank, file) order. The
// sequence is restartable: each range loop sorts the key set anew.
func (b *Board) Squares() iter.Seq2[Position, *Piece] {
	return func(yield func(Position, *Piece) bool) {
		keys := make([]Position, 0, len(b.squares))
		for pos := range b.squares {
			keys = append(keys, pos)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
		for _, pos := range keys {
			if !yield(pos, b.squares[pos]) {
				return
			}
		}
	}
}

// Snapshot materializes Squares for JSON transport.
func (b *Board) Snapshot() []Square {
	squares := make([]Square, 0, len(b.squares))
	for pos, piece := range b.Squares() {
		squares = append(squares, Square{Position: pos, Piece: piece})
	}
	return squares
}
