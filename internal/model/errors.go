package model

import "errors"

// Sentinel errors returned by Piece.Move and Board.MovePiece. The board layer
// never swallows these; callers branch on them with errors.Is.
var (
	// ErrPositionOutOfRange indicates a destination with a coordinate outside 1..8.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrIllegalMove indicates an on-board destination the piece cannot reach.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoPieceAtSource indicates an empty source square.
	ErrNoPieceAtSource = errors.New("no piece at source square")
)
