package model

// Candidate-move generation is purely geometric: it ignores every other piece
// on the board. Sliding pieces do not stop at blockers and pawns get no
// capture squares. Off-board candidates are dropped, never reported as errors.

var (
	knightOffsets = []Position{
		{Rank: 2, File: 1}, {Rank: 2, File: -1},
		{Rank: -2, File: 1}, {Rank: -2, File: -1},
		{Rank: 1, File: 2}, {Rank: 1, File: -2},
		{Rank: -1, File: 2}, {Rank: -1, File: -2},
	}
	kingOffsets = []Position{
		{Rank: 1, File: 0}, {Rank: -1, File: 0},
		{Rank: 0, File: 1}, {Rank: 0, File: -1},
		{Rank: 1, File: 1}, {Rank: 1, File: -1},
		{Rank: -1, File: 1}, {Rank: -1, File: -1},
	}
	rookDirs   = []Position{{Rank: 1, File: 0}, {Rank: -1, File: 0}, {Rank: 0, File: 1}, {Rank: 0, File: -1}}
	bishopDirs = []Position{{Rank: 1, File: 1}, {Rank: 1, File: -1}, {Rank: -1, File: 1}, {Rank: -1, File: -1}}
)

// CandidateMoves returns the pseudo-legal destinations for a piece of the
// given kind and color standing on from. Color only matters for pawns, whose
// direction and double-step rank depend on it.
func CandidateMoves(kind PieceKind, color Color, from Position) []Position {
	switch kind {
	case Knight:
		return offsetMoves(from, knightOffsets)
	case King:
		return offsetMoves(from, kingOffsets)
	case Bishop:
		return slideMoves(from, bishopDirs)
	case Rook:
		return slideMoves(from, rookDirs)
	case Queen:
		return append(slideMoves(from, rookDirs), slideMoves(from, bishopDirs)...)
	case Pawn:
		return pawnMoves(from, color)
	}
	return nil
}

func offsetMoves(from Position, offsets []Position) []Position {
	moves := make([]Position, 0, len(offsets))
	for _, d := range offsets {
		to := Position{Rank: from.Rank + d.Rank, File: from.File + d.File}
		if to.InRange() {
			moves = append(moves, to)
		}
	}
	return moves
}

// slideMoves emits every step 1..7 in each direction as an independent
// candidate. Rays are not cut off at occupied squares.
func slideMoves(from Position, dirs []Position) []Position {
	moves := []Position{}
	for i := 1; i <= 7; i++ {
		for _, d := range dirs {
			to := Position{Rank: from.Rank + i*d.Rank, File: from.File + i*d.File}
			if to.InRange() {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

func pawnMoves(from Position, color Color) []Position {
	dir, startRank := 1, 2
	if color == Black {
		dir, startRank = -1, 7
	}
	moves := []Position{}
	if to := (Position{Rank: from.Rank + dir, File: from.File}); to.InRange() {
		moves = append(moves, to)
	}
	if from.Rank == startRank {
		if to := (Position{Rank: from.Rank + 2*dir, File: from.File}); to.InRange() {
			moves = append(moves, to)
		}
	}
	return moves
}
