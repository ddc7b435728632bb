package model

import "fmt"

// Position is one square on the board. Ranks and files are both counted 1..8;
// rank 1 is White's back rank.
type Position struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

// InRange reports whether both coordinates lie on the board. Every other
// component defers to this as the single bounds authority.
func (p Position) InRange() bool {
	return p.Rank >= 1 && p.Rank <= 8 && p.File >= 1 && p.File <= 8
}

// Less orders positions by ascending rank, then file.
func (p Position) Less(other Position) bool {
	if p.Rank != other.Rank {
		return p.Rank < other.Rank
	}
	return p.File < other.File
}

// String renders the square in algebraic style, e.g. {Rank: 1, File: 5} -> "e1".
// Only meaningful for in-range positions.
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+p.File-1, p.Rank)
}
