package core

import "fmt"

// BoardSize is the number of rows and columns
const BoardSize = 8

// Square addresses a cell by row and column. Row 0 is the top row as drawn
// (black's back rank in the standard setup).
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}
