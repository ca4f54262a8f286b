package domain

// Coord addresses a cell: X is the column, Y the row.
type Coord struct {
	X int
	Y int
}

// Placement is one occupied cell.
type Placement struct {
	Coord
	Symbol string
}
