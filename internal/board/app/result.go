package app

import "GameBoard/internal/board/domain"

// Result is what one Execute call produced.
//
//   - NoOp: the command name was not in the routing table; nothing happened.
//   - Board: the grid created by create_board.
//   - Symbol/Present: the outcome of get_token; Present == false is the absence marker.
//
// place_token and remove_token carry no value.
type Result struct {
	Command Name
	NoOp    bool
	Board   *domain.Grid
	Symbol  string
	Present bool
}

// Absent reports whether a get_token found nothing.
func (r Result) Absent() bool {
	return r.Command == CmdGetToken && !r.NoOp && !r.Present
}

// Value returns the command's value: the grid, the symbol, or nil for absence,
// side-effect-only commands and no-ops.
func (r Result) Value() any {
	switch {
	case r.NoOp:
		return nil
	case r.Board != nil:
		return r.Board
	case r.Present:
		return r.Symbol
	default:
		return nil
	}
}
