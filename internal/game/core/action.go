package core

// MoveOrder asks to push units from one cell into an adjacent one.
// Half is the fast-move modifier state captured when the order was issued.
type MoveOrder struct {
	Side      Side
	From      Coordinate
	Direction Direction
	Half      bool
}

// Target returns the cell the order moves into
func (m MoveOrder) Target() Coordinate {
	return m.From.Move(m.Direction)
}

// Validate checks the grid-level preconditions of the order.
// Session-level checks (game over, selecting mode) belong to the caller.
func (m MoveOrder) Validate(g *Grid) error {
	if !m.Side.Valid() {
		return ErrInvalidSide
	}
	if m.Direction == DirNone {
		return ErrNoDirection
	}
	src := g.At(m.From)
	if src == nil {
		return ErrOutOfBounds
	}
	if src.Owner != m.Side {
		return ErrNotOwned
	}
	if src.Units < 2 {
		return ErrInsufficientUnits
	}
	dst := g.At(m.Target())
	if dst == nil {
		return ErrOutOfBounds
	}
	if dst.IsMountain() {
		return ErrTargetIsMountain
	}
	return nil
}

// Split returns how many units leave the source and how many stay.
// The fast-move modifier sends half; otherwise all but one leave.
func Split(count int, half bool) (transfer, remain int) {
	if half {
		transfer = count / 2
	} else {
		transfer = count - 1
	}
	return transfer, count - transfer
}
