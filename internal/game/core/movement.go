package core

// Outcome classifies how a resolved move affected its target cell
type Outcome int

const (
	OutcomeMerged    Outcome = iota // target already owned by the mover
	OutcomeCaptured                 // target was unowned
	OutcomeAttacked                 // enemy target survived, possibly emptied
	OutcomeConquered                // enemy target flipped to the mover
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMerged:
		return "merged"
	case OutcomeCaptured:
		return "captured"
	case OutcomeAttacked:
		return "attacked"
	case OutcomeConquered:
		return "conquered"
	default:
		return "unknown"
	}
}

// MoveResult describes a move that was applied to the grid
type MoveResult struct {
	From          Coordinate
	To            Coordinate
	Transferred   int
	Returned      int // overflow sent back to the source by the garrison cap
	Outcome       Outcome
	PreviousOwner Side
	AttackerUnits int
	DefenderUnits int
	BaseCaptured  bool
}

// ApplyMove validates and resolves an order against the grid.
// On error the grid is untouched.
func ApplyMove(g *Grid, order MoveOrder) (*MoveResult, error) {
	if err := order.Validate(g); err != nil {
		return nil, err
	}

	src := g.At(order.From)
	to := order.Target()
	dst := g.At(to)

	transfer, remain := Split(src.Units, order.Half)
	res := &MoveResult{
		From:          order.From,
		To:            to,
		Transferred:   transfer,
		PreviousOwner: dst.Owner,
		AttackerUnits: transfer,
		DefenderUnits: dst.Units,
	}

	switch dst.Owner {
	case order.Side:
		res.Outcome = OutcomeMerged
		total := dst.Units + transfer
		if total > MaxUnits {
			res.Returned = total - MaxUnits
			remain += res.Returned
			total = MaxUnits
		}
		dst.Units = total

	case SideNone:
		res.Outcome = OutcomeCaptured
		dst.Owner = order.Side
		dst.Units = transfer

	default:
		left := dst.Units - transfer
		switch {
		case left > 0:
			res.Outcome = OutcomeAttacked
			dst.Units = left
		case left == 0:
			res.Outcome = OutcomeAttacked
			dst.Owner = SideNone
			dst.Units = 0
		default:
			res.Outcome = OutcomeConquered
			dst.Owner = order.Side
			dst.Units = -left
			res.BaseCaptured = dst.Terrain == Base
		}
	}

	src.Units = remain
	return res, nil
}

// ApplyProduction adds one unit to every owned Base and Tower below the cap.
// It returns the number of cells that grew.
func ApplyProduction(g *Grid) int {
	grown := 0
	for i := range g.Cells {
		c := &g.Cells[i]
		if c.Owner == SideNone || !c.Terrain.Produces() {
			continue
		}
		if c.Units < MaxUnits {
			c.Units++
			grown++
		}
	}
	return grown
}
