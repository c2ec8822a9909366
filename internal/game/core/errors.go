package core

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds       = errors.New("target outside the grid")
	ErrNotOwned          = errors.New("cell not owned by side")
	ErrInsufficientUnits = errors.New("insufficient units to move")
	ErrTargetIsMountain  = errors.New("target is a mountain")
	ErrGameOver          = errors.New("game is over")
	ErrNotSelecting      = errors.New("side is not in selecting mode")
	ErrInvalidSide       = errors.New("invalid side")
	ErrNoDirection       = errors.New("order has no direction")
)

// WrapMoveError annotates a move rejection with the order that caused it
func WrapMoveError(err error, order MoveOrder) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("move %s %s from %s: %w", order.Side, order.Direction, order.From, err)
}
