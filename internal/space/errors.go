package space

import (
	"errors"

	"github.com/talgya/cellspace/internal/entropy"
)

// Sentinel errors for space operations. Callers match with errors.Is.
var (
	// ErrInvalidArgument indicates a malformed request: bad dimensions,
	// radius below 1, an unknown node, or inconsistent selection parameters.
	ErrInvalidArgument = errors.New("space: invalid argument")
	// ErrCapacityExceeded indicates placement into a full cell.
	ErrCapacityExceeded = errors.New("space: cell at capacity")
	// ErrNotPresent indicates removal of an agent that does not occupy the cell.
	ErrNotPresent = errors.New("space: agent not present")
	// ErrEmptyCollection indicates a random draw from a zero-size population.
	ErrEmptyCollection = errors.New("space: empty collection")
)

// wrapDrawErr translates entropy-level failures into the space taxonomy,
// keeping the underlying detail in the message.
func wrapDrawErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, entropy.ErrEmptyPopulation) {
		return errors.Join(ErrEmptyCollection, err)
	}
	return errors.Join(ErrInvalidArgument, err)
}
