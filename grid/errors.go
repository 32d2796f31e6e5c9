package grid

import "errors"

var (
	// ErrCapacityExceeded is returned by Add when all four slots are occupied.
	ErrCapacityExceeded = errors.New("grid: no available slot")
	// ErrInvalidIndex is returned when an index is outside the slots of the
	// current split method.
	ErrInvalidIndex = errors.New("grid: slot index out of range")
	// ErrAlreadyEmpty is returned by RemoveAt when the target slot has no pane.
	ErrAlreadyEmpty = errors.New("grid: slot is already empty")
	// ErrNilPane is returned by Add for a nil pane.
	ErrNilPane = errors.New("grid: nil pane")
)
