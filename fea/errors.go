package fea

import "errors"

var (
	// ErrNotImplemented is returned when no accumulation rule exists for the
	// combination of storage style, elastic flag and operand shapes
	ErrNotImplemented = errors.New("fea: accumulation not implemented for this element matrix")

	// ErrShapeMismatch is returned when operand sizes contradict the element layout
	ErrShapeMismatch = errors.New("fea: shape mismatch")

	// ErrIndexOutOfRange is returned when a row id falls outside the target or
	// the scale vector
	ErrIndexOutOfRange = errors.New("fea: index out of range")

	// ErrMissingEntity is returned when an elastic accumulation needs the owning
	// entity's dimension and none was attached
	ErrMissingEntity = errors.New("fea: element matrix has no entity")

	// ErrNotIntegrated is returned when integration produced no matrix
	ErrNotIntegrated = errors.New("fea: element matrix not integrated")
)
