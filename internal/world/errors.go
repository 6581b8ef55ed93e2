package world

import "errors"

var (
	// ErrIndexOutOfBounds is returned by chunk accessors for coordinates outside [0, ChunkSize).
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	// ErrUnknownBlockType is returned when writing a block type that has no definition.
	ErrUnknownBlockType = errors.New("unknown block type")
	// ErrHealthOutOfRange is returned when writing a health value above MaxHealth.
	ErrHealthOutOfRange = errors.New("health out of range")
)
