package scene

import "errors"

var (
	ErrNotFound = errors.New("scene: object not found")
	ErrCycle    = errors.New("scene: object cannot be added to itself or its descendants")
)
