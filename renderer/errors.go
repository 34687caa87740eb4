package renderer

import "errors"

var (
	ErrNoSession        = errors.New("renderer: no session attached")
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
	ErrInvalidOptions   = errors.New("renderer: invalid options")
)
