package scene

import "errors"

var (
	ErrUnknownScene        = errors.New("scene: unknown scene")
	ErrNotEnoughKeyframes  = errors.New("scene: at least two camera keyframes are required")
	ErrMeshPathNotProvided = errors.New("scene: mesh path not provided")
)
