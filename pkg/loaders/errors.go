package loaders

import "errors"

var (
	ErrUnsupportedFormat = errors.New("loaders: unsupported format")
	ErrMalformed         = errors.New("loaders: malformed input")
)
