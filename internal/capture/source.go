package capture

import (
	"errors"

	"gocv.io/x/gocv"
)

// ErrNoFrame reports a read that produced nothing. It is transient: the
// next read may succeed.
var ErrNoFrame = errors.New("no frame available")

// Source delivers BGR frames. Read copies the next frame into dst and
// returns io.EOF once a finite source is exhausted.
type Source interface {
	Read(dst *gocv.Mat) error
	Name() string
	Close() error
}
