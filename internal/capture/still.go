package capture

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"
)

// Still replays one image on every read. It stands in for the camera when
// tuning profiles against a saved picture.
type Still struct {
	mu     sync.Mutex
	frame  gocv.Mat
	name   string
	closed bool
}

// NewStill takes a private copy of frame.
func NewStill(name string, frame gocv.Mat) (*Still, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("still %q: %w", name, ErrNoFrame)
	}
	return &Still{frame: frame.Clone(), name: name}, nil
}

func OpenStill(path string) (*Still, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("read image %q: unsupported or missing file", path)
	}
	return NewStill(filepath.Base(path), mat)
}

// DecodeStill reads an encoded image (PNG, JPEG, ...) from r.
func DecodeStill(name string, r io.Reader) (*Still, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", name, err)
	}
	defer mat.Close()

	return NewStill(name, mat)
}

func (s *Still) Read(dst *gocv.Mat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return io.EOF
	}
	s.frame.CopyTo(dst)
	return nil
}

func (s *Still) Name() string {
	return "still:" + s.name
}

func (s *Still) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.frame.Close()
}
