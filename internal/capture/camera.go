package capture

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"gocv.io/x/gocv"
)

// Camera reads from a capture device, a video file or a stream URL.
type Camera struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
	device  string
	isFile  bool
	closed  bool
}

// OpenCamera opens device and requests the given resolution. A numeric
// device is treated as a camera index; anything else is handed to OpenCV
// as a file name or URL.
func OpenCamera(device string, width, height int) (*Camera, error) {
	var target interface{} = device
	index, err := strconv.Atoi(device)
	isFile := err != nil
	if !isFile {
		target = index
	}

	vc, err := gocv.OpenVideoCapture(target)
	if err != nil {
		return nil, fmt.Errorf("open capture %q: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("open capture %q: device not opened", device)
	}

	if !isFile {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(height))
	}

	return &Camera{
		capture: vc,
		device:  device,
		isFile:  isFile,
	}, nil
}

func (c *Camera) Read(dst *gocv.Mat) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return io.EOF
	}

	if ok := c.capture.Read(dst); !ok || dst.Empty() {
		if c.isFile {
			return io.EOF
		}
		return ErrNoFrame
	}
	return nil
}

func (c *Camera) Name() string {
	return "camera:" + c.device
}

func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.capture.Close()
}
