package capture

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func writeClip(t *testing.T, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.avi")
	writer, err := gocv.VideoWriterFile(path, "MJPG", 10, 64, 48, true)
	require.NoError(t, err)
	if !writer.IsOpened() {
		writer.Close()
		t.Skip("OpenCV build cannot write MJPG clips")
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(40, 80, 120, 0), 48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	for i := 0; i < frames; i++ {
		require.NoError(t, writer.Write(frame))
	}
	require.NoError(t, writer.Close())
	return path
}

func TestCameraFileSourceEndsWithEOF(t *testing.T) {
	path := writeClip(t, 3)

	cam, err := OpenCamera(path, 640, 480)
	require.NoError(t, err)
	defer cam.Close()

	assert.Equal(t, "camera:"+path, cam.Name())

	frame := gocv.NewMat()
	defer frame.Close()

	read := 0
	for ; read < 10; read++ {
		err = cam.Read(&frame)
		if err != nil {
			break
		}
		assert.Equal(t, 64, frame.Cols())
		assert.Equal(t, 48, frame.Rows())
	}

	assert.ErrorIs(t, err, io.EOF)
	assert.NotErrorIs(t, err, ErrNoFrame)
	assert.Positive(t, read)
	assert.LessOrEqual(t, read, 3)
}

func TestCameraReadAfterClose(t *testing.T) {
	path := writeClip(t, 1)

	cam, err := OpenCamera(path, 640, 480)
	require.NoError(t, err)
	require.NoError(t, cam.Close())
	require.NoError(t, cam.Close())

	frame := gocv.NewMat()
	defer frame.Close()
	assert.ErrorIs(t, cam.Read(&frame), io.EOF)
}

func TestOpenCameraMissingFile(t *testing.T) {
	_, err := OpenCamera(filepath.Join(t.TempDir(), "missing.avi"), 640, 480)
	assert.Error(t, err)
}
