package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"shape-detector/internal/capture"
	"shape-detector/internal/logger"
	"shape-detector/internal/profiles"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var testAppearance = Appearance{
	Annotation: color.RGBA{G: 252, B: 124, A: 255},
	Grid:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
	PaneWidth:  640,
	PaneHeight: 480,
}

// scriptedSource replays a fixed list of read outcomes, then returns io.EOF.
type scriptedSource struct {
	mu     sync.Mutex
	frame  gocv.Mat
	script []error
	reads  int
	closed bool
}

func (s *scriptedSource) Read(dst *gocv.Mat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reads >= len(s.script) {
		return io.EOF
	}
	err := s.script[s.reads]
	s.reads++
	if err != nil {
		return err
	}
	s.frame.CopyTo(dst)
	return nil
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type collectingSink struct {
	mu      sync.Mutex
	results []*Result
}

func (s *collectingSink) Present(r *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

func (s *collectingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

func (s *collectingSink) all() []*Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Result(nil), s.results...)
}

func rectFrame() gocv.Mat {
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&frame, image.Rect(200, 150, 400, 300), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
	return frame
}

func newTestCoordinator(src capture.Source) *Coordinator {
	return NewCoordinator(src, profiles.NewManager(), Options{
		Interval:   time.Millisecond,
		Appearance: testAppearance,
	}, logger.NewNop())
}

func TestProcessFrame(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	coord := newTestCoordinator(nil)
	result, err := coord.ProcessFrame(frame)
	require.NoError(t, err)

	assert.Empty(t, result.RunID)
	assert.Equal(t, uint64(1), result.Sequence)
	assert.Equal(t, "default", result.Profile)
	assert.Equal(t, image.Rect(0, 0, 640, 480), result.Camera.Bounds())
	assert.Equal(t, image.Rect(0, 0, 640, 480), result.Processed.Bounds())
	require.Len(t, result.Shapes, 1)
	assert.Equal(t, 4, result.Shapes[0].Vertices)

	// zoom 1.3 scales the 200x150 rectangle before measurement
	assert.InDelta(t, 260*0.03695, result.Shapes[0].Size.WidthCM, 0.4)
	assert.InDelta(t, 195*0.03695, result.Shapes[0].Size.LengthCM, 0.4)
}

func TestProcessFrameUsesCurrentProfile(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	manager := profiles.NewManager()
	require.NoError(t, manager.SetCurrent("rotated"))
	coord := NewCoordinator(nil, manager, Options{Appearance: testAppearance}, logger.NewNop())

	result, err := coord.ProcessFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, "rotated", result.Profile)
	require.Len(t, result.Shapes, 1)
}

func TestProcessFrameRejectsEmpty(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	coord := newTestCoordinator(nil)
	_, err := coord.ProcessFrame(empty)
	assert.Error(t, err)
	assert.Zero(t, coord.Stats().Processed)
}

func TestRunStopsAtEOF(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	src := &scriptedSource{frame: frame, script: []error{nil, nil, nil}}
	coord := newTestCoordinator(src)
	sink := &collectingSink{}

	require.NoError(t, coord.Run(context.Background(), sink))
	assert.Equal(t, 3, sink.count())
	assert.Equal(t, uint64(3), coord.Stats().Processed)

	results := sink.all()
	require.NotEmpty(t, results[0].RunID)
	for _, r := range results {
		assert.Equal(t, results[0].RunID, r.RunID)
	}
}

func TestRunSkipsTransientErrors(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	src := &scriptedSource{frame: frame, script: []error{
		nil, capture.ErrNoFrame, errors.New("usb hiccup"), nil,
	}}
	coord := newTestCoordinator(src)
	sink := &collectingSink{}

	require.NoError(t, coord.Run(context.Background(), sink))
	assert.Equal(t, 2, sink.count())

	stats := coord.Stats()
	assert.Equal(t, uint64(2), stats.Processed)
	assert.Equal(t, uint64(2), stats.Dropped)
	assert.Equal(t, 1, stats.LastShapes)
}

func TestRunLogsMissingFramesAtDebug(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	src := &scriptedSource{frame: frame, script: []error{
		capture.ErrNoFrame, capture.ErrNoFrame, capture.ErrNoFrame, errors.New("usb hiccup"),
	}}

	var buf bytes.Buffer
	coord := NewCoordinator(src, profiles.NewManager(), Options{
		Interval:   time.Millisecond,
		Appearance: testAppearance,
	}, logger.NewZerolog(&buf, zerolog.DebugLevel))

	require.NoError(t, coord.Run(context.Background(), nil))
	assert.Equal(t, uint64(4), coord.Stats().Dropped)

	var debugMisses, warnings int
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		switch entry["level"] {
		case "debug":
			if entry["message"] == "no frame" {
				debugMisses++
			}
		case "warn":
			warnings++
			assert.Equal(t, "usb hiccup", entry["error"])
		}
	}
	assert.Equal(t, 3, debugMisses)
	assert.Equal(t, 1, warnings)
}

func TestRunStopsOnCancel(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	still, err := capture.NewStill("rect", frame)
	require.NoError(t, err)

	coord := newTestCoordinator(still)
	sink := &collectingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- coord.Run(ctx, sink) }()

	require.Eventually(t, func() bool { return sink.count() >= 2 }, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	coord.Shutdown()
	assert.Equal(t, "none", coord.SourceName())
}

func TestRunRejectsSecondLoop(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	still, err := capture.NewStill("rect", frame)
	require.NoError(t, err)
	defer still.Close()

	coord := newTestCoordinator(still)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &collectingSink{}
	go func() { _ = coord.Run(ctx, sink) }()
	require.Eventually(t, func() bool { return sink.count() >= 1 }, 5*time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, coord.Run(ctx, nil), ErrAlreadyRunning)
}

func TestSetSourceClosesPrevious(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	first := &scriptedSource{frame: frame}
	second := &scriptedSource{frame: frame}

	coord := newTestCoordinator(first)
	coord.SetSource(second)

	assert.True(t, first.closed)
	assert.False(t, second.closed)
	assert.Equal(t, "scripted", coord.SourceName())
}

func TestSetSourceWhileRunning(t *testing.T) {
	rect := rectFrame()
	defer rect.Close()
	blank := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer blank.Close()

	first, err := capture.NewStill("rect", rect)
	require.NoError(t, err)
	second, err := capture.NewStill("blank", blank)
	require.NoError(t, err)
	defer second.Close()

	coord := newTestCoordinator(first)
	sink := &collectingSink{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- coord.Run(ctx, sink) }()

	require.Eventually(t, func() bool { return sink.count() >= 2 }, 5*time.Second, 5*time.Millisecond)
	for _, r := range sink.all() {
		assert.Len(t, r.Shapes, 1)
	}

	coord.SetSource(second)
	assert.Equal(t, "still:blank", coord.SourceName())

	require.Eventually(t, func() bool {
		results := sink.all()
		return len(results[len(results)-1].Shapes) == 0
	}, 5*time.Second, 5*time.Millisecond)

	seen := sink.count()
	require.Eventually(t, func() bool { return sink.count() > seen+2 }, 5*time.Second, 5*time.Millisecond)

	select {
	case err := <-done:
		t.Fatalf("Run returned after source swap: %v", err)
	default:
	}

	results := sink.all()
	assert.Equal(t, results[0].RunID, results[len(results)-1].RunID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStepTreatsReplacedSourceEOFAsMiss(t *testing.T) {
	frame := rectFrame()
	defer frame.Close()

	exhausted := &scriptedSource{frame: frame}
	coord := newTestCoordinator(exhausted)

	dst := gocv.NewMat()
	defer dst.Close()
	assert.ErrorIs(t, coord.step(&dst, nil), io.EOF)

	next := &scriptedSource{frame: frame, script: []error{nil}}
	coord.SetSource(&swappingSource{
		replace: func() { coord.SetSource(next) },
	})

	err := coord.step(&dst, nil)
	assert.ErrorIs(t, err, capture.ErrNoFrame)
	assert.NotErrorIs(t, err, io.EOF)
	require.NoError(t, coord.step(&dst, nil))
}

// swappingSource gets replaced on the coordinator while a read is in
// flight and then reports the EOF a closed source would.
type swappingSource struct {
	replace func()
}

func (s *swappingSource) Read(*gocv.Mat) error {
	s.replace()
	return io.EOF
}

func (s *swappingSource) Name() string { return "swapping" }

func (s *swappingSource) Close() error { return nil }

func TestStatsTrackerFPS(t *testing.T) {
	var tracker statsTracker
	start := time.Unix(0, 0)

	tracker.frameDone(start, time.Millisecond, 0)
	assert.Zero(t, tracker.snapshot().FPS)

	tracker.frameDone(start.Add(50*time.Millisecond), time.Millisecond, 2)
	assert.InDelta(t, 20, tracker.snapshot().FPS, 1e-9)

	tracker.frameDone(start.Add(150*time.Millisecond), time.Millisecond, 2)
	// 20 + 0.1*(10-20)
	assert.InDelta(t, 19, tracker.snapshot().FPS, 1e-9)
	assert.Equal(t, uint64(3), tracker.snapshot().Processed)
}
