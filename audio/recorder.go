package audio

import (
	"errors"
	"fmt"
	"os"
	"sync"
)

var (
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
	ErrEmptyRecording   = errors.New("no audio captured: recording was empty")
)

// Recorder owns at most one live capture session per process. The driver
// callback appends copied frame blocks to an internal buffer; Stop drains
// that buffer in arrival order and materializes it as a temporary WAV file.
// Start and Stop may be called from different goroutines.
type Recorder struct {
	ctx Context

	mu        sync.Mutex // session state
	dev       CaptureDevice
	recording bool

	bufMu  sync.Mutex // frame buffer, shared with the driver thread
	frames [][]byte
}

func NewRecorder(ctx Context) *Recorder {
	return &Recorder{ctx: ctx}
}

// Start opens the default input device and begins capturing.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}

	r.bufMu.Lock()
	r.frames = nil
	r.bufMu.Unlock()

	dev, err := r.ctx.NewCapture(CaptureConfig{
		SampleRate: SampleRate,
		Channels:   Channels,
	}, r.onData)
	if err != nil {
		return fmt.Errorf("opening capture device: %w", err)
	}
	if err := dev.Start(); err != nil {
		dev.Close()
		return fmt.Errorf("starting capture: %w", err)
	}

	r.dev = dev
	r.recording = true
	return nil
}

// onData runs on the driver's thread. The block must be copied before the
// callback returns.
func (r *Recorder) onData(data []byte, _ uint32) {
	block := make([]byte, len(data))
	copy(block, data)
	r.bufMu.Lock()
	r.frames = append(r.frames, block)
	r.bufMu.Unlock()
}

// Stop closes the input stream, drains buffered frames and writes them to a
// temporary WAV file, returning its path. No callbacks fire after Stop
// returns.
func (r *Recorder) Stop() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return "", ErrNotRecording
	}

	r.dev.Stop()
	r.dev.Close()
	r.dev = nil
	r.recording = false

	r.bufMu.Lock()
	frames := r.frames
	r.frames = nil
	r.bufMu.Unlock()

	if len(frames) == 0 {
		return "", ErrEmptyRecording
	}

	var total int
	for _, b := range frames {
		total += len(b)
	}
	pcm := make([]byte, 0, total)
	for _, b := range frames {
		pcm = append(pcm, b...)
	}

	f, err := os.CreateTemp("", "lecture_*.wav")
	if err != nil {
		return "", fmt.Errorf("creating wav file: %w", err)
	}
	if err := WriteWAV(f, pcm, SampleRate, Channels); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing wav file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}

func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}
