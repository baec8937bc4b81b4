package audio

// Capture format is fixed: mono 16-bit PCM at 16 kHz. The transcription
// backends expect exactly this, so it is not configurable.
const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
)

// DataCallback receives each block of captured frames. It runs on a thread
// owned by the audio driver, never the caller's goroutine. The data slice is
// only valid for the duration of the call.
type DataCallback func(data []byte, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

type Context interface {
	// NewCapture opens the default input device. The callback fires for
	// every delivered block once the device is started.
	NewCapture(config CaptureConfig, cb DataCallback) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
}
