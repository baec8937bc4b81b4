package audio

import "errors"

// FakeContext feeds canned PCM through the capture callback, block by
// block, when the device starts. Used in tests instead of a real driver.
type FakeContext struct {
	pcm       []byte
	blockSize int
	startErr  error
}

func NewFakeContext(pcm []byte) *FakeContext {
	return &FakeContext{pcm: pcm, blockSize: 2048}
}

// FailOnStart makes every capture device refuse to start.
func (f *FakeContext) FailOnStart() *FakeContext {
	f.startErr = errors.New("fake device unavailable")
	return f
}

func (f *FakeContext) NewCapture(_ CaptureConfig, cb DataCallback) (CaptureDevice, error) {
	return &fakeCapture{pcm: f.pcm, blockSize: f.blockSize, cb: cb, startErr: f.startErr}, nil
}

func (f *FakeContext) Close() {}

type fakeCapture struct {
	pcm       []byte
	blockSize int
	cb        DataCallback
	startErr  error
}

func (c *fakeCapture) Start() error {
	if c.startErr != nil {
		return c.startErr
	}
	for pos := 0; pos < len(c.pcm); pos += c.blockSize {
		end := min(pos+c.blockSize, len(c.pcm))
		block := make([]byte, end-pos)
		copy(block, c.pcm[pos:end])
		c.cb(block, uint32(len(block)/2))
	}
	return nil
}

func (c *fakeCapture) Stop()  {}
func (c *fakeCapture) Close() {}
