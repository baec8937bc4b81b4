package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"testing"
)

func TestStopBeforeStart(t *testing.T) {
	r := NewRecorder(NewFakeContext(nil))
	if _, err := r.Stop(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Stop before Start: err = %v, want ErrNotRecording", err)
	}
}

func TestDoubleStart(t *testing.T) {
	r := NewRecorder(NewFakeContext(make([]byte, 4096)))
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Start(); !errors.Is(err, ErrAlreadyRecording) {
		t.Errorf("second Start: err = %v, want ErrAlreadyRecording", err)
	}
}

func TestEmptyRecording(t *testing.T) {
	r := NewRecorder(NewFakeContext(nil))
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := r.Stop(); !errors.Is(err, ErrEmptyRecording) {
		t.Errorf("Stop with zero frames: err = %v, want ErrEmptyRecording", err)
	}
}

func TestDeviceFailure(t *testing.T) {
	r := NewRecorder(NewFakeContext(nil).FailOnStart())
	if err := r.Start(); err == nil {
		t.Fatal("Start with failing device: expected error")
	}
	if r.IsRecording() {
		t.Error("IsRecording should be false after failed Start")
	}
}

func TestStartStopWritesWAV(t *testing.T) {
	// 3 blocks worth of a recognizable ramp, preserving arrival order.
	pcm := make([]byte, 6000)
	for i := 0; i < len(pcm)/2; i++ {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(i))
	}

	r := NewRecorder(NewFakeContext(pcm))
	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !r.IsRecording() {
		t.Error("IsRecording should be true after Start")
	}

	path, err := r.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading wav: %v", err)
	}
	if len(data) != WAVHeaderSize+len(pcm) {
		t.Fatalf("wav size = %d, want %d", len(data), WAVHeaderSize+len(pcm))
	}
	if !bytes.Equal(data[:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		t.Error("missing RIFF/WAVE magic")
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != SampleRate {
		t.Errorf("sample rate = %d, want %d", got, SampleRate)
	}
	if !bytes.Equal(data[WAVHeaderSize:], pcm) {
		t.Error("payload does not match captured frames in order")
	}

	// Session is closed: a second Stop must fail.
	if _, err := r.Stop(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Stop after Stop: err = %v, want ErrNotRecording", err)
	}
}

func TestRestartAfterStop(t *testing.T) {
	pcm := make([]byte, 4096)
	r := NewRecorder(NewFakeContext(pcm))

	for i := 0; i < 2; i++ {
		if err := r.Start(); err != nil {
			t.Fatalf("Start #%d: %v", i+1, err)
		}
		path, err := r.Stop()
		if err != nil {
			t.Fatalf("Stop #%d: %v", i+1, err)
		}
		os.Remove(path)
	}
}
