// Package pipeline runs the stop-to-notes sequence inside the detached
// worker: finalize the WAV, transcribe, summarize, write the vault
// notes, then archive the audio and clear the recording marker.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aidankcwu/lecture2obsidian/state"
)

// AudioSource finalizes a capture session into a WAV on disk.
type AudioSource interface {
	Stop() (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, transcript, title, course string) (string, error)
}

// NoteWriter persists the summary and transcript notes, returning both paths.
type NoteWriter interface {
	Write(summary, transcript, title, course, date string) (string, string, error)
}

type Pipeline struct {
	Recorder    AudioSource
	Transcriber Transcriber
	Summarizer  Summarizer
	Vault       NoteWriter
	Store       *state.Store

	// ArchiveDir receives the raw WAV after a successful run; empty
	// means delete it.
	ArchiveDir string

	Notify func(title, message string)
	Log    zerolog.Logger
}

// Run executes the full pipeline. The marker is cleared on every exit
// path and exactly one terminal notification fires per run. On failure
// after the WAV exists, the WAV is preserved and its path logged so the
// recording can be reprocessed with the process command.
func (p *Pipeline) Run(ctx context.Context, course, title, date string) error {
	wavPath, err := p.Recorder.Stop()
	if err != nil {
		return p.fail("", fmt.Errorf("stopping recorder: %w", err))
	}
	p.Log.Info().Str("wav", wavPath).Msg("WAV saved")

	p.Log.Info().Msg("transcribing")
	transcript, err := p.Transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		return p.fail(wavPath, fmt.Errorf("transcribing: %w", err))
	}
	p.Log.Info().Int("words", len(strings.Fields(transcript))).Msg("transcript ready")

	p.Log.Info().Msg("summarizing")
	summary, err := p.Summarizer.Summarize(ctx, transcript, title, course)
	if err != nil {
		return p.fail(wavPath, fmt.Errorf("summarizing: %w", err))
	}

	p.Log.Info().Msg("writing notes to vault")
	summaryPath, transcriptPath, err := p.Vault.Write(summary, transcript, title, course, date)
	if err != nil {
		return p.fail(wavPath, fmt.Errorf("writing notes: %w", err))
	}
	p.Log.Info().Str("summary", summaryPath).Str("transcript", transcriptPath).Msg("notes written")

	if err := p.archive(wavPath); err != nil {
		return p.fail(wavPath, fmt.Errorf("archiving WAV: %w", err))
	}

	p.Notify("✅ lecture2obsidian", course+" notes ready in Inbox")
	if err := p.Store.Clear(); err != nil {
		p.Log.Error().Err(err).Msg("clearing marker")
	}
	p.Log.Info().Msg("done")
	return nil
}

func (p *Pipeline) fail(wavPath string, err error) error {
	p.Log.Error().Err(err).Msg("pipeline failed")
	if wavPath != "" {
		if _, statErr := os.Stat(wavPath); statErr == nil {
			p.Log.Info().Str("wav", wavPath).Msg("WAV preserved for reprocessing")
		}
	}
	p.Notify("❌ lecture2obsidian", "Pipeline failed - check "+p.Store.LogPath())
	if clearErr := p.Store.Clear(); clearErr != nil {
		p.Log.Error().Err(clearErr).Msg("clearing marker")
	}
	return err
}

func (p *Pipeline) archive(wavPath string) error {
	if p.ArchiveDir == "" {
		if err := os.Remove(wavPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(p.ArchiveDir, 0o755); err != nil {
		return err
	}
	return os.Rename(wavPath, filepath.Join(p.ArchiveDir, filepath.Base(wavPath)))
}
