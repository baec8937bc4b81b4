package transcriber

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Transcriber turns an audio file into plain text.
type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// New selects a backend. "local" runs a Whisper model on this machine;
// "api" calls the OpenAI Whisper endpoint and transparently splits files
// that exceed its payload ceiling.
func New(backend, apiKey, localModel string, logger zerolog.Logger) (Transcriber, error) {
	switch backend {
	case "api":
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set\nAdd it to your environment: export OPENAI_API_KEY=sk-...")
		}
		return NewWhisperAPI(apiKey, logger), nil
	case "local", "":
		return NewLocal(localModel, logger), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q (use \"local\" or \"api\")", backend)
	}
}
