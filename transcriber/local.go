package transcriber

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Local runs Whisper on this machine by shelling out to the whisper CLI.
// Model weights download on first use; no API key and no payload ceiling.
type Local struct {
	model string
	bin   string
	log   zerolog.Logger
}

func NewLocal(model string, logger zerolog.Logger) *Local {
	if model == "" {
		model = "base.en"
	}
	return &Local{model: model, bin: "whisper", log: logger}
}

func (l *Local) Name() string { return "local" }

func (l *Local) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if _, err := exec.LookPath(l.bin); err != nil {
		return "", fmt.Errorf("%s not found on PATH\nInstall it with: pip install openai-whisper", l.bin)
	}

	outDir, err := os.MkdirTemp("", "lecture2obs_whisper_")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(outDir)

	l.log.Info().Str("model", l.model).Str("file", filepath.Base(audioPath)).Msg("running local whisper")
	begin := time.Now()
	cmd := exec.CommandContext(ctx, l.bin,
		audioPath,
		"--model", l.model,
		"--output_format", "txt",
		"--output_dir", outDir,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("whisper: %w\n%s", err, out)
	}
	l.log.Info().Dur("took", time.Since(begin)).Msg("local whisper finished")

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	text, err := os.ReadFile(filepath.Join(outDir, stem+".txt"))
	if err != nil {
		return "", fmt.Errorf("reading whisper output: %w", err)
	}
	return strings.TrimSpace(string(text)), nil
}
