// Package doctor runs environment checks for the commands that need
// external collaborators (ffmpeg, whisper, an API key, the vault).
package doctor

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/aidankcwu/lecture2obsidian/config"
)

// Check is one diagnostic result. Advisory checks warn without blocking:
// a missing vault only degrades note placement (the writer falls back to
// the current directory), while a missing binary or key stops a run cold.
type Check struct {
	Name     string
	OK       bool
	Advisory bool
	Detail   string // remediation when !OK, context when OK
}

// Doctor probes the environment a pipeline run depends on. The lookup
// seams exist so tests run without touching PATH or the filesystem.
type Doctor struct {
	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
}

func New() *Doctor {
	return &Doctor{lookPath: exec.LookPath, stat: os.Stat}
}

// Run evaluates every check relevant to the given config.
func (d *Doctor) Run(cfg *config.Config) []Check {
	checks := []Check{d.checkFFmpeg()}

	switch cfg.Transcription.Backend {
	case "api":
		checks = append(checks, d.checkAPIKey(cfg.OpenAIKey))
	default:
		checks = append(checks, d.checkWhisper())
	}

	if cfg.Summarization.Model != "" {
		checks = append(checks, d.checkAPIKey(cfg.OpenAIKey))
	}

	checks = append(checks, d.checkVault(cfg.Vault.Path))
	return dedupe(checks)
}

// AllOK reports whether every blocking check passed. Advisory failures
// do not count against it.
func AllOK(checks []Check) bool {
	for _, c := range checks {
		if !c.OK && !c.Advisory {
			return false
		}
	}
	return true
}

// Print writes the checks in the doctor's terminal format.
func Print(checks []Check) {
	for _, c := range checks {
		switch {
		case c.OK:
			fmt.Printf("  PASS: %s\n", c.Name)
		case c.Advisory:
			fmt.Printf("  WARN: %s\n        %s\n", c.Name, c.Detail)
		default:
			fmt.Printf("  FAIL: %s\n        %s\n", c.Name, c.Detail)
		}
	}
}

func (d *Doctor) checkFFmpeg() Check {
	if _, err := d.lookPath("ffmpeg"); err != nil {
		return Check{
			Name:   "ffmpeg on PATH",
			Detail: "Install with: brew install ffmpeg (macOS) or apt install ffmpeg (Linux)",
		}
	}
	return Check{Name: "ffmpeg on PATH", OK: true}
}

func (d *Doctor) checkWhisper() Check {
	if _, err := d.lookPath("whisper"); err != nil {
		return Check{
			Name:   "whisper binary on PATH",
			Detail: "Install with: pip install openai-whisper",
		}
	}
	return Check{Name: "whisper binary on PATH", OK: true}
}

func (d *Doctor) checkAPIKey(key string) Check {
	if key == "" {
		return Check{
			Name:   "OPENAI_API_KEY set",
			Detail: "Export OPENAI_API_KEY or add it to your shell profile",
		}
	}
	return Check{Name: "OPENAI_API_KEY set", OK: true}
}

func (d *Doctor) checkVault(path string) Check {
	fi, err := d.stat(path)
	if err != nil || !fi.IsDir() {
		return Check{
			Name:     "vault path exists",
			Advisory: true,
			Detail:   fmt.Sprintf("Vault not found at %s; fix vault.path in %s (notes fall back to the current directory)", path, config.Path()),
		}
	}
	return Check{Name: "vault path exists", OK: true, Advisory: true}
}

func dedupe(checks []Check) []Check {
	seen := make(map[string]bool, len(checks))
	out := checks[:0]
	for _, c := range checks {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c)
	}
	return out
}
