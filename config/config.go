package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidankcwu/lecture2obsidian/schedule"
)

type Config struct {
	Vault         Vault                       `toml:"vault"`
	Summarization Summarization               `toml:"summarization"`
	NoteTemplate  NoteTemplate                `toml:"note_template"`
	Transcription Transcription               `toml:"transcription"`
	Recording     Recording                   `toml:"recording"`
	DefaultCourse string                      `toml:"default_course"`
	Schedule      map[string][]schedule.Entry `toml:"schedule"`

	// Not read from the file: credentials come from the environment only.
	OpenAIKey string `toml:"-"`
}

type Vault struct {
	Path         string `toml:"path"`
	InboxFolder  string `toml:"inbox_folder"`
	SourceFolder string `toml:"source_folder"`
}

type Summarization struct {
	Model string `toml:"model"`
}

type NoteTemplate struct {
	Status   string `toml:"status"`
	TagStyle string `toml:"tag_style"` // "wikilink" or "hashtag"
}

type Transcription struct {
	Backend    string `toml:"backend"` // "local" or "api"
	LocalModel string `toml:"local_model"`
}

type Recording struct {
	// ArchiveDir receives raw WAV files after a successful run. Empty
	// means delete them instead.
	ArchiveDir string `toml:"archive_dir"`
}

// Default returns the built-in configuration before any file is read.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Vault: Vault{
			Path:         filepath.Join(home, "Documents", "ObsidianVault"),
			InboxFolder:  "1 - Inbox",
			SourceFolder: "2 - Source Materials/Lectures",
		},
		Summarization: Summarization{Model: "gpt-4o-mini"},
		NoteTemplate:  NoteTemplate{Status: "#review", TagStyle: "wikilink"},
		Transcription: Transcription{Backend: "local", LocalModel: "base.en"},
		DefaultCourse: "Lecture",
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "lecture2obsidian")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "lecture2obsidian")
	} else {
		return ""
	}
	return filepath.Join(configDir, "config.toml")
}

// Load reads the config file, applying defaults for anything unset. A
// missing file is an error with the remedy spelled out; the vault path
// has no sensible silent fallback.
func Load() (*Config, error) {
	return LoadFile(Path())
}

func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return nil, fmt.Errorf("cannot determine config location")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config not found at %s\nRun 'lecture2obsidian init' to create it", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Vault.Path = expandTilde(cfg.Vault.Path)
	cfg.Recording.ArchiveDir = expandTilde(cfg.Recording.ArchiveDir)
	if cfg.DefaultCourse == "" {
		cfg.DefaultCourse = "Lecture"
	}
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")

	return cfg, nil
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
