package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `
default_course = "CS 301"

[vault]
path = "/tmp/vault"
inbox_folder = "0 - Inbox"

[summarization]
model = "gpt-4o"

[transcription]
backend = "api"

[[schedule.Monday]]
time = "09:00-10:15"
course = "CS 301"
title_prefix = "Data Structures"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Vault.Path != "/tmp/vault" {
		t.Errorf("Vault.Path = %q", cfg.Vault.Path)
	}
	if cfg.Vault.InboxFolder != "0 - Inbox" {
		t.Errorf("InboxFolder = %q", cfg.Vault.InboxFolder)
	}
	// Unset fields keep their defaults.
	if cfg.Vault.SourceFolder != "2 - Source Materials/Lectures" {
		t.Errorf("SourceFolder default = %q", cfg.Vault.SourceFolder)
	}
	if cfg.NoteTemplate.TagStyle != "wikilink" {
		t.Errorf("TagStyle default = %q", cfg.NoteTemplate.TagStyle)
	}
	if cfg.Summarization.Model != "gpt-4o" {
		t.Errorf("Model = %q", cfg.Summarization.Model)
	}
	if cfg.Transcription.Backend != "api" {
		t.Errorf("Backend = %q", cfg.Transcription.Backend)
	}
	if cfg.Transcription.LocalModel != "base.en" {
		t.Errorf("LocalModel default = %q", cfg.Transcription.LocalModel)
	}
	if cfg.DefaultCourse != "CS 301" {
		t.Errorf("DefaultCourse = %q", cfg.DefaultCourse)
	}

	slots := cfg.Schedule["Monday"]
	if len(slots) != 1 || slots[0].Course != "CS 301" || slots[0].Time != "09:00-10:15" {
		t.Errorf("Schedule = %+v", cfg.Schedule)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
}

func TestTildeExpansion(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "[vault]\npath = \"~/vault\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	home, _ := os.UserHomeDir()
	if cfg.Vault.Path != filepath.Join(home, "vault") {
		t.Errorf("Vault.Path = %q", cfg.Vault.Path)
	}
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := LoadFile(writeConfig(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpenAIKey != "sk-test" {
		t.Errorf("OpenAIKey = %q", cfg.OpenAIKey)
	}
}
