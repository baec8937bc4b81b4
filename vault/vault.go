// Package vault writes finished notes into an Obsidian vault.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	runClean    = regexp.MustCompile(`[\s-]+`)
)

// SafeFilename converts a title into a filename acceptable on every
// filesystem Obsidian runs on. Unsafe characters become separators and
// runs of separators collapse to a single space.
func SafeFilename(title string) string {
	name := unsafeChars.ReplaceAllString(title, "-")
	name = runClean.ReplaceAllString(name, " ")
	return strings.Trim(name, " -")
}

// Writer persists summary and transcript notes into a vault.
type Writer struct {
	Path         string // vault root
	InboxFolder  string
	SourceFolder string
	TagStyle     string // "wikilink" or "hashtag"
	StatusTag    string
	Log          zerolog.Logger
}

// Write drops the summary into the inbox folder and the raw transcript
// into the source folder, returning both paths. The summary note links
// to the transcript note by stem so Obsidian resolves it as a backlink.
func (w *Writer) Write(summary, transcript, title, course, date string) (string, string, error) {
	root := w.Path
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return "", "", fmt.Errorf("vault path %s missing and cwd unavailable: %w", root, cwdErr)
		}
		w.Log.Warn().Str("vault", root).Msg("vault path does not exist, writing to current directory")
		root = cwd
	}

	inboxDir := filepath.Join(root, w.InboxFolder)
	sourceDir := filepath.Join(root, w.SourceFolder)
	if err := os.MkdirAll(inboxDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create inbox folder: %w", err)
	}
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		return "", "", fmt.Errorf("create source folder: %w", err)
	}

	base := SafeFilename(title)

	transcriptPath := uniquePath(filepath.Join(sourceDir, base+" - Transcript.md"))
	if err := os.WriteFile(transcriptPath, []byte(transcriptNote(transcript, title, date)), 0o644); err != nil {
		return "", "", fmt.Errorf("write transcript note: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(transcriptPath), ".md")
	summaryPath := uniquePath(filepath.Join(inboxDir, base+".md"))
	if err := os.WriteFile(summaryPath, []byte(summaryNote(summary, title, course, date, stem, w.TagStyle, w.StatusTag)), 0o644); err != nil {
		return "", "", fmt.Errorf("write summary note: %w", err)
	}

	return summaryPath, transcriptPath, nil
}

// uniquePath appends _1, _2, ... before the extension until the name is free.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

func formatTag(value, style string) string {
	if style == "hashtag" {
		return "#" + value
	}
	return "[[" + value + "]]"
}

func summaryNote(summary, title, course, date, transcriptStem, tagStyle, statusTag string) string {
	var b strings.Builder
	b.WriteString(date + "\n\n")
	b.WriteString("Status: " + statusTag + "\n\n")
	if course != "" {
		b.WriteString("Tags: " + formatTag(course, tagStyle) + "\n\n")
	}
	b.WriteString("Transcript: [[" + transcriptStem + "]]\n\n")
	b.WriteString("# " + title + "\n\n")
	b.WriteString(summary)
	return b.String()
}

func transcriptNote(transcript, title, date string) string {
	var b strings.Builder
	b.WriteString(date + "\n\n")
	b.WriteString("Status: #source\n\n")
	b.WriteString("# " + title + " - Full Transcript\n\n")
	b.WriteString(transcript)
	return b.String()
}
