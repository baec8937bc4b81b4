package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidankcwu/lecture2obsidian/config"
	"github.com/aidankcwu/lecture2obsidian/doctor"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively create the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(bufio.NewReader(os.Stdin))
		},
	}
}

func runInit(in *bufio.Reader) error {
	fmt.Println("Setting up lecture2obsidian configuration.")
	fmt.Println()

	defaults := config.Default()

	vaultPath := prompt(in, "Obsidian vault path (absolute path)", defaults.Vault.Path)
	inboxFolder := prompt(in, "Inbox folder", defaults.Vault.InboxFolder)
	sourceFolder := prompt(in, "Source materials folder", defaults.Vault.SourceFolder)
	model := prompt(in, "Summarization model", defaults.Summarization.Model)
	tagStyle := promptChoice(in, "Tag style", defaults.NoteTemplate.TagStyle, "wikilink", "hashtag")
	backend := promptChoice(in, "Transcription backend", defaults.Transcription.Backend, "local", "api")
	localModel := defaults.Transcription.LocalModel
	if backend == "local" {
		localModel = promptChoice(in, "Local Whisper model", localModel,
			"tiny.en", "base.en", "small.en", "medium.en")
	}
	archiveDir := prompt(in, "Archive directory for recorded WAV files (leave blank to delete after processing)", "")

	var b strings.Builder
	fmt.Fprintf(&b, "default_course = %q\n\n", defaults.DefaultCourse)
	fmt.Fprintf(&b, "[vault]\npath = %q\ninbox_folder = %q\nsource_folder = %q\n\n", vaultPath, inboxFolder, sourceFolder)
	fmt.Fprintf(&b, "[summarization]\nmodel = %q\n\n", model)
	fmt.Fprintf(&b, "[note_template]\nstatus = %q\ntag_style = %q\n\n", "#review", tagStyle)
	fmt.Fprintf(&b, "[transcription]\nbackend = %q\nlocal_model = %q\n", backend, localModel)
	if archiveDir != "" {
		fmt.Fprintf(&b, "\n[recording]\narchive_dir = %q\n", archiveDir)
	}
	b.WriteString(`
# Uncomment and edit to enable schedule-based course detection:
# [[schedule.Monday]]
# time = "09:00-10:15"
# course = "CS 301"
# title_prefix = "Data Structures"
`)

	path := config.Path()
	if path == "" {
		return fmt.Errorf("cannot determine config location")
	}
	if _, err := os.Stat(path); err == nil {
		fmt.Println()
		if !confirm(in, fmt.Sprintf("%s already exists. Overwrite?", filepath.Base(path))) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return err
	}

	fmt.Printf("\nConfig written to %s\n", path)

	if cfg, err := config.Load(); err == nil {
		fmt.Println("\nEnvironment check:")
		doctor.Print(doctor.New().Run(cfg))
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Export your OpenAI API key:  export OPENAI_API_KEY=sk-...")
	fmt.Println("  2. Toggle a recording:          lecture2obsidian toggle")
	fmt.Println("  3. Check status:                lecture2obsidian status")
	return nil
}

func prompt(in *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s [%s]: ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func promptChoice(in *bufio.Reader, label, def string, choices ...string) string {
	label = fmt.Sprintf("%s (%s)", label, strings.Join(choices, "/"))
	for {
		got := prompt(in, label, def)
		for _, c := range choices {
			if got == c {
				return got
			}
		}
		fmt.Printf("  Invalid choice %q\n", got)
	}
}

func confirm(in *bufio.Reader, question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	line, _ := in.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
