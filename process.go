package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidankcwu/lecture2obsidian/config"
	"github.com/aidankcwu/lecture2obsidian/doctor"
	applog "github.com/aidankcwu/lecture2obsidian/log"
	"github.com/aidankcwu/lecture2obsidian/summarizer"
	"github.com/aidankcwu/lecture2obsidian/transcriber"
	"github.com/aidankcwu/lecture2obsidian/vault"
)

var supportedExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".wav":  true,
	".ogg":  true,
	".flac": true,
	".webm": true,
}

func newProcessCmd() *cobra.Command {
	var title, course, date string

	cmd := &cobra.Command{
		Use:   "process <audioFile>",
		Short: "Transcribe an audio file and write structured notes to your vault",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audioPath := args[0]
			if _, err := os.Stat(audioPath); err != nil {
				return fmt.Errorf("file not found: %s", audioPath)
			}
			ext := strings.ToLower(filepath.Ext(audioPath))
			if !supportedExtensions[ext] {
				return fmt.Errorf("unsupported file type %q\nSupported formats: %s",
					ext, strings.Join(sortedExtensions(), ", "))
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			checks := doctor.New().Run(cfg)
			if !doctor.AllOK(checks) {
				doctor.Print(checks)
				return fmt.Errorf("environment checks failed")
			}
			for _, c := range checks {
				if !c.OK {
					fmt.Printf("Warning: %s\n", c.Detail)
				}
			}

			resolvedTitle := title
			if resolvedTitle == "" {
				resolvedTitle = strings.TrimSuffix(filepath.Base(audioPath), ext)
			}
			resolvedDate := date
			if resolvedDate == "" {
				resolvedDate = time.Now().Format("2006-01-02")
			}

			trans, err := transcriber.New(cfg.Transcription.Backend, cfg.OpenAIKey, cfg.Transcription.LocalModel, applog.New(os.Stderr))
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			fmt.Printf("Transcribing %s...\n", filepath.Base(audioPath))
			transcript, err := trans.Transcribe(ctx, audioPath)
			if err != nil {
				return err
			}
			fmt.Printf("  Done. Transcript is %d words.\n", len(strings.Fields(transcript)))

			sum := &summarizer.Summarizer{
				Completer: summarizer.NewOpenAI(cfg.OpenAIKey),
				Model:     cfg.Summarization.Model,
				Log:       applog.New(os.Stderr),
			}
			fmt.Println("Summarizing transcript...")
			summary, err := sum.Summarize(ctx, transcript, resolvedTitle, course)
			if err != nil {
				return err
			}
			fmt.Println("  Done.")

			fmt.Println("Writing notes to vault...")
			writer := &vault.Writer{
				Path:         cfg.Vault.Path,
				InboxFolder:  cfg.Vault.InboxFolder,
				SourceFolder: cfg.Vault.SourceFolder,
				TagStyle:     cfg.NoteTemplate.TagStyle,
				StatusTag:    cfg.NoteTemplate.Status,
				Log:          applog.New(os.Stderr),
			}
			summaryPath, transcriptPath, err := writer.Write(summary, transcript, resolvedTitle, course, resolvedDate)
			if err != nil {
				return err
			}

			fmt.Println("\nDone!")
			fmt.Printf("  Summary note:   %s\n", summaryPath)
			fmt.Printf("  Raw transcript: %s\n", transcriptPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title (defaults to filename stem)")
	cmd.Flags().StringVar(&course, "course", "", "course code/name added as a tag")
	cmd.Flags().StringVar(&date, "date", "", "date in YYYY-MM-DD format (defaults to today)")
	return cmd
}

func sortedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
