package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aidankcwu/lecture2obsidian/audio"
	"github.com/aidankcwu/lecture2obsidian/config"
	applog "github.com/aidankcwu/lecture2obsidian/log"
	"github.com/aidankcwu/lecture2obsidian/notify"
	"github.com/aidankcwu/lecture2obsidian/pipeline"
	"github.com/aidankcwu/lecture2obsidian/shutdown"
	"github.com/aidankcwu/lecture2obsidian/state"
	"github.com/aidankcwu/lecture2obsidian/summarizer"
	"github.com/aidankcwu/lecture2obsidian/transcriber"
	"github.com/aidankcwu/lecture2obsidian/vault"
)

// newRecordCmd is the hidden worker the toggle command launches
// detached. It captures audio until SIGTERM, then runs the full
// pipeline. Both output streams are already redirected to the worker
// log by the parent.
func newRecordCmd() *cobra.Command {
	var course, title, date string

	cmd := &cobra.Command{
		Use:    "_record",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Subscribe before anything slow. The stop toggle can send
			// SIGTERM the moment the marker exists, which is before the
			// audio stack has finished opening; an unsubscribed SIGTERM
			// kills the process outright.
			stop := shutdown.Subscribe()

			logger := applog.New(os.Stderr)

			dir, err := state.DefaultDir()
			if err != nil {
				return err
			}
			store := state.NewStore(dir)

			// Everything that can fail cheaply fails before the mic
			// opens, so a misconfigured run never records into a void.
			fatal := func(msg string, err error) error {
				logger.Error().Err(err).Msg(msg)
				notify.Send("❌ lecture2obsidian", msg+": "+err.Error())
				store.Clear()
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return fatal("config error", err)
			}
			trans, err := transcriber.New(cfg.Transcription.Backend, cfg.OpenAIKey, cfg.Transcription.LocalModel, logger)
			if err != nil {
				return fatal("transcriber error", err)
			}

			audioCtx, err := audio.NewContext()
			if err != nil {
				return fatal("Mic error", err)
			}
			defer audioCtx.Close()

			rec := audio.NewRecorder(audioCtx)
			logger.Info().Str("course", course).Str("title", title).Msg("starting recorder")
			if err := rec.Start(); err != nil {
				return fatal("Mic error", err)
			}

			logger.Info().Msg("recording, waiting for SIGTERM")
			sig := <-stop
			logger.Info().Str("signal", sig.String()).Msg("stopping recording")

			p := &pipeline.Pipeline{
				Recorder:    rec,
				Transcriber: trans,
				Summarizer: &summarizer.Summarizer{
					Completer: summarizer.NewOpenAI(cfg.OpenAIKey),
					Model:     cfg.Summarization.Model,
					Log:       logger,
				},
				Vault: &vault.Writer{
					Path:         cfg.Vault.Path,
					InboxFolder:  cfg.Vault.InboxFolder,
					SourceFolder: cfg.Vault.SourceFolder,
					TagStyle:     cfg.NoteTemplate.TagStyle,
					StatusTag:    cfg.NoteTemplate.Status,
					Log:          logger,
				},
				Store:      store,
				ArchiveDir: cfg.Recording.ArchiveDir,
				Notify:     notify.Send,
				Log:        logger,
			}
			return p.Run(cmd.Context(), course, title, date)
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "course name")
	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&date, "date", "", "note date")
	cmd.MarkFlagRequired("course")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("date")
	return cmd
}
