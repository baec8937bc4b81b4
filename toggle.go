package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidankcwu/lecture2obsidian/config"
	"github.com/aidankcwu/lecture2obsidian/state"
	"github.com/aidankcwu/lecture2obsidian/supervisor"
)

func newToggleCmd() *cobra.Command {
	var course, title, date string

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Start or stop a live lecture recording",
		Long: "First call starts recording in the background.\n" +
			"Second call stops recording and runs the full pipeline.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := state.DefaultDir()
			if err != nil {
				return err
			}
			store := state.NewStore(dir)

			res, err := supervisor.New(store, config.Load).Toggle(course, title, date)
			if err != nil {
				return err
			}

			switch {
			case res.Stopped:
				fmt.Printf("Stopping recording for %s (PID %d)...\n", res.Course, res.PID)
				fmt.Println("Transcription and summarization running in background.")
				fmt.Printf("Check %s for progress. You'll get a notification when done.\n", res.LogPath)
			case res.StaleCleared:
				fmt.Println("Recording process not found - clearing stale state.")
			case res.Started:
				fmt.Printf("Recording started for %s (PID %d)\n", res.Course, res.PID)
				fmt.Printf("  Title: %s\n", res.Title)
				fmt.Printf("  Log:   %s\n", res.LogPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "course code/name (overrides schedule detection)")
	cmd.Flags().StringVar(&title, "title", "", "note title (overrides schedule detection)")
	cmd.Flags().StringVar(&date, "date", "", "date in YYYY-MM-DD format (defaults to today)")
	return cmd
}
