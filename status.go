package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidankcwu/lecture2obsidian/state"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a recording is currently active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := state.DefaultDir()
			if err != nil {
				return err
			}
			store := state.NewStore(dir)

			rec, ok := store.Active()
			if !ok {
				fmt.Println("No active recording.")
				return nil
			}

			elapsed := time.Since(rec.StartTime)
			minutes := int(elapsed.Minutes())
			seconds := int(elapsed.Seconds()) % 60

			fmt.Printf("Recording %s - %dm %02ds elapsed\n", rec.Course, minutes, seconds)
			fmt.Printf("  Title: %s\n", rec.Title)
			fmt.Printf("  PID:   %d\n", rec.PID)
			return nil
		},
	}
}
