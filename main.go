package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lecture2obsidian",
		Short:         "Turn lecture audio into structured Obsidian notes",
		Long:          "Record lectures, transcribe them with Whisper, summarize with an LLM, and file the notes into your Obsidian vault.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newToggleCmd(),
		newStatusCmd(),
		newProcessCmd(),
		newInitCmd(),
		newDoctorCmd(),
		newRecordCmd(),
	)
	return root
}
