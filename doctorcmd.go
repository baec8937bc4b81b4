package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidankcwu/lecture2obsidian/config"
	"github.com/aidankcwu/lecture2obsidian/doctor"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that recording prerequisites are in place",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			checks := doctor.New().Run(cfg)
			doctor.Print(checks)
			if !doctor.AllOK(checks) {
				return fmt.Errorf("some checks failed")
			}
			fmt.Println("\nAll checks passed!")
			return nil
		},
	}
}
