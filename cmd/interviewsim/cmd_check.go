package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trainexus/interviewsim/internal/models"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <suite.yaml>",
		Short: "Validate a suite file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := models.LoadSuite(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Suite %q is valid.\n", suite.Name)
			fmt.Printf("  Scenarios: %d\n", len(suite.Scenarios))
			for _, sc := range suite.Scenarios {
				status := "ok"
				if sc.MainPrompt == "" {
					status = "no main prompt (will be skipped)"
				}
				fmt.Printf("    • %s — %s\n", sc.Tag, status)
			}
			fmt.Printf("  Personas:  %d\n", len(suite.Personas))
			for _, p := range suite.Personas {
				fmt.Printf("    • %s\n", p.ID)
			}
			fmt.Printf("  Rubric:    %d categories, %d turns per persona\n",
				len(suite.Rubric), suite.Config.Turns)
			return nil
		},
	}
}
