package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aperture/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear lesson progress and start the course over",
	Long: "Clear all lesson progress. Without --force this is only allowed once " +
		"every lesson has been completed, matching the restart offered by the app.",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		d, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		before := d.progress.CompletedCount()
		if force {
			if err := d.progress.Reset(cmd.Context()); err != nil {
				return err
			}
		} else {
			// Evaluation is never used here.
			m := d.machine(nil)
			if err := m.Reset(); err != nil {
				if errors.Is(err, session.ErrCourseIncomplete) {
					return fmt.Errorf("%w: %d/%d lessons done (use --force to reset anyway)",
						err, m.CompletedCount(), d.catalog.Len())
				}
				return err
			}
			if n := m.State().Notice; n != "" {
				return errors.New(n)
			}
		}

		good.Printf("Progress cleared (%d completed lesson(s) removed).\n", before)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Reset even if the course is not complete")
}
