package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the course lessons with completion marks",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		verbose, _ := cmd.Flags().GetBool("verbose")
		snap := d.progress.Snapshot()

		for i, l := range d.catalog.All() {
			mark := dim.Sprint("○")
			if snap.Completed(l.ID) {
				mark = good.Sprint("✓")
			}
			fmt.Printf("%s %d. %-22s %-16s %s\n", mark, i+1, l.Title, dim.Sprint(l.ID), dim.Sprint(l.Category))
			if verbose {
				fmt.Printf("     %s\n", l.Assignment)
				for j, c := range l.Criteria {
					fmt.Printf("       %d) %s\n", j+1, c)
				}
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	lessonsCmd.Flags().BoolP("verbose", "v", false, "Show each lesson's assignment and grading criteria")
}
