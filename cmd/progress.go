package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/aperture/internal/catalog"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completed lessons and ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		snap := d.progress.Snapshot()
		lessons := d.catalog.All()
		done := lo.CountBy(lessons, func(l catalog.Lesson) bool { return snap.Completed(l.ID) })

		heading.Printf("%d/%d lessons completed\n", done, len(lessons))
		fmt.Println(strings.Repeat("─", 48))
		for _, l := range lessons {
			rec, ok := snap[l.ID]
			status := dim.Sprint("not yet")
			var rating *int
			if ok && rec.Completed {
				status = good.Sprint("passed ")
				rating = rec.Rating
			}
			fmt.Printf("%-24s %s  %s\n", l.Title, status, stars(rating))
		}

		if done == len(lessons) {
			fmt.Println()
			gold.Println("★ Course complete! Run `aperture reset` to start over.")
		}
		return nil
	},
}
