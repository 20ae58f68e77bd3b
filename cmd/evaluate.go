package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/aperture/internal/evaluation"
	"github.com/abhisek/aperture/internal/session"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <lesson-id> <photo-file>",
	Short: "Grade a photo against a lesson's assignment",
	Long: "Submit one photo for a lesson, print the instructor's feedback, and " +
		"record the lesson as completed when it passes.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lessonID, path := args[0], args[1]
		asJSON, _ := cmd.Flags().GetBool("json")

		d, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ev, err := d.evaluator(cmd.Context())
		if err != nil {
			return err
		}
		m := d.machine(ev)
		if err := m.SelectLesson(lessonID); err != nil {
			return fmt.Errorf("%w (see: aperture lessons)", err)
		}
		if err := m.Ready(); err != nil {
			return err
		}

		dataURI, err := evaluation.EncodeFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", evaluation.UserMessage(err), err)
		}
		photo, _ := evaluation.ParsePhoto(dataURI)

		ticket, err := m.Submit(dataURI)
		if err != nil {
			return err
		}

		if !asJSON {
			lesson := m.Lesson()
			fmt.Fprintf(os.Stderr, "Evaluating %s (%s, %s) for %q...\n",
				path, photo.MediaType, humanize.Bytes(uint64(photo.Size)), lesson.Title)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), d.cfg.LLM.Timeout)
		defer cancel()
		outcome := m.Evaluate(ctx, ticket)
		m.Resolve(outcome)

		if outcome.Err != nil {
			return errors.New(evaluation.UserMessage(outcome.Err))
		}
		st := m.State()
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(outcome.Result)
		}
		printFeedback(outcome.Result, st)
		return nil
	},
}

func printFeedback(res *evaluation.Result, st session.State) {
	rating := res.Rating
	fmt.Println()
	if res.Pass {
		fmt.Printf("%s  %s\n", stars(&rating), good.Sprint("Assignment passed!"))
	} else {
		fmt.Printf("%s  %s\n", stars(&rating), bad.Sprint("Not quite yet"))
	}
	fmt.Println()
	fmt.Println(res.Summary)

	fmt.Println()
	heading.Println("What worked")
	for _, s := range res.Strengths {
		fmt.Printf("  %s %s\n", good.Sprint("✓"), s)
	}
	fmt.Println()
	heading.Println("To improve")
	for _, s := range res.Improvements {
		fmt.Printf("  %s %s\n", gold.Sprint("→"), s)
	}

	if st.Notice != "" {
		fmt.Println()
		bad.Println("! " + st.Notice)
	}
	if st.Celebrating {
		fmt.Println()
		gold.Println("★ Course complete! You passed every lesson.")
	}
}

func init() {
	evaluateCmd.Flags().Bool("json", false, "Print the evaluation result as JSON")
}
