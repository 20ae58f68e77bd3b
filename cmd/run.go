package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aperture/internal/app"
	"github.com/abhisek/aperture/internal/session"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	ev, err := d.evaluator(cmd.Context())
	if err != nil {
		return err
	}

	var opts []session.Option
	if id, _ := cmd.Flags().GetString("lesson"); id != "" {
		if !d.catalog.Contains(id) {
			return fmt.Errorf("unknown lesson %q (see: aperture lessons)", id)
		}
		opts = append(opts, session.WithStartLesson(id))
	}
	noSplash, _ := cmd.Flags().GetBool("no-splash")

	d.log.Info("starting TUI", "provider", d.cfg.LLM.Provider, "completed", d.progress.CompletedCount())
	return app.Run(app.Options{
		Machine:           d.machine(ev, opts...),
		EvaluationTimeout: d.cfg.LLM.Timeout,
		Logger:            d.log,
		SkipSplash:        noSplash,
	})
}
