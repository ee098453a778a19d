package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fmaprep/internal/app"
)

// runApp loads config, opens the store and launches the TUI.
func runApp(cmd *cobra.Command, practice bool) error {
	ctx := cmd.Context()
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	st, counter, err := e.openXP(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, err := e.tutor(ctx)
	warnTutor(err)

	e.logger.Info("tui starting", zap.Int("xp", counter.Total()))
	defer e.logger.Info("tui stopped")

	return app.Run(app.Options{
		Catalog:         cat,
		XP:              counter,
		Tutor:           svc,
		Logger:          e.logger,
		MathEngine:      e.cfg.MathEngine,
		StartInPractice: practice,
	})
}
