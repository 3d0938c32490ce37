package cmd

import (
	"context"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/adapters/render/report"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/application"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newCompareCmd(app *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare CODE_A CODE_B",
		Short: "Compare two countries side by side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := normalizeFormat(format)
			if err != nil {
				return err
			}

			registry, err := loadRegistry(cmd, app)
			if err != nil {
				return err
			}
			codeA, err := knownCountry(registry, args[0])
			if err != nil {
				return err
			}
			codeB, err := knownCountry(registry, args[1])
			if err != nil {
				return err
			}

			records, err := fetchRecords(cmd, app, format,
				fetchTarget{slot: application.SlotPrimary, code: codeA},
				fetchTarget{slot: application.SlotComparison, code: codeB},
			)
			if err != nil {
				return err
			}

			view := app.comparer.Compare(records[0], records[1])
			return writeOutput(cmd, format, view, func() (string, error) {
				return app.compareRenderer(view, report.RenderOptions{Now: app.now()})
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")

	return cmd
}

// fetchConcurrently fills records[i] for targets[i]; the first failure cancels the rest.
func fetchConcurrently(ctx context.Context, orchestrator *application.Orchestrator, targets []fetchTarget, records []domain.IntelligenceRecord) error {
	g, gctx := errgroup.WithContext(ctx)
	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			record, err := orchestrator.Fetch(gctx, target.slot, target.code)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	return g.Wait()
}
