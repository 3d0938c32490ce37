package cmd

import (
	"errors"
	"fmt"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/application"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/spf13/cobra"
)

func newCountriesCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List the countries the backend supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := loadRegistry(cmd, app)
			if err != nil {
				return err
			}

			format := formatText
			if asJSON {
				format = formatJSON
			}
			countries := registry.Countries()
			return writeOutput(cmd, format, countries, func() (string, error) {
				return app.countriesRenderer(countries, registry.Fallback())
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

// loadRegistry returns the backend country list, or the fallback list with a warning on
// stderr when the backend cannot be reached.
func loadRegistry(cmd *cobra.Command, app *app) (application.Registry, error) {
	registry, err := app.registry.Load(cmd.Context())
	if err == nil {
		return registry, nil
	}
	if !errors.Is(err, domain.ErrRegistryLoad) {
		return application.Registry{}, err
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using %d built-in countries\n", err, registry.Len())
	return registry, nil
}
