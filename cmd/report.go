package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/adapters/render/report"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/application"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/spf13/cobra"
)

func newReportCmd(app *app) *cobra.Command {
	var lon, lat float64
	var format string
	var maxArticles int

	cmd := &cobra.Command{
		Use:   "report [CODE]",
		Short: "Fetch and display intelligence for one country",
		Long:  "report fetches news, economic indicators, currency rates and country details for a country given by code, or by the map point passed with --lon and --lat.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := normalizeFormat(format)
			if err != nil {
				return err
			}

			code, err := reportTarget(cmd, app, args, lon, lat)
			if err != nil {
				return err
			}

			records, err := fetchRecords(cmd, app, format, fetchTarget{slot: application.SlotPrimary, code: code})
			if err != nil {
				return err
			}
			record := records[0]

			return writeOutput(cmd, format, record, func() (string, error) {
				return app.reportRenderer(record, report.RenderOptions{Now: app.now(), MaxArticles: maxArticles})
			})
		},
	}

	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude of a map point to resolve")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude of a map point to resolve")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")
	cmd.Flags().IntVar(&maxArticles, "max-articles", 0, "Limit the number of articles shown (0 shows all)")
	cmd.MarkFlagsRequiredTogether("lon", "lat")

	return cmd
}

func reportTarget(cmd *cobra.Command, app *app, args []string, lon, lat float64) (string, error) {
	if len(args) == 0 && !cmd.Flags().Changed("lon") {
		return "", fmt.Errorf("a country code or both --lon and --lat are required")
	}

	registry, err := loadRegistry(cmd, app)
	if err != nil {
		return "", err
	}
	if len(args) == 1 {
		return knownCountry(registry, args[0])
	}

	country, ok := app.resolver.Resolve(domain.Coordinates{Longitude: lon, Latitude: lat}, registry.Countries())
	if !ok {
		return "", fmt.Errorf("%w: no country at this point (%g, %g)", domain.ErrCountryNotFound, lon, lat)
	}
	return country.Code, nil
}

// knownCountry checks code against the registry. Codes pass unchecked when only the
// fallback list is available.
func knownCountry(registry application.Registry, raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", fmt.Errorf("%w: empty country code", domain.ErrCountryNotFound)
	}
	if _, ok := registry.Lookup(code); !ok && !registry.Fallback() {
		return "", fmt.Errorf("%w: %s", domain.ErrCountryNotFound, code)
	}
	return code, nil
}

// fetchRecords fetches every target concurrently, showing the spinner on stderr for text
// output. Records come back in target order.
func fetchRecords(cmd *cobra.Command, app *app, format string, targets ...fetchTarget) ([]domain.IntelligenceRecord, error) {
	records := make([]domain.IntelligenceRecord, len(targets))
	fetch := func(ctx context.Context) error {
		return fetchConcurrently(ctx, app.orchestrator, targets, records)
	}

	var err error
	if format == formatText {
		err = runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), app.orchestrator, targets, fetch)
	} else {
		err = fetch(cmd.Context())
	}
	if err != nil {
		return nil, err
	}
	return records, nil
}
