package cmd

import (
	"fmt"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/application"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/spf13/cobra"
)

func newResolveCmd(app *app) *cobra.Command {
	var lon, lat float64
	var metricName string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Find the country closest to a map point",
		Long:  "resolve picks the nearest country centroid within that country's size-class radius. It is a click heuristic, not a border lookup.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver := app.resolver
			if cmd.Flags().Changed("metric") {
				metric, err := application.MetricByName(metricName)
				if err != nil {
					return err
				}
				resolver = resolver.WithMetric(metric)
			}

			registry, err := loadRegistry(cmd, app)
			if err != nil {
				return err
			}

			country, ok := resolver.Resolve(domain.Coordinates{Longitude: lon, Latitude: lat}, registry.Countries())
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "no country at this point")
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", country.Code, country.Name)
			return err
		},
	}

	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude in degrees")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude in degrees")
	cmd.Flags().StringVar(&metricName, "metric", "", "Distance metric: planar or central-angle (default from config)")
	_ = cmd.MarkFlagRequired("lon")
	_ = cmd.MarkFlagRequired("lat")

	return cmd
}
