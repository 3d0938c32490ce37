package application

import (
	"fmt"
	"math"
	"strings"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
)

// DistanceMetric returns the distance between two points in degree units so that the
// same threshold table applies to every metric.
type DistanceMetric func(a, b domain.Coordinates) float64

const (
	MetricPlanar       = "planar"
	MetricCentralAngle = "central-angle"
)

// PlanarDegrees is Euclidean distance in degree space with the longitude delta wrapped
// into [-180, 180], so clicks across the antimeridian are not 360 degrees apart.
func PlanarDegrees(a, b domain.Coordinates) float64 {
	return math.Hypot(wrapLongitude(a.Longitude-b.Longitude), a.Latitude-b.Latitude)
}

// CentralAngleDegrees is the great-circle angle between two points, in degrees.
func CentralAngleDegrees(a, b domain.Coordinates) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := wrapLongitude(b.Longitude-a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	h = math.Min(1, math.Max(0, h))

	return 2 * math.Asin(math.Sqrt(h)) * 180 / math.Pi
}

func MetricByName(name string) (DistanceMetric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MetricPlanar:
		return PlanarDegrees, nil
	case MetricCentralAngle:
		return CentralAngleDegrees, nil
	default:
		return nil, fmt.Errorf("unknown distance metric %q (want %s or %s)", name, MetricPlanar, MetricCentralAngle)
	}
}

func wrapLongitude(delta float64) float64 {
	delta = math.Mod(delta, 360)
	if delta > 180 {
		delta -= 360
	}
	if delta < -180 {
		delta += 360
	}
	return delta
}

// Resolver maps a clicked point to the nearest country centroid within that country's
// size-class threshold. It is a best-effort heuristic, not polygon containment.
type Resolver struct {
	thresholds domain.ThresholdTable
	metric     DistanceMetric
}

func NewResolver(thresholds domain.ThresholdTable, metric DistanceMetric) Resolver {
	if thresholds == nil {
		thresholds = domain.DefaultThresholds()
	}
	if metric == nil {
		metric = PlanarDegrees
	}

	return Resolver{thresholds: thresholds, metric: metric}
}

// Resolve returns the candidate with the globally smallest distance; ties go to the
// country that comes first in iteration order.
func (r Resolver) Resolve(point domain.Coordinates, countries []domain.Country) (domain.Country, bool) {
	if !point.Valid() {
		return domain.Country{}, false
	}

	var best domain.Country
	bestDistance := math.Inf(1)
	found := false
	for _, country := range countries {
		distance := r.metric(point, country.Centroid)
		if distance >= r.thresholds.Threshold(country.SizeClass) {
			continue
		}
		if distance < bestDistance {
			best = country
			bestDistance = distance
			found = true
		}
	}

	return best, found
}

func (r Resolver) WithMetric(metric DistanceMetric) Resolver {
	return NewResolver(r.thresholds, metric)
}
