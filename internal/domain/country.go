package domain

import (
	"fmt"
	"math"
	"strings"
)

type Coordinates struct {
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
}

func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Longitude) || math.IsNaN(c.Latitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

type SizeClass string

const (
	SizeClassHuge      SizeClass = "huge"
	SizeClassLarge     SizeClass = "large"
	SizeClassSmall     SizeClass = "small"
	SizeClassCityState SizeClass = "city_state"
	SizeClassDefault   SizeClass = "default"
)

func ParseSizeClass(raw string) (SizeClass, error) {
	switch SizeClass(strings.ToLower(strings.TrimSpace(raw))) {
	case SizeClassHuge:
		return SizeClassHuge, nil
	case SizeClassLarge:
		return SizeClassLarge, nil
	case SizeClassSmall:
		return SizeClassSmall, nil
	case SizeClassCityState, "city-state", "citystate":
		return SizeClassCityState, nil
	case SizeClassDefault, "":
		return SizeClassDefault, nil
	default:
		return "", fmt.Errorf("unknown size class %q", raw)
	}
}

// ThresholdTable maps a size class to the click acceptance radius, in degrees.
type ThresholdTable map[SizeClass]float64

func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		SizeClassHuge:      25,
		SizeClassLarge:     20,
		SizeClassSmall:     10,
		SizeClassCityState: 5,
		SizeClassDefault:   10,
	}
}

func (t ThresholdTable) Threshold(class SizeClass) float64 {
	if value, ok := t[class]; ok {
		return value
	}
	if value, ok := t[SizeClassDefault]; ok {
		return value
	}
	return 10
}

type Country struct {
	Code      string      `json:"code" yaml:"code"`
	Name      string      `json:"name" yaml:"name"`
	Centroid  Coordinates `json:"centroid" yaml:"centroid"`
	SizeClass SizeClass   `json:"size_class" yaml:"size_class"`
}

func (c Country) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("code is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !c.Centroid.Valid() {
		return fmt.Errorf("country %s: centroid (%g, %g) out of range", c.Code, c.Centroid.Longitude, c.Centroid.Latitude)
	}

	return nil
}
