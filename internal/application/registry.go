package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/ports"
	"github.com/sirupsen/logrus"
)

const (
	DefaultRegistryAttempts = 3
	DefaultRegistryBackoff  = time.Second
)

// fallbackCountries keeps the client usable when the country directory cannot be reached.
var fallbackCountries = []domain.Country{
	{Code: "USA", Name: "United States", Centroid: domain.Coordinates{Longitude: -95.7129, Latitude: 37.0902}, SizeClass: domain.SizeClassHuge},
	{Code: "GBR", Name: "United Kingdom", Centroid: domain.Coordinates{Longitude: -3.4360, Latitude: 55.3781}, SizeClass: domain.SizeClassDefault},
	{Code: "JPN", Name: "Japan", Centroid: domain.Coordinates{Longitude: 138.2529, Latitude: 36.2048}, SizeClass: domain.SizeClassDefault},
	{Code: "DEU", Name: "Germany", Centroid: domain.Coordinates{Longitude: 10.4515, Latitude: 51.1657}, SizeClass: domain.SizeClassDefault},
	{Code: "CHN", Name: "China", Centroid: domain.Coordinates{Longitude: 104.1954, Latitude: 35.8617}, SizeClass: domain.SizeClassHuge},
}

// Registry is an immutable, ordered set of supported countries.
type Registry struct {
	countries []domain.Country
	index     map[string]int
	fallback  bool
}

func NewRegistry(countries []domain.Country) Registry {
	return newRegistry(countries, false)
}

func FallbackRegistry() Registry {
	return newRegistry(fallbackCountries, true)
}

func newRegistry(countries []domain.Country, fallback bool) Registry {
	copied := append([]domain.Country(nil), countries...)
	index := make(map[string]int, len(copied))
	for i, country := range copied {
		index[country.Code] = i
	}

	return Registry{countries: copied, index: index, fallback: fallback}
}

// Countries returns a copy in registry iteration order.
func (r Registry) Countries() []domain.Country {
	return append([]domain.Country(nil), r.countries...)
}

func (r Registry) Lookup(code string) (domain.Country, bool) {
	i, ok := r.index[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return domain.Country{}, false
	}
	return r.countries[i], true
}

func (r Registry) Fallback() bool {
	return r.fallback
}

func (r Registry) Len() int {
	return len(r.countries)
}

type RegistryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

func DefaultRegistryPolicy() RegistryPolicy {
	return RegistryPolicy{Attempts: DefaultRegistryAttempts, Backoff: DefaultRegistryBackoff}
}

type RegistryService struct {
	directory   ports.CountryDirectory
	sizeClasses map[string]domain.SizeClass
	clock       ports.Clock
	log         logrus.FieldLogger
	policy      RegistryPolicy
}

func NewRegistryService(directory ports.CountryDirectory, sizeClasses map[string]domain.SizeClass, clock ports.Clock, log logrus.FieldLogger, policy RegistryPolicy) *RegistryService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if policy.Attempts <= 0 {
		policy.Attempts = DefaultRegistryAttempts
	}
	if policy.Backoff < 0 {
		policy.Backoff = 0
	}

	return &RegistryService{
		directory:   directory,
		sizeClasses: sizeClasses,
		clock:       clock,
		log:         log,
		policy:      policy,
	}
}

// Load fetches the country list, retrying with a linear backoff. When every attempt
// fails it returns the fallback registry together with an error wrapping
// domain.ErrRegistryLoad, so callers can keep going while surfacing the warning.
func (s *RegistryService) Load(ctx context.Context) (Registry, error) {
	var lastErr error
	for attempt := 0; attempt < s.policy.Attempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * s.policy.Backoff
			if err := s.clock.Sleep(ctx, delay); err != nil {
				lastErr = err
				break
			}
		}

		countries, err := s.fetch(ctx)
		if err == nil {
			s.log.WithField("countries", len(countries)).Debug("country registry loaded")
			return NewRegistry(countries), nil
		}

		lastErr = err
		s.log.WithError(err).WithField("attempt", attempt+1).Warn("country registry fetch failed")
		if ctx.Err() != nil {
			break
		}
	}

	return FallbackRegistry(), fmt.Errorf("%w: %w", domain.ErrRegistryLoad, lastErr)
}

func (s *RegistryService) fetch(ctx context.Context) ([]domain.Country, error) {
	raw, err := s.directory.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	countries, err := decodeCountries(raw, s.sizeClasses)
	if err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}

	return countries, nil
}

type countryEntry struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Coords    []float64 `json:"coords"`
	SizeClass string    `json:"size_class"`
}

func decodeCountries(raw []byte, sizeClasses map[string]domain.SizeClass) ([]domain.Country, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty payload")
	}

	var entries []countryEntry
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
	case '{':
		var wrapped struct {
			Countries *[]countryEntry `json:"countries"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Countries == nil {
			return nil, errors.New(`payload object has no "countries" key`)
		}
		entries = *wrapped.Countries
	default:
		return nil, fmt.Errorf("payload is neither an array nor an object")
	}

	if len(entries) == 0 {
		return nil, errors.New("country list is empty")
	}

	countries := make([]domain.Country, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		country, err := entry.toCountry(sizeClasses)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, ok := seen[country.Code]; ok {
			return nil, fmt.Errorf("entry %d: duplicate country code %s", i, country.Code)
		}
		seen[country.Code] = struct{}{}
		countries = append(countries, country)
	}

	return countries, nil
}

func (e countryEntry) toCountry(sizeClasses map[string]domain.SizeClass) (domain.Country, error) {
	if len(e.Coords) != 2 {
		return domain.Country{}, fmt.Errorf("coords must be [longitude, latitude], got %d values", len(e.Coords))
	}

	code := strings.ToUpper(strings.TrimSpace(e.Code))
	sizeClass, ok := sizeClasses[code]
	if !ok {
		sizeClass = domain.SizeClassDefault
	}
	if strings.TrimSpace(e.SizeClass) != "" {
		parsed, err := domain.ParseSizeClass(e.SizeClass)
		if err != nil {
			return domain.Country{}, err
		}
		sizeClass = parsed
	}

	country := domain.Country{
		Code:      code,
		Name:      strings.TrimSpace(e.Name),
		Centroid:  domain.Coordinates{Longitude: e.Coords[0], Latitude: e.Coords[1]},
		SizeClass: sizeClass,
	}
	if err := country.Validate(); err != nil {
		return domain.Country{}, err
	}

	return country, nil
}
