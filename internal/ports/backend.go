package ports

import "context"

// CountryDirectory returns the raw country list payload. Both a bare JSON array and an
// object wrapping the array under "countries" are valid responses.
type CountryDirectory interface {
	ListCountries(ctx context.Context) ([]byte, error)
}

// IntelligenceSource talks to the intelligence backend. Transport failures wrap
// domain.ErrFetchNetwork and non-2xx answers are *domain.ServerError.
type IntelligenceSource interface {
	Ping(ctx context.Context) error
	FetchIntelligence(ctx context.Context, countryCode string) ([]byte, error)
}
