package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/ports/clocktest"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/ports/mocks"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSizeClasses = map[string]domain.SizeClass{
	"USA": domain.SizeClassHuge,
	"IND": domain.SizeClassLarge,
	"SGP": domain.SizeClassCityState,
}

func TestRegistryLoadAcceptsBareArray(t *testing.T) {
	directory := mocks.NewMockCountryDirectory(t)
	directory.EXPECT().ListCountries(mock.Anything).Return([]byte(`[
		{"code":"usa","name":"United States","coords":[-95.7129,37.0902]},
		{"code":"FRA","name":"France","coords":[2.2137,46.2276]}
	]`), nil).Once()

	logger, _ := logtest.NewNullLogger()
	service := NewRegistryService(directory, testSizeClasses, clocktest.New(time.Time{}), logger, DefaultRegistryPolicy())

	registry, err := service.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, registry.Fallback())
	assert.Equal(t, 2, registry.Len())

	usa, ok := registry.Lookup("USA")
	require.True(t, ok)
	assert.Equal(t, domain.SizeClassHuge, usa.SizeClass)
	assert.Equal(t, domain.Coordinates{Longitude: -95.7129, Latitude: 37.0902}, usa.Centroid)

	fra, ok := registry.Lookup("fra")
	require.True(t, ok)
	assert.Equal(t, domain.SizeClassDefault, fra.SizeClass)
}

func TestRegistryLoadNormalizesWrappedShape(t *testing.T) {
	bare := []byte(`[{"code":"SGP","name":"Singapore","coords":[103.8198,1.3521]}]`)
	wrapped := []byte(`{"countries":[{"code":"SGP","name":"Singapore","coords":[103.8198,1.3521]}],"total":1}`)

	var loaded []Registry
	for _, payload := range [][]byte{bare, wrapped} {
		directory := mocks.NewMockCountryDirectory(t)
		directory.EXPECT().ListCountries(mock.Anything).Return(payload, nil).Once()

		logger, _ := logtest.NewNullLogger()
		registry, err := NewRegistryService(directory, testSizeClasses, clocktest.New(time.Time{}), logger, DefaultRegistryPolicy()).Load(context.Background())
		require.NoError(t, err)
		loaded = append(loaded, registry)
	}

	assert.Equal(t, loaded[0].Countries(), loaded[1].Countries())
	assert.Equal(t, domain.SizeClassCityState, loaded[1].Countries()[0].SizeClass)
}

func TestRegistryLoadPayloadSizeClassOverridesCatalog(t *testing.T) {
	directory := mocks.NewMockCountryDirectory(t)
	directory.EXPECT().ListCountries(mock.Anything).Return([]byte(`[{"code":"USA","name":"United States","coords":[-95.7,37.1],"size_class":"large"}]`), nil).Once()

	logger, _ := logtest.NewNullLogger()
	registry, err := NewRegistryService(directory, testSizeClasses, clocktest.New(time.Time{}), logger, DefaultRegistryPolicy()).Load(context.Background())
	require.NoError(t, err)

	usa, ok := registry.Lookup("USA")
	require.True(t, ok)
	assert.Equal(t, domain.SizeClassLarge, usa.SizeClass)
}

func TestRegistryLoadRetriesThenSucceeds(t *testing.T) {
	directory := mocks.NewMockCountryDirectory(t)
	directory.EXPECT().ListCountries(mock.Anything).Return(nil, errors.New("connection refused")).Once()
	directory.EXPECT().ListCountries(mock.Anything).Return([]byte(`[{"code":"USA","name":"United States","coords":[-95.7,37.1]}]`), nil).Once()

	clock := clocktest.New(time.Time{})
	logger, hook := logtest.NewNullLogger()
	registry, err := NewRegistryService(directory, testSizeClasses, clock, logger, DefaultRegistryPolicy()).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, registry.Fallback())
	assert.Equal(t, []time.Duration{time.Second}, clock.Sleeps())

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestRegistryLoadFallsBackAfterThreeFailures(t *testing.T) {
	directory := mocks.NewMockCountryDirectory(t)
	directory.EXPECT().ListCountries(mock.Anything).Return(nil, errors.New("status 503")).Times(3)

	clock := clocktest.New(time.Time{})
	logger, _ := logtest.NewNullLogger()
	registry, err := NewRegistryService(directory, testSizeClasses, clock, logger, DefaultRegistryPolicy()).Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRegistryLoad)
	assert.ErrorContains(t, err, "status 503")
	assert.True(t, registry.Fallback())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clock.Sleeps())

	codes := make([]string, 0, registry.Len())
	for _, country := range registry.Countries() {
		codes = append(codes, country.Code)
	}
	assert.Equal(t, []string{"USA", "GBR", "JPN", "DEU", "CHN"}, codes)
}

func TestRegistryLoadRejectsPartialLists(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "entry missing coords", payload: `[{"code":"USA","name":"United States","coords":[-95.7,37.1]},{"code":"FRA","name":"France"}]`},
		{name: "entry missing name", payload: `[{"code":"USA","coords":[-95.7,37.1]}]`},
		{name: "duplicate code", payload: `[{"code":"USA","name":"A","coords":[1,1]},{"code":"usa","name":"B","coords":[2,2]}]`},
		{name: "object without countries key", payload: `{"country":"United States","country_code":"USA"}`},
		{name: "empty list", payload: `{"countries":[]}`},
		{name: "not json", payload: `<html>waking up</html>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			directory := mocks.NewMockCountryDirectory(t)
			directory.EXPECT().ListCountries(mock.Anything).Return([]byte(tc.payload), nil).Times(3)

			logger, _ := logtest.NewNullLogger()
			registry, err := NewRegistryService(directory, testSizeClasses, clocktest.New(time.Time{}), logger, DefaultRegistryPolicy()).Load(context.Background())
			require.ErrorIs(t, err, domain.ErrRegistryLoad)
			assert.True(t, registry.Fallback())
			assert.Equal(t, 5, registry.Len())
		})
	}
}

func TestRegistryLoadStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	directory := mocks.NewMockCountryDirectory(t)
	directory.EXPECT().ListCountries(mock.Anything).RunAndReturn(func(context.Context) ([]byte, error) {
		cancel()
		return nil, context.Canceled
	}).Once()

	logger, _ := logtest.NewNullLogger()
	registry, err := NewRegistryService(directory, testSizeClasses, clocktest.New(time.Time{}), logger, DefaultRegistryPolicy()).Load(ctx)
	require.ErrorIs(t, err, domain.ErrRegistryLoad)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, registry.Fallback())
}

func TestRegistryCountriesReturnsCopy(t *testing.T) {
	t.Parallel()

	registry := FallbackRegistry()
	countries := registry.Countries()
	countries[0].Name = "mutated"

	usa, ok := registry.Lookup("USA")
	require.True(t, ok)
	assert.Equal(t, "United States", usa.Name)
}
