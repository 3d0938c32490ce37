package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizeClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    SizeClass
		wantErr bool
	}{
		{raw: "huge", want: SizeClassHuge},
		{raw: " Large ", want: SizeClassLarge},
		{raw: "small", want: SizeClassSmall},
		{raw: "city-state", want: SizeClassCityState},
		{raw: "city_state", want: SizeClassCityState},
		{raw: "", want: SizeClassDefault},
		{raw: "continent", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSizeClass(tc.raw)
			if tc.wantErr {
				assert.ErrorContains(t, err, "unknown size class")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestThresholdTableFallsBackToDefault(t *testing.T) {
	t.Parallel()

	table := DefaultThresholds()
	assert.Equal(t, 25.0, table.Threshold(SizeClassHuge))
	assert.Equal(t, 20.0, table.Threshold(SizeClassLarge))
	assert.Equal(t, 5.0, table.Threshold(SizeClassCityState))
	assert.Equal(t, 10.0, table.Threshold(SizeClassSmall))
	assert.Equal(t, 10.0, table.Threshold(SizeClass("unknown")))

	custom := ThresholdTable{SizeClassDefault: 7}
	assert.Equal(t, 7.0, custom.Threshold(SizeClassHuge))
	assert.Equal(t, 10.0, ThresholdTable{}.Threshold(SizeClassHuge))
}

func TestCountryValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		country Country
		wantErr string
	}{
		{name: "valid", country: Country{Code: "USA", Name: "United States", Centroid: Coordinates{Longitude: -95.7, Latitude: 37.1}}},
		{name: "missing code", country: Country{Name: "United States"}, wantErr: "code is required"},
		{name: "missing name", country: Country{Code: "USA"}, wantErr: "name is required"},
		{name: "latitude out of range", country: Country{Code: "USA", Name: "United States", Centroid: Coordinates{Latitude: 91}}, wantErr: "out of range"},
		{name: "nan longitude", country: Country{Code: "USA", Name: "United States", Centroid: Coordinates{Longitude: math.NaN()}}, wantErr: "out of range"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.country.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestServerErrorClassification(t *testing.T) {
	t.Parallel()

	var err error = &ServerError{Status: 503, Detail: "waking up"}

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.True(t, serverErr.IsServerError())
	assert.False(t, serverErr.IsNotFound())
	assert.Equal(t, "backend returned status 503: waking up", err.Error())
	assert.Equal(t, "backend returned status 404", (&ServerError{Status: 404}).Error())
}

func TestArticleSentimentLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Article{}.SentimentLabel())
	assert.Equal(t, SentimentPositive, Article{Analysis: &ArticleAnalysis{Sentiment: Sentiment{Label: SentimentPositive}}}.SentimentLabel())
}
