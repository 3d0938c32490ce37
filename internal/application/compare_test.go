package application

import (
	"testing"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordWith(code string, indicators map[string]float64, labels ...string) domain.IntelligenceRecord {
	record := domain.IntelligenceRecord{
		CountryCode:        code,
		CountryName:        code,
		EconomicIndicators: make(map[string]domain.Indicator, len(indicators)),
	}
	for key, value := range indicators {
		record.EconomicIndicators[key] = domain.Indicator{Value: value, Year: "2023"}
	}
	for _, label := range labels {
		article := domain.Article{Title: label}
		if label != "" {
			article.Analysis = &domain.ArticleAnalysis{Sentiment: domain.Sentiment{Label: label}}
		}
		record.Articles = append(record.Articles, article)
	}
	return record
}

func TestCompareGDPFormattingAndDelta(t *testing.T) {
	t.Parallel()

	view := NewComparer(nil).Compare(
		recordWith("USA", map[string]float64{"GDP": 2.1e13}),
		recordWith("DEU", map[string]float64{"GDP": 3.4e12}),
	)

	require.Len(t, view.Rows, 1)
	row := view.Rows[0]
	assert.Equal(t, "GDP", row.Indicator.Key)
	assert.Equal(t, "$21.0T", row.DisplayA)
	assert.Equal(t, "$3.4T", row.DisplayB)
	assert.InDelta(t, 517.647, row.DeltaPercent, 0.01)
	assert.Equal(t, "518%", row.DeltaDisplay())
	assert.Equal(t, VerdictBetter, row.VerdictA)
	assert.Equal(t, VerdictWorse, row.VerdictB)
}

func TestCompareOmitsIndicatorMissingOnEitherSide(t *testing.T) {
	t.Parallel()

	view := NewComparer(nil).Compare(
		recordWith("USA", map[string]float64{"GDP": 2.1e13, "INFLATION": 4.1, "POPULATION": 3.3e8}),
		recordWith("JPN", map[string]float64{"GDP": 4.2e12, "POPULATION": 1.25e8, "UNEMPLOYMENT": 2.6}),
	)

	keys := make([]string, 0, len(view.Rows))
	for _, row := range view.Rows {
		keys = append(keys, row.Indicator.Key)
	}
	assert.Equal(t, []string{"GDP", "POPULATION"}, keys)
}

func TestCompareTreatsZeroAsAbsent(t *testing.T) {
	t.Parallel()

	view := NewComparer(nil).Compare(
		recordWith("AAA", map[string]float64{"INFLATION": 0}),
		recordWith("BBB", map[string]float64{"INFLATION": 2.5}),
	)

	assert.Empty(t, view.Rows)
}

func TestCompareRespectsIndicatorDirection(t *testing.T) {
	t.Parallel()

	view := NewComparer(nil).Compare(
		recordWith("ESP", map[string]float64{"UNEMPLOYMENT": 12.2, "LIFE_EXPECTANCY": 83.1}),
		recordWith("DEU", map[string]float64{"UNEMPLOYMENT": 3.1, "LIFE_EXPECTANCY": 81.1}),
	)

	require.Len(t, view.Rows, 2)
	unemployment := view.Rows[0]
	assert.Equal(t, "UNEMPLOYMENT", unemployment.Indicator.Key)
	assert.Equal(t, VerdictWorse, unemployment.VerdictA)
	assert.Equal(t, VerdictBetter, unemployment.VerdictB)
	assert.Equal(t, "12.2%", unemployment.DisplayA)

	life := view.Rows[1]
	assert.Equal(t, VerdictBetter, life.VerdictA)
	assert.Equal(t, "83.1 years", life.DisplayA)
}

func TestCompareEqualValues(t *testing.T) {
	t.Parallel()

	view := NewComparer(nil).Compare(
		recordWith("AAA", map[string]float64{"INTERNET_USERS": 90}),
		recordWith("BBB", map[string]float64{"INTERNET_USERS": 90}),
	)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, VerdictEqual, view.Rows[0].VerdictA)
	assert.Equal(t, VerdictEqual, view.Rows[0].VerdictB)
	assert.Zero(t, view.Rows[0].DeltaPercent)
}

func TestCompareCustomIndicators(t *testing.T) {
	t.Parallel()

	comparer := NewComparer([]IndicatorSpec{{Key: "TRADE_BALANCE", Label: "Trade Balance", Format: FormatCurrency, HigherIsBetter: true}})
	view := comparer.Compare(
		recordWith("CHN", map[string]float64{"TRADE_BALANCE": 5.1e11, "GDP": 1.8e13}),
		recordWith("USA", map[string]float64{"TRADE_BALANCE": -7.8e11, "GDP": 2.7e13}),
	)

	require.Len(t, view.Rows, 1)
	assert.Equal(t, "$510.0B", view.Rows[0].DisplayA)
	assert.Equal(t, "-$780.0B", view.Rows[0].DisplayB)
}

func TestTallySentiment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SentimentTally{}, TallySentiment(nil))
	assert.Equal(t, SentimentTally{}, TallySentiment([]domain.Article{}))

	record := recordWith("FRA", nil, "positive", "negative", "positive", "", "neutral", "mixed")
	tally := TallySentiment(record.Articles)
	assert.Equal(t, SentimentTally{Positive: 2, Negative: 1, Neutral: 1}, tally)
	assert.Equal(t, 4, tally.Total())
}

func TestCompareInsights(t *testing.T) {
	t.Parallel()

	view := NewComparer(nil).Compare(
		recordWith("GBR", map[string]float64{"GDP": 3.3e12, "POPULATION": 6.8e7}),
		recordWith("FRA", map[string]float64{"GDP": 3.0e12}),
	)

	assert.True(t, view.Insights.GDP.Known)
	assert.InDelta(t, 110.0, view.Insights.GDP.Percent, 1e-9)
	assert.Equal(t, "110%", view.Insights.GDP.Display())
	assert.False(t, view.Insights.Population.Known)
	assert.Equal(t, "unknown", view.Insights.Population.Display())
}

func TestFormatDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format Format
		value  float64
		want   string
	}{
		{FormatCurrency, 2.1e13, "$21.0T"},
		{FormatCurrency, 4.5e9, "$4.5B"},
		{FormatCurrency, 65020, "$65.0K"},
		{FormatCurrency, 812, "$812"},
		{FormatPopulation, 1.41e9, "1.4B"},
		{FormatPopulation, 6.8e7, "68.0M"},
		{FormatPopulation, 38000, "38.0K"},
		{FormatPopulation, 800, "800"},
		{FormatPercent, 3.456, "3.5%"},
		{FormatYears, 78.94, "78.9 years"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.format.Display(tt.value), "%s %v", tt.format, tt.value)
	}
}
