package application

import (
	"fmt"
	"math"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
)

type Format string

const (
	FormatCurrency   Format = "currency"
	FormatPopulation Format = "population"
	FormatPercent    Format = "percent"
	FormatYears      Format = "years"
)

type magnitude struct {
	threshold float64
	suffix    string
}

var (
	currencyMagnitudes   = []magnitude{{1e12, "T"}, {1e9, "B"}, {1e6, "M"}, {1e3, "K"}}
	populationMagnitudes = []magnitude{{1e9, "B"}, {1e6, "M"}, {1e3, "K"}}
)

// Display renders value the way the comparison view shows it, e.g. "$21.0T" or "4.2%".
func (f Format) Display(value float64) string {
	switch f {
	case FormatCurrency:
		return signed(value, func(abs float64) string { return "$" + scaled(abs, currencyMagnitudes) })
	case FormatPopulation:
		return signed(value, func(abs float64) string { return scaled(abs, populationMagnitudes) })
	case FormatPercent:
		return fmt.Sprintf("%.1f%%", value)
	case FormatYears:
		return fmt.Sprintf("%.1f years", value)
	default:
		return fmt.Sprintf("%g", value)
	}
}

func signed(value float64, format func(float64) string) string {
	if value < 0 {
		return "-" + format(-value)
	}
	return format(value)
}

func scaled(value float64, magnitudes []magnitude) string {
	for _, m := range magnitudes {
		if value >= m.threshold {
			return fmt.Sprintf("%.1f%s", value/m.threshold, m.suffix)
		}
	}
	return fmt.Sprintf("%.0f", value)
}

// IndicatorSpec describes one comparable economic indicator. HigherIsBetter picks the
// direction that counts as an advantage.
type IndicatorSpec struct {
	Key            string `json:"key" yaml:"key"`
	Label          string `json:"label" yaml:"label"`
	Format         Format `json:"format" yaml:"format"`
	HigherIsBetter bool   `json:"higher_is_better" yaml:"higher_is_better"`
}

func DefaultIndicators() []IndicatorSpec {
	return []IndicatorSpec{
		{Key: "GDP", Label: "GDP", Format: FormatCurrency, HigherIsBetter: true},
		{Key: "POPULATION", Label: "Population", Format: FormatPopulation, HigherIsBetter: true},
		{Key: "GDP_PER_CAPITA", Label: "GDP per Capita", Format: FormatCurrency, HigherIsBetter: true},
		{Key: "UNEMPLOYMENT", Label: "Unemployment", Format: FormatPercent, HigherIsBetter: false},
		{Key: "INFLATION", Label: "Inflation", Format: FormatPercent, HigherIsBetter: false},
		{Key: "LIFE_EXPECTANCY", Label: "Life Expectancy", Format: FormatYears, HigherIsBetter: true},
		{Key: "INTERNET_USERS", Label: "Internet Users", Format: FormatPercent, HigherIsBetter: true},
	}
}

type Verdict string

const (
	VerdictBetter Verdict = "better"
	VerdictWorse  Verdict = "worse"
	VerdictEqual  Verdict = "equal"
)

type ComparisonRow struct {
	Indicator    IndicatorSpec `json:"indicator" yaml:"indicator"`
	ValueA       float64       `json:"value_a" yaml:"value_a"`
	ValueB       float64       `json:"value_b" yaml:"value_b"`
	DisplayA     string        `json:"display_a" yaml:"display_a"`
	DisplayB     string        `json:"display_b" yaml:"display_b"`
	VerdictA     Verdict       `json:"verdict_a" yaml:"verdict_a"`
	VerdictB     Verdict       `json:"verdict_b" yaml:"verdict_b"`
	DeltaPercent float64       `json:"delta_percent" yaml:"delta_percent"`
}

func (r ComparisonRow) DeltaDisplay() string {
	return fmt.Sprintf("%.0f%%", r.DeltaPercent)
}

type SentimentTally struct {
	Positive int `json:"positive" yaml:"positive"`
	Negative int `json:"negative" yaml:"negative"`
	Neutral  int `json:"neutral" yaml:"neutral"`
}

func (t SentimentTally) Total() int {
	return t.Positive + t.Negative + t.Neutral
}

// TallySentiment counts analysed articles by sentiment label. Articles without analysis
// or with an unrecognised label are not counted.
func TallySentiment(articles []domain.Article) SentimentTally {
	var tally SentimentTally
	for _, article := range articles {
		switch article.SentimentLabel() {
		case domain.SentimentPositive:
			tally.Positive++
		case domain.SentimentNegative:
			tally.Negative++
		case domain.SentimentNeutral:
			tally.Neutral++
		}
	}
	return tally
}

// Ratio is a percentage of country B's value, present only when both sides reported it.
type Ratio struct {
	Percent float64 `json:"percent" yaml:"percent"`
	Known   bool    `json:"known" yaml:"known"`
}

func (r Ratio) Display() string {
	if !r.Known {
		return "unknown"
	}
	return fmt.Sprintf("%.0f%%", r.Percent)
}

type Insights struct {
	GDP        Ratio `json:"gdp" yaml:"gdp"`
	Population Ratio `json:"population" yaml:"population"`
}

type ComparisonView struct {
	CodeA      string          `json:"code_a" yaml:"code_a"`
	NameA      string          `json:"name_a" yaml:"name_a"`
	CodeB      string          `json:"code_b" yaml:"code_b"`
	NameB      string          `json:"name_b" yaml:"name_b"`
	Rows       []ComparisonRow `json:"rows" yaml:"rows"`
	SentimentA SentimentTally  `json:"sentiment_a" yaml:"sentiment_a"`
	SentimentB SentimentTally  `json:"sentiment_b" yaml:"sentiment_b"`
	Insights   Insights        `json:"insights" yaml:"insights"`
}

type Comparer struct {
	Indicators []IndicatorSpec
}

func NewComparer(indicators []IndicatorSpec) Comparer {
	if len(indicators) == 0 {
		indicators = DefaultIndicators()
	}
	return Comparer{Indicators: indicators}
}

// Compare builds the side-by-side view of two records. An indicator becomes a row only
// when both records carry a non-zero value for it.
func (c Comparer) Compare(a, b domain.IntelligenceRecord) ComparisonView {
	view := ComparisonView{
		CodeA:      a.CountryCode,
		NameA:      a.CountryName,
		CodeB:      b.CountryCode,
		NameB:      b.CountryName,
		Rows:       make([]ComparisonRow, 0, len(c.Indicators)),
		SentimentA: TallySentiment(a.Articles),
		SentimentB: TallySentiment(b.Articles),
		Insights: Insights{
			GDP:        ratio(a, b, "GDP"),
			Population: ratio(a, b, "POPULATION"),
		},
	}

	for _, spec := range c.Indicators {
		valueA, okA := presentValue(a, spec.Key)
		valueB, okB := presentValue(b, spec.Key)
		if !okA || !okB {
			continue
		}

		verdictA, verdictB := verdicts(valueA, valueB, spec.HigherIsBetter)
		view.Rows = append(view.Rows, ComparisonRow{
			Indicator:    spec,
			ValueA:       valueA,
			ValueB:       valueB,
			DisplayA:     spec.Format.Display(valueA),
			DisplayB:     spec.Format.Display(valueB),
			VerdictA:     verdictA,
			VerdictB:     verdictB,
			DeltaPercent: math.Abs(valueA-valueB) / math.Abs(valueB) * 100,
		})
	}

	return view
}

func presentValue(record domain.IntelligenceRecord, key string) (float64, bool) {
	indicator, ok := record.Indicator(key)
	if !ok || indicator.Value == 0 || math.IsNaN(indicator.Value) || math.IsInf(indicator.Value, 0) {
		return 0, false
	}
	return indicator.Value, true
}

func verdicts(a, b float64, higherIsBetter bool) (Verdict, Verdict) {
	if a == b {
		return VerdictEqual, VerdictEqual
	}
	if (a > b) == higherIsBetter {
		return VerdictBetter, VerdictWorse
	}
	return VerdictWorse, VerdictBetter
}

func ratio(a, b domain.IntelligenceRecord, key string) Ratio {
	valueA, okA := presentValue(a, key)
	valueB, okB := presentValue(b, key)
	if !okA || !okB {
		return Ratio{}
	}
	return Ratio{Percent: valueA / valueB * 100, Known: true}
}
