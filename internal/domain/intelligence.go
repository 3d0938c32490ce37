package domain

import "time"

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

type IntelligenceRecord struct {
	CountryCode        string               `json:"country_code" yaml:"country_code"`
	CountryName        string               `json:"country_name" yaml:"country_name"`
	Articles           []Article            `json:"articles" yaml:"articles"`
	TotalArticles      int                  `json:"total_articles" yaml:"total_articles"`
	EconomicIndicators map[string]Indicator `json:"economic_indicators" yaml:"economic_indicators"`
	Currency           CurrencyData         `json:"currency" yaml:"currency"`
	CountryInfo        CountryInfo          `json:"country_info" yaml:"country_info"`
	DataAvailability   DataAvailability     `json:"data_availability" yaml:"data_availability"`
	LastUpdated        time.Time            `json:"last_updated" yaml:"last_updated"`
}

// Indicator returns the named economic indicator when the backend reported one.
func (r IntelligenceRecord) Indicator(key string) (Indicator, bool) {
	indicator, ok := r.EconomicIndicators[key]
	if !ok {
		return Indicator{}, false
	}
	return indicator, true
}

type Article struct {
	Title       string           `json:"title" yaml:"title"`
	Source      string           `json:"source" yaml:"source"`
	PublishedAt time.Time        `json:"published_at" yaml:"published_at"`
	URL         string           `json:"url" yaml:"url"`
	Description string           `json:"description" yaml:"description"`
	Analysis    *ArticleAnalysis `json:"analysis,omitempty" yaml:"analysis,omitempty"`
}

func (a Article) SentimentLabel() string {
	if a.Analysis == nil {
		return ""
	}
	return a.Analysis.Sentiment.Label
}

type ArticleAnalysis struct {
	SummaryTweet   string    `json:"summary_tweet" yaml:"summary_tweet"`
	SummaryBullets []string  `json:"summary_bullets" yaml:"summary_bullets"`
	Sentiment      Sentiment `json:"sentiment" yaml:"sentiment"`
	Bias           Bias      `json:"bias" yaml:"bias"`
}

type Sentiment struct {
	Label string  `json:"label" yaml:"label"`
	Score float64 `json:"score" yaml:"score"`
}

type Bias struct {
	Label       string  `json:"label" yaml:"label"`
	Credibility float64 `json:"credibility" yaml:"credibility"`
}

type Indicator struct {
	Value float64 `json:"value" yaml:"value"`
	Year  string  `json:"year" yaml:"year"`
	Name  string  `json:"name" yaml:"name"`
}

// CurrencyData rates express one unit of BaseCurrency in each quote currency.
type CurrencyData struct {
	BaseCurrency string             `json:"base_currency" yaml:"base_currency"`
	Rates        map[string]float64 `json:"rates" yaml:"rates"`
	LastUpdated  time.Time          `json:"last_updated" yaml:"last_updated"`
}

type CountryInfo struct {
	Capital     string `json:"capital" yaml:"capital"`
	Region      string `json:"region" yaml:"region"`
	IncomeLevel string `json:"income_level" yaml:"income_level"`
}

type DataAvailability struct {
	News        bool `json:"news" yaml:"news"`
	Economic    bool `json:"economic" yaml:"economic"`
	Currency    bool `json:"currency" yaml:"currency"`
	CountryInfo bool `json:"country_info" yaml:"country_info"`
}
