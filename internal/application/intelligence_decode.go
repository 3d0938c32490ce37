package application

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
)

type intelligencePayload struct {
	Country            string                       `json:"country"`
	CountryCode        string                       `json:"country_code"`
	Articles           []articlePayload             `json:"articles"`
	TotalArticles      *int                         `json:"total_articles"`
	EconomicIndicators map[string]*indicatorPayload `json:"economic_indicators"`
	CountryInfo        *countryInfoPayload          `json:"country_info"`
	CurrencyData       *currencyPayload             `json:"currency_data"`
	LastUpdated        string                       `json:"last_updated"`
}

type articlePayload struct {
	Title       string           `json:"title"`
	Source      string           `json:"source"`
	PublishedAt string           `json:"published_at"`
	URL         string           `json:"url"`
	Description string           `json:"description"`
	AIAnalysis  *analysisPayload `json:"ai_analysis"`
}

type analysisPayload struct {
	SummaryTweet   string   `json:"summary_tweet"`
	SummaryBullets []string `json:"summary_bullets"`
	Sentiment      struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	} `json:"sentiment"`
	Bias struct {
		Label       string  `json:"label"`
		Credibility float64 `json:"credibility"`
	} `json:"bias"`
}

type indicatorPayload struct {
	Value     *float64   `json:"value"`
	Year      flexString `json:"year"`
	Indicator string     `json:"indicator"`
}

type countryInfoPayload struct {
	Capital     string `json:"capital"`
	Region      string `json:"region"`
	IncomeLevel string `json:"income_level"`
}

type currencyPayload struct {
	BaseCurrency string              `json:"base_currency"`
	Rates        map[string]*float64 `json:"rates"`
	LastUpdated  string              `json:"last_updated"`
	Error        string              `json:"error"`
}

// flexString accepts a JSON string or number; World Bank years arrive as either.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = flexString(value)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = flexString(number.String())
	return nil
}

// decodeIntelligence rejects payloads that are valid JSON but the wrong resource, such
// as the country list, before decoding the single-country record.
func decodeIntelligence(raw []byte) (domain.IntelligenceRecord, error) {
	if err := checkIntelligenceShape(raw); err != nil {
		return domain.IntelligenceRecord{}, fmt.Errorf("%w: %v", domain.ErrFetchShapeMismatch, err)
	}

	var payload intelligencePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.IntelligenceRecord{}, fmt.Errorf("%w: %v", domain.ErrFetchShapeMismatch, err)
	}

	return payload.toRecord(), nil
}

func checkIntelligenceShape(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return errors.New("empty payload")
	}
	if trimmed[0] == '[' {
		return errors.New("payload is a list, expected a single country record")
	}
	if trimmed[0] != '{' {
		return errors.New("payload is not a JSON object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}
	if _, ok := fields["countries"]; ok {
		return errors.New(`payload carries a "countries" list`)
	}
	for _, key := range []string{"country", "country_code"} {
		var value string
		if err := json.Unmarshal(fields[key], &value); err != nil || strings.TrimSpace(value) == "" {
			return fmt.Errorf("payload has no %q field", key)
		}
	}

	return nil
}

func (p intelligencePayload) toRecord() domain.IntelligenceRecord {
	record := domain.IntelligenceRecord{
		CountryCode:        strings.ToUpper(strings.TrimSpace(p.CountryCode)),
		CountryName:        strings.TrimSpace(p.Country),
		Articles:           make([]domain.Article, 0, len(p.Articles)),
		EconomicIndicators: make(map[string]domain.Indicator, len(p.EconomicIndicators)),
		LastUpdated:        parseTimestamp(p.LastUpdated),
	}

	for _, article := range p.Articles {
		record.Articles = append(record.Articles, article.toArticle())
	}
	record.TotalArticles = len(record.Articles)
	if p.TotalArticles != nil {
		record.TotalArticles = *p.TotalArticles
	}

	for key, indicator := range p.EconomicIndicators {
		if indicator == nil || indicator.Value == nil {
			continue
		}
		record.EconomicIndicators[strings.ToUpper(key)] = domain.Indicator{
			Value: *indicator.Value,
			Year:  string(indicator.Year),
			Name:  indicator.Indicator,
		}
	}

	if p.CountryInfo != nil {
		record.CountryInfo = domain.CountryInfo{
			Capital:     strings.TrimSpace(p.CountryInfo.Capital),
			Region:      strings.TrimSpace(p.CountryInfo.Region),
			IncomeLevel: strings.TrimSpace(p.CountryInfo.IncomeLevel),
		}
	}

	if p.CurrencyData != nil && p.CurrencyData.Error == "" {
		rates := make(map[string]float64, len(p.CurrencyData.Rates))
		for code, rate := range p.CurrencyData.Rates {
			if rate != nil {
				rates[strings.ToUpper(code)] = *rate
			}
		}
		record.Currency = domain.CurrencyData{
			BaseCurrency: p.CurrencyData.BaseCurrency,
			Rates:        rates,
			LastUpdated:  parseTimestamp(p.CurrencyData.LastUpdated),
		}
	}

	info := record.CountryInfo
	record.DataAvailability = domain.DataAvailability{
		News:        len(record.Articles) > 0,
		Economic:    len(record.EconomicIndicators) > 0,
		Currency:    record.Currency.BaseCurrency != "" && len(record.Currency.Rates) > 0,
		CountryInfo: info.Capital != "" || info.Region != "" || info.IncomeLevel != "",
	}

	return record
}

func (a articlePayload) toArticle() domain.Article {
	article := domain.Article{
		Title:       a.Title,
		Source:      a.Source,
		PublishedAt: parseTimestamp(a.PublishedAt),
		URL:         a.URL,
		Description: a.Description,
	}
	if a.AIAnalysis != nil {
		article.Analysis = &domain.ArticleAnalysis{
			SummaryTweet:   a.AIAnalysis.SummaryTweet,
			SummaryBullets: a.AIAnalysis.SummaryBullets,
			Sentiment: domain.Sentiment{
				Label: strings.ToLower(a.AIAnalysis.Sentiment.Label),
				Score: a.AIAnalysis.Sentiment.Score,
			},
			Bias: domain.Bias{
				Label:       a.AIAnalysis.Bias.Label,
				Credibility: a.AIAnalysis.Bias.Credibility,
			},
		}
	}
	return article
}

var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", time.DateOnly}

func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
