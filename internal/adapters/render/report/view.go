package report

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/application"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now         time.Time
	MaxArticles int
	Indicators  []application.IndicatorSpec
}

func (o RenderOptions) indicators() []application.IndicatorSpec {
	if len(o.Indicators) == 0 {
		return application.DefaultIndicators()
	}
	return o.Indicators
}

var currencyOrder = []string{"USD", "EUR", "GBP", "JPY", "CNY"}

func reportView(record domain.IntelligenceRecord, opts RenderOptions, s styles) string {
	lines := []string{
		s.country.Render(fmt.Sprintf("%s (%s)", record.CountryName, record.CountryCode)),
		s.header.Render(updatedLine(record.LastUpdated, opts.Now)),
	}

	lines = append(lines, s.section.Render(countryInfoSection(record, s)))
	lines = append(lines, s.section.Render(indicatorSection(record, opts, s)))
	lines = append(lines, s.section.Render(currencySection(record.Currency, s)))
	lines = append(lines, s.section.Render(newsSection(record, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func updatedLine(lastUpdated, now time.Time) string {
	if lastUpdated.IsZero() {
		return "updated: unknown"
	}
	line := "updated: " + lastUpdated.UTC().Format("2006-01-02 15:04 MST")
	if !now.IsZero() && now.After(lastUpdated) {
		line += fmt.Sprintf(" (%s ago)", formatAge(now.Sub(lastUpdated)))
	}
	return line
}

func formatAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return "moments"
	case age < time.Hour:
		return pluralize(int(age.Minutes()), "minute")
	case age < 48*time.Hour:
		return pluralize(int(age.Hours()), "hour")
	default:
		return pluralize(int(age.Hours()/24), "day")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func countryInfoSection(record domain.IntelligenceRecord, s styles) string {
	lines := []string{s.sectionTitle.Render("Country")}
	if !record.DataAvailability.CountryInfo {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No country details available."))...)
	}

	info := record.CountryInfo
	for _, field := range []struct{ key, value string }{
		{"capital", info.Capital},
		{"region", info.Region},
		{"income level", info.IncomeLevel},
	} {
		if field.value == "" {
			continue
		}
		lines = append(lines, keyValue(field.key, field.value, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func indicatorSection(record domain.IntelligenceRecord, opts RenderOptions, s styles) string {
	lines := []string{s.sectionTitle.Render("Economy")}
	if !record.DataAvailability.Economic {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No economic indicators available."))...)
	}

	known := make(map[string]struct{})
	for _, spec := range opts.indicators() {
		known[spec.Key] = struct{}{}
		indicator, ok := record.Indicator(spec.Key)
		if !ok {
			continue
		}
		lines = append(lines, indicatorLine(spec.Label, spec.Format.Display(indicator.Value), indicator.Year, s))
	}

	extra := make([]string, 0)
	for key := range record.EconomicIndicators {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		indicator := record.EconomicIndicators[key]
		lines = append(lines, indicatorLine(humanize(key), fmt.Sprintf("%g", indicator.Value), indicator.Year, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func indicatorLine(label, value, year string, s styles) string {
	line := keyValue(label, value, s)
	if year != "" {
		line += " " + s.meta.Render(fmt.Sprintf("(%s)", year))
	}
	return line
}

func humanize(key string) string {
	words := strings.Split(strings.ToLower(key), "_")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

func currencySection(currency domain.CurrencyData, s styles) string {
	lines := []string{s.sectionTitle.Render("Currency")}
	if currency.BaseCurrency == "" || len(currency.Rates) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No exchange rates available."))...)
	}

	lines = append(lines, keyValue("base", currency.BaseCurrency, s))

	codes := make([]string, 0, len(currency.Rates))
	seen := make(map[string]struct{}, len(currency.Rates))
	for _, code := range currencyOrder {
		if _, ok := currency.Rates[code]; ok {
			codes = append(codes, code)
			seen[code] = struct{}{}
		}
	}
	rest := make([]string, 0)
	for code := range currency.Rates {
		if _, ok := seen[code]; !ok {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	codes = append(codes, rest...)

	for _, code := range codes {
		if code == currency.BaseCurrency {
			continue
		}
		lines = append(lines, keyValue("1 "+currency.BaseCurrency, fmt.Sprintf("%.4f %s", currency.Rates[code], code), s))
	}
	if !currency.LastUpdated.IsZero() {
		lines = append(lines, s.meta.Render("as of "+currency.LastUpdated.Format(time.DateOnly)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func newsSection(record domain.IntelligenceRecord, opts RenderOptions, s styles) string {
	lines := []string{s.sectionTitle.Render(fmt.Sprintf("News (%d articles)", record.TotalArticles))}
	if len(record.Articles) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render("No recent news found."))...)
	}

	tally := application.TallySentiment(record.Articles)
	lines = append(lines, sentimentLine(tally, s))

	articles := record.Articles
	if opts.MaxArticles > 0 && len(articles) > opts.MaxArticles {
		articles = articles[:opts.MaxArticles]
	}
	for _, article := range articles {
		lines = append(lines, s.section.Render(articleBlock(article, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func articleBlock(article domain.Article, s styles) string {
	heading := s.title.Render(article.Title)
	meta := article.Source
	if !article.PublishedAt.IsZero() {
		meta += ", " + article.PublishedAt.UTC().Format("02 Jan 2006 15:04")
	}
	lines := []string{heading, s.meta.Render(meta)}

	if article.Analysis == nil {
		if article.Description != "" {
			lines = append(lines, s.detail.Render(article.Description))
		}
	} else {
		analysis := article.Analysis
		if analysis.SummaryTweet != "" {
			lines = append(lines, s.detail.Render(analysis.SummaryTweet))
		}
		for _, bullet := range analysis.SummaryBullets {
			lines = append(lines, s.detail.Render("  * "+bullet))
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render("sentiment: "),
			sentimentStyle(analysis.Sentiment.Label, s).Render(fmt.Sprintf("%s (%+.2f)", analysis.Sentiment.Label, analysis.Sentiment.Score)),
			s.key.Render("  bias: "),
			s.detail.Render(analysis.Bias.Label),
			s.key.Render("  credibility: "),
			renderProgressBar(analysis.Bias.Credibility*100, 10, s),
			s.meta.Render(fmt.Sprintf(" %.0f%%", analysis.Bias.Credibility*100)),
		))
	}
	if article.URL != "" {
		lines = append(lines, s.meta.Render(article.URL))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sentimentLine(tally application.SentimentTally, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("sentiment: "),
		s.positive.Render(fmt.Sprintf("%d positive", tally.Positive)),
		s.meta.Render(" / "),
		s.negative.Render(fmt.Sprintf("%d negative", tally.Negative)),
		s.meta.Render(" / "),
		s.neutral.Render(fmt.Sprintf("%d neutral", tally.Neutral)),
	)
}

func sentimentStyle(label string, s styles) lipgloss.Style {
	switch label {
	case domain.SentimentPositive:
		return s.positive
	case domain.SentimentNegative:
		return s.negative
	default:
		return s.neutral
	}
}

func comparisonView(view application.ComparisonView, _ RenderOptions, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("%s vs %s", view.NameA, view.NameB)),
		s.header.Render(fmt.Sprintf("%s / %s, indicators: %d", view.CodeA, view.CodeB, len(view.Rows))),
	}

	rows := []string{s.sectionTitle.Render("Economy")}
	if len(view.Rows) == 0 {
		rows = append(rows, s.empty.Render("No indicators reported by both countries."))
	}
	labelWidth, valueWidth := columnWidths(view.Rows)
	for _, row := range view.Rows {
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Width(labelWidth+2).Render(row.Indicator.Label),
			verdictStyle(row.VerdictA, s).Width(valueWidth+2).Render(row.DisplayA),
			s.meta.Width(8).Render(row.DeltaDisplay()),
			verdictStyle(row.VerdictB, s).Render(row.DisplayB),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	news := []string{
		s.sectionTitle.Render("News sentiment"),
		lipgloss.JoinHorizontal(lipgloss.Top, s.country.Render(view.CodeA+" "), sentimentLine(view.SentimentA, s)),
		lipgloss.JoinHorizontal(lipgloss.Top, s.country.Render(view.CodeB+" "), sentimentLine(view.SentimentB, s)),
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, news...)))

	insights := []string{
		s.sectionTitle.Render("Quick insights"),
		s.detail.Render(fmt.Sprintf("%s's economy is %s of %s's", view.NameA, view.Insights.GDP.Display(), view.NameB)),
		s.detail.Render(fmt.Sprintf("%s has %s the population of %s", view.NameA, view.Insights.Population.Display(), view.NameB)),
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, insights...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func columnWidths(rows []application.ComparisonRow) (int, int) {
	labelWidth, valueWidth := 0, 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Indicator.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.DisplayA))
	}
	return labelWidth, valueWidth
}

func verdictStyle(verdict application.Verdict, s styles) lipgloss.Style {
	switch verdict {
	case application.VerdictBetter:
		return s.better
	case application.VerdictWorse:
		return s.worse
	default:
		return s.equal
	}
}

func countriesView(countries []domain.Country, fallback bool, s styles) string {
	lines := []string{
		s.title.Render("Countries"),
		s.header.Render(fmt.Sprintf("countries: %d", len(countries))),
	}
	if fallback {
		lines = append(lines, s.warning.Render("Backend unavailable, showing the built-in fallback list."))
	}
	if len(countries) == 0 {
		lines = append(lines, s.empty.Render("No countries available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([]string, 0, len(countries))
	for _, country := range countries {
		rows = append(rows, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.country.Width(5).Render(country.Code),
			s.detail.Width(28).Render(country.Name),
			s.meta.Render(fmt.Sprintf("%7.2f, %6.2f  %s", country.Centroid.Longitude, country.Centroid.Latitude, country.SizeClass)),
		))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func keyValue(key, value string, s styles) string {
	return s.key.Render(key+": ") + s.detail.Render(value)
}

// ProgressBar draws a filled bar for percent in [0, 100].
func ProgressBar(percent float64, width int) string {
	return renderProgressBar(percent, width, newStyles())
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
