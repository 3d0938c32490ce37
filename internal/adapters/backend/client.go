package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/ports"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/version"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

const codePlaceholder = "{code}"

var (
	_ ports.CountryDirectory   = Client{}
	_ ports.IntelligenceSource = Client{}
)

type API struct {
	BaseURL          string
	CountriesPath    string
	IntelligencePath string
	PingPath         string
}

func DefaultAPI(baseURL string) API {
	return API{
		BaseURL:          baseURL,
		CountriesPath:    "/countries",
		IntelligencePath: "/intelligence/{code}",
		PingPath:         "/ping",
	}
}

// Client talks to the BrieflyGlobal backend. RequestTimeout bounds the country list call
// when the caller set no deadline; intelligence and ping budgets belong to the caller.
type Client struct {
	API            API
	HTTPClient     *http.Client
	Limiter        *rate.Limiter
	RequestTimeout time.Duration
	Log            logrus.FieldLogger
}

// NewLimiter paces outbound requests to requestsPerMinute. Zero or less disables pacing.
func NewLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	burst := max(1, requestsPerMinute/60)
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}

func (c Client) ListCountries(ctx context.Context) ([]byte, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	body, err := c.get(requestCtx, c.API.CountriesPath)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return body, nil
}

func (c Client) FetchIntelligence(ctx context.Context, countryCode string) ([]byte, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return nil, errors.New("country code is required")
	}

	path := c.API.IntelligencePath
	if strings.Contains(path, codePlaceholder) {
		path = strings.ReplaceAll(path, codePlaceholder, url.PathEscape(code))
	} else {
		path = strings.TrimSuffix(path, "/") + "/" + url.PathEscape(code)
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch intelligence %s: %w", code, err)
	}
	return body, nil
}

// Ping treats any 2xx answer as awake.
func (c Client) Ping(ctx context.Context) error {
	if _, err := c.get(ctx, c.API.PingPath); err != nil {
		return fmt.Errorf("ping backend: %w", err)
	}
	return nil
}

func (c Client) get(ctx context.Context, path string) ([]byte, error) {
	endpoint, err := buildAPIURL(c.API.BaseURL, path)
	if err != nil {
		return nil, err
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for request slot: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "briefly/"+version.Version)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetchNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrFetchNetwork, err)
	}

	c.log().WithFields(logrus.Fields{
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
		"duration":   time.Since(start).Round(time.Millisecond),
	}).Debug("backend request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.ServerError{
			Status:    resp.StatusCode,
			Detail:    errorDetail(body),
			RequestID: requestID,
		}
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", domain.ErrFetchShapeMismatch, maxResponseBytes)
	}

	return body, nil
}

// errorDetail extracts FastAPI's {"detail": ...} message when the body carries one.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return detail
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload.Detail); err != nil {
		return ""
	}
	return compact.String()
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) log() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	return logrus.StandardLogger()
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
