package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL     = "https://open.er-api.com/v6/latest"
	defaultHTTPTimeout = 10 * time.Second
)

// ErrRateUnavailable is returned when the response carries no usable rate
var ErrRateUnavailable = errors.New("conversion rate unavailable")

// Client fetches exchange rates from an open.er-api.com compatible endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// ratesResponse represents the API payload; only one scalar from Rates is consumed
type ratesResponse struct {
	Result    string             `json:"result"`
	BaseCode  string             `json:"base_code"`
	Rates     map[string]float64 `json:"rates"`
	ErrorType string             `json:"error-type,omitempty"`
}

// NewClient creates a new rate client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchRate returns how many units of target one unit of base buys
func (c *Client) FetchRate(ctx context.Context, base, target string) (float64, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	target = strings.ToUpper(strings.TrimSpace(target))
	url := fmt.Sprintf("%s/%s", c.baseURL, base)

	c.logger.Debug("Fetching conversion rate",
		zap.String("url", url),
		zap.String("base", base),
		zap.String("target", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rates API returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to parse rates response: %w", err)
	}

	if payload.Result != "" && payload.Result != "success" {
		return 0, fmt.Errorf("%w: API result %q %s", ErrRateUnavailable, payload.Result, payload.ErrorType)
	}

	rate, ok := payload.Rates[target]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("%w: no %s rate for base %s", ErrRateUnavailable, target, base)
	}

	return rate, nil
}
