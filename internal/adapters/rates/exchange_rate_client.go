package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://open.er-api.com/v6/latest"

// cacheTTL bounds how stale a cached rate may be. Rates move slowly relative
// to expense entry; an hour is plenty.
const cacheTTL = time.Hour

type cachedRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// ExchangeRateClient resolves conversion rates into EUR from a public
// exchange rate API, with a small in-memory cache per currency.
type ExchangeRateClient struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	cache map[string]cachedRate
}

// Ensure ExchangeRateClient implements the converter port
var _ portsrepo.CurrencyConverter = (*ExchangeRateClient)(nil)

func NewExchangeRateClient(timeout time.Duration) *ExchangeRateClient {
	return &ExchangeRateClient{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
		cache:   make(map[string]cachedRate),
	}
}

type ratesResponse struct {
	Result string                     `json:"result"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

func (c *ExchangeRateClient) RateToEUR(ctx context.Context, currencyCode string) (decimal.Decimal, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if code == "EUR" {
		return decimal.NewFromInt(1), nil
	}

	c.mu.Lock()
	if cached, ok := c.cache[code]; ok && time.Since(cached.fetchedAt) < cacheTTL {
		c.mu.Unlock()
		return cached.rate, nil
	}
	c.mu.Unlock()

	url := fmt.Sprintf("%s/%s", c.baseURL, code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("exchange rate API returned status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode exchange rates: %w", err)
	}
	rate, ok := body.Rates["EUR"]
	if !ok {
		return decimal.Zero, fmt.Errorf("no EUR rate available for %s", code)
	}

	c.mu.Lock()
	c.cache[code] = cachedRate{rate: rate, fetchedAt: time.Now()}
	c.mu.Unlock()
	return rate, nil
}

func (c *ExchangeRateClient) ConvertToEUR(ctx context.Context, amount decimal.Decimal, currencyCode string) (decimal.Decimal, error) {
	rate, err := c.RateToEUR(ctx, currencyCode)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate).Round(2), nil
}
