package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

const (
	defaultMeteosourceBaseURL = "https://www.meteosource.com"
	defaultWeatherAPIBaseURL  = "http://api.weatherapi.com"
	defaultExchangeBaseURL    = "https://openexchangerates.org"
)

// WeatherConfig carries the three API keys the composite report needs.
type WeatherConfig struct {
	MeteosourceAPIKey string
	WeatherAPIKey     string
	ExchangeAPIKey    string
	// Place is the Meteosource place ID and WeatherAPI query, e.g. "nairobi".
	Place string
}

// WeatherOption configures the WeatherClient.
type WeatherOption func(*WeatherClient)

// WithWeatherHTTPClient sets a custom HTTP client.
func WithWeatherHTTPClient(hc HTTPClient) WeatherOption {
	return func(c *WeatherClient) {
		c.httpClient = hc
	}
}

// WithMeteosourceBaseURL overrides the Meteosource base URL (useful for testing).
func WithMeteosourceBaseURL(url string) WeatherOption {
	return func(c *WeatherClient) {
		c.meteosourceBaseURL = url
	}
}

// WithWeatherAPIBaseURL overrides the WeatherAPI base URL (useful for testing).
func WithWeatherAPIBaseURL(url string) WeatherOption {
	return func(c *WeatherClient) {
		c.weatherAPIBaseURL = url
	}
}

// WithExchangeBaseURL overrides the exchange-rate base URL (useful for testing).
func WithExchangeBaseURL(url string) WeatherOption {
	return func(c *WeatherClient) {
		c.exchangeBaseURL = url
	}
}

// WeatherClient assembles the morning report from three providers:
// Meteosource (temperature), WeatherAPI (conditions) and OpenExchangeRates
// (USD to KES). Any provider failing fails the whole report.
type WeatherClient struct {
	httpClient         HTTPClient
	meteosourceBaseURL string
	weatherAPIBaseURL  string
	exchangeBaseURL    string
	cfg                WeatherConfig
	loc                *time.Location
	now                func() time.Time
	logger             *slog.Logger
}

// NewWeatherClient creates a composite weather client reporting in loc's
// local time.
func NewWeatherClient(cfg WeatherConfig, loc *time.Location, opts ...WeatherOption) *WeatherClient {
	if cfg.Place == "" {
		cfg.Place = "nairobi"
	}
	c := &WeatherClient{
		httpClient:         &http.Client{Timeout: 15 * time.Second},
		meteosourceBaseURL: defaultMeteosourceBaseURL,
		weatherAPIBaseURL:  defaultWeatherAPIBaseURL,
		exchangeBaseURL:    defaultExchangeBaseURL,
		cfg:                cfg,
		loc:                loc,
		now:                time.Now,
		logger:             slog.Default().With("component", "weather_fetcher"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type meteosourceResponse struct {
	Current struct {
		Temperature float64 `json:"temperature"`
	} `json:"current"`
}

type weatherAPIResponse struct {
	Current struct {
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

type exchangeResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// CurrentReport fetches temperature, conditions and the exchange rate and
// stamps the report with the local time.
func (c *WeatherClient) CurrentReport(ctx context.Context) (*models.WeatherReport, error) {
	meteoURL := fmt.Sprintf("%s/api/v1/free/point?place_id=%s&sections=all&language=en&units=metric&key=%s",
		c.meteosourceBaseURL, c.cfg.Place, c.cfg.MeteosourceAPIKey)
	var meteo meteosourceResponse
	if err := getJSON(ctx, c.httpClient, meteoURL, &meteo); err != nil {
		return nil, fmt.Errorf("failed to fetch temperature: %w", err)
	}

	conditionURL := fmt.Sprintf("%s/v1/current.json?key=%s&q=%s",
		c.weatherAPIBaseURL, c.cfg.WeatherAPIKey, c.cfg.Place)
	var condition weatherAPIResponse
	if err := getJSON(ctx, c.httpClient, conditionURL, &condition); err != nil {
		return nil, fmt.Errorf("failed to fetch conditions: %w", err)
	}

	exchangeURL := fmt.Sprintf("%s/api/latest.json?app_id=%s", c.exchangeBaseURL, c.cfg.ExchangeAPIKey)
	var exchange exchangeResponse
	if err := getJSON(ctx, c.httpClient, exchangeURL, &exchange); err != nil {
		return nil, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}

	return &models.WeatherReport{
		Condition:    condition.Current.Condition.Text,
		TemperatureC: meteo.Current.Temperature,
		USDToKES:     exchange.Rates["KES"],
		Now:          c.now().In(c.loc),
	}, nil
}
