package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

const defaultCountriesBaseURL = "https://restcountries.com"

// CountryOption configures the CountryClient.
type CountryOption func(*CountryClient)

// WithCountryHTTPClient sets a custom HTTP client.
func WithCountryHTTPClient(hc HTTPClient) CountryOption {
	return func(c *CountryClient) {
		c.httpClient = hc
	}
}

// WithCountryBaseURL overrides the API base URL (useful for testing).
func WithCountryBaseURL(url string) CountryOption {
	return func(c *CountryClient) {
		c.baseURL = url
	}
}

// CountryClient fetches country profiles from the REST Countries API.
type CountryClient struct {
	httpClient HTTPClient
	baseURL    string
}

// NewCountryClient creates a REST Countries client.
func NewCountryClient(opts ...CountryOption) *CountryClient {
	c := &CountryClient{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    defaultCountriesBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type countryRecord struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Flags struct {
		PNG string `json:"png"`
	} `json:"flags"`
	Population int64             `json:"population"`
	Languages  map[string]string `json:"languages"`
	Timezones  []string          `json:"timezones"`
	Capital    []string          `json:"capital"`
	Continents []string          `json:"continents"`
	Subregion  string            `json:"subregion"`
	Currencies map[string]struct {
		Name string `json:"name"`
	} `json:"currencies"`
	Area float64 `json:"area"`
	IDD  struct {
		Root     string   `json:"root"`
		Suffixes []string `json:"suffixes"`
	} `json:"idd"`
}

// ListNames returns the common names of all countries.
func (c *CountryClient) ListNames(ctx context.Context) ([]string, error) {
	var records []countryRecord
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/v3.1/all?fields=name", &records); err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		if r.Name.Common != "" {
			names = append(names, r.Name.Common)
		}
	}
	return names, nil
}

// Info fetches one country's profile by common name.
func (c *CountryClient) Info(ctx context.Context, name string) (*models.Country, error) {
	var records []countryRecord
	reqURL := c.baseURL + "/v3.1/name/" + url.PathEscape(name)
	if err := getJSON(ctx, c.httpClient, reqURL, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch country %q: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no country found for %q", name)
	}

	r := records[0]
	languages := make([]string, 0, len(r.Languages))
	for _, lang := range r.Languages {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	currencies := make([]string, 0, len(r.Currencies))
	for _, cur := range r.Currencies {
		currencies = append(currencies, cur.Name)
	}
	sort.Strings(currencies)

	country := &models.Country{
		Name:       r.Name.Common,
		Population: r.Population,
		Languages:  strings.Join(languages, ", "),
		Timezones:  strings.Join(r.Timezones, ", "),
		Subregion:  r.Subregion,
		Currency:   strings.Join(currencies, ", "),
		AreaKm2:    r.Area,
		FlagURL:    r.Flags.PNG,
	}
	if len(r.Capital) > 0 {
		country.Capital = r.Capital[0]
	}
	if len(r.Continents) > 0 {
		country.Continent = r.Continents[0]
	}
	if r.IDD.Root != "" {
		country.PhoneCode = r.IDD.Root
		if len(r.IDD.Suffixes) == 1 {
			country.PhoneCode += r.IDD.Suffixes[0]
		}
	}
	return country, nil
}
