package fetcher

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

const (
	defaultJokeBaseURL = "https://official-joke-api.appspot.com"
	defaultPunBaseURL  = "https://v2.jokeapi.dev"
	defaultFactBaseURL = "https://uselessfacts.jsph.pl"
)

// JokeOption configures the JokeClient.
type JokeOption func(*JokeClient)

// WithJokeHTTPClient sets a custom HTTP client.
func WithJokeHTTPClient(hc HTTPClient) JokeOption {
	return func(c *JokeClient) {
		c.httpClient = hc
	}
}

// WithJokeBaseURL overrides the API base URL (useful for testing).
func WithJokeBaseURL(url string) JokeOption {
	return func(c *JokeClient) {
		c.baseURL = url
	}
}

// JokeClient fetches setup/punchline jokes.
type JokeClient struct {
	httpClient HTTPClient
	baseURL    string
}

// NewJokeClient creates a joke client.
func NewJokeClient(opts ...JokeOption) *JokeClient {
	c := &JokeClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultJokeBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RandomJoke fetches one random joke.
func (c *JokeClient) RandomJoke(ctx context.Context) (*models.Joke, error) {
	var resp struct {
		Setup     string `json:"setup"`
		Punchline string `json:"punchline"`
	}
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/random_joke", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch joke: %w", err)
	}
	if resp.Setup == "" || resp.Punchline == "" {
		return nil, fmt.Errorf("joke response incomplete")
	}
	return &models.Joke{Setup: resp.Setup, Punchline: resp.Punchline}, nil
}

// PunOption configures the PunClient.
type PunOption func(*PunClient)

// WithPunHTTPClient sets a custom HTTP client.
func WithPunHTTPClient(hc HTTPClient) PunOption {
	return func(c *PunClient) {
		c.httpClient = hc
	}
}

// WithPunBaseURL overrides the API base URL (useful for testing).
func WithPunBaseURL(url string) PunOption {
	return func(c *PunClient) {
		c.baseURL = url
	}
}

// PunClient fetches single-part programming jokes from JokeAPI.
type PunClient struct {
	httpClient HTTPClient
	baseURL    string
}

// NewPunClient creates a pun client.
func NewPunClient(opts ...PunOption) *PunClient {
	c := &PunClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultPunBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RandomPun fetches one single-part programming joke.
func (c *PunClient) RandomPun(ctx context.Context) (*models.Pun, error) {
	var resp struct {
		Type string `json:"type"`
		Joke string `json:"joke"`
	}
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/joke/Programming?type=single", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch pun: %w", err)
	}
	if resp.Type != "single" || resp.Joke == "" {
		return nil, fmt.Errorf("no pun available")
	}
	return &models.Pun{Text: html.UnescapeString(resp.Joke)}, nil
}

// FactOption configures the FactClient.
type FactOption func(*FactClient)

// WithFactHTTPClient sets a custom HTTP client.
func WithFactHTTPClient(hc HTTPClient) FactOption {
	return func(c *FactClient) {
		c.httpClient = hc
	}
}

// WithFactBaseURL overrides the API base URL (useful for testing).
func WithFactBaseURL(url string) FactOption {
	return func(c *FactClient) {
		c.baseURL = url
	}
}

// FactClient fetches random facts.
type FactClient struct {
	httpClient HTTPClient
	baseURL    string
}

// NewFactClient creates a fact client.
func NewFactClient(opts ...FactOption) *FactClient {
	c := &FactClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultFactBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RandomFact fetches one random fact, HTML-unescaped.
func (c *FactClient) RandomFact(ctx context.Context) (*models.Fact, error) {
	var resp struct {
		Text string `json:"text"`
	}
	if err := getJSON(ctx, c.httpClient, c.baseURL+"/random.json?language=en", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch fact: %w", err)
	}
	if resp.Text == "" {
		return nil, fmt.Errorf("fact response was empty")
	}
	return &models.Fact{Text: html.UnescapeString(resp.Text)}, nil
}
