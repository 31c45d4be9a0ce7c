package fetcher

import (
	"context"
	"fmt"
	"html"
	"math/rand"
	"net/http"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

const defaultTriviaBaseURL = "https://opentdb.com"

// TriviaOption configures the TriviaClient.
type TriviaOption func(*TriviaClient)

// WithTriviaHTTPClient sets a custom HTTP client.
func WithTriviaHTTPClient(hc HTTPClient) TriviaOption {
	return func(c *TriviaClient) {
		c.httpClient = hc
	}
}

// WithTriviaBaseURL overrides the API base URL (useful for testing).
func WithTriviaBaseURL(url string) TriviaOption {
	return func(c *TriviaClient) {
		c.baseURL = url
	}
}

// WithTriviaRand sets the random source used to shuffle answers (useful for
// deterministic tests).
func WithTriviaRand(rng *rand.Rand) TriviaOption {
	return func(c *TriviaClient) {
		c.rng = rng
	}
}

// TriviaClient fetches multiple-choice questions from the Open Trivia DB.
type TriviaClient struct {
	httpClient HTTPClient
	baseURL    string
	rng        *rand.Rand
}

// NewTriviaClient creates a trivia client.
func NewTriviaClient(opts ...TriviaOption) *TriviaClient {
	c := &TriviaClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultTriviaBaseURL,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type triviaResponse struct {
	Results []struct {
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// RandomQuestion fetches one multiple-choice question. HTML entities are
// unescaped and the answer options are shuffled so the correct answer does
// not always lead.
func (c *TriviaClient) RandomQuestion(ctx context.Context) (*models.TriviaQuestion, error) {
	url := c.baseURL + "/api.php?amount=1&type=multiple"
	var resp triviaResponse
	if err := getJSON(ctx, c.httpClient, url, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch trivia: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("trivia response had no results")
	}

	r := resp.Results[0]
	correct := html.UnescapeString(r.CorrectAnswer)
	answers := make([]string, 0, len(r.IncorrectAnswers)+1)
	answers = append(answers, correct)
	for _, a := range r.IncorrectAnswers {
		answers = append(answers, html.UnescapeString(a))
	}
	c.rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})

	return &models.TriviaQuestion{
		Question:      html.UnescapeString(r.Question),
		CorrectAnswer: correct,
		Answers:       answers,
	}, nil
}
