package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

const defaultWordnikBaseURL = "https://api.wordnik.com/v4"

// detailNotFound is the placeholder for word details that could not be
// fetched; the post is still published with whatever was available.
const detailNotFound = "Not Found"

// WordnikOption configures the WordnikClient.
type WordnikOption func(*WordnikClient)

// WithWordnikHTTPClient sets a custom HTTP client.
func WithWordnikHTTPClient(hc HTTPClient) WordnikOption {
	return func(c *WordnikClient) {
		c.httpClient = hc
	}
}

// WithWordnikBaseURL overrides the API base URL (useful for testing).
func WithWordnikBaseURL(url string) WordnikOption {
	return func(c *WordnikClient) {
		c.baseURL = url
	}
}

// WordnikClient fetches a random dictionary word and its details.
type WordnikClient struct {
	httpClient HTTPClient
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewWordnikClient creates a Wordnik client with the given API key.
func NewWordnikClient(apiKey string, opts ...WordnikOption) *WordnikClient {
	c := &WordnikClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultWordnikBaseURL,
		apiKey:     apiKey,
		logger:     slog.Default().With("component", "wordnik_fetcher"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type wordnikRandomWordResponse struct {
	Word string `json:"word"`
}

type wordnikDefinition struct {
	Text         string `json:"text"`
	PartOfSpeech string `json:"partOfSpeech"`
}

type wordnikPronunciation struct {
	Raw string `json:"raw"`
}

type wordnikRelated struct {
	RelationshipType string   `json:"relationshipType"`
	Words            []string `json:"words"`
}

type wordnikExamplesResponse struct {
	Examples []struct {
		Text string `json:"text"`
	} `json:"examples"`
}

// RandomWord fetches a random word with a dictionary definition, then fills
// in as many details as the API will give. Only the word and its definition
// are mandatory; every other detail degrades to "Not Found".
func (c *WordnikClient) RandomWord(ctx context.Context) (*models.WordEntry, error) {
	randURL := fmt.Sprintf("%s/words.json/randomWord?hasDictionaryDef=true&minLength=5&maxLength=20&api_key=%s",
		c.baseURL, c.apiKey)
	var randResp wordnikRandomWordResponse
	if err := getJSON(ctx, c.httpClient, randURL, &randResp); err != nil {
		return nil, fmt.Errorf("failed to fetch random word: %w", err)
	}
	if randResp.Word == "" {
		return nil, fmt.Errorf("random word response was empty")
	}

	entry := &models.WordEntry{
		Word:          randResp.Word,
		Definition:    detailNotFound,
		PartOfSpeech:  detailNotFound,
		Pronunciation: detailNotFound,
		Synonyms:      detailNotFound,
		Antonyms:      detailNotFound,
		Example:       detailNotFound,
	}
	word := url.PathEscape(randResp.Word)

	var defs []wordnikDefinition
	if err := getJSON(ctx, c.httpClient, c.wordURL(word, "definitions"), &defs); err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch definition", "word", randResp.Word, "error", err)
	} else if len(defs) > 0 {
		if defs[0].Text != "" {
			entry.Definition = defs[0].Text
		}
		if defs[0].PartOfSpeech != "" {
			entry.PartOfSpeech = defs[0].PartOfSpeech
		}
	}

	var prons []wordnikPronunciation
	if err := getJSON(ctx, c.httpClient, c.wordURL(word, "pronunciations"), &prons); err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch pronunciation", "word", randResp.Word, "error", err)
	} else if len(prons) > 0 && prons[0].Raw != "" {
		entry.Pronunciation = prons[0].Raw
	}

	var related []wordnikRelated
	if err := getJSON(ctx, c.httpClient, c.wordURL(word, "relatedWords"), &related); err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch related words", "word", randResp.Word, "error", err)
	} else {
		for _, rel := range related {
			switch rel.RelationshipType {
			case "synonym":
				entry.Synonyms = strings.Join(rel.Words, ", ")
			case "antonym":
				entry.Antonyms = strings.Join(rel.Words, ", ")
			}
		}
	}

	var examples wordnikExamplesResponse
	if err := getJSON(ctx, c.httpClient, c.wordURL(word, "examples"), &examples); err != nil {
		c.logger.WarnContext(ctx, "Failed to fetch examples", "word", randResp.Word, "error", err)
	} else if len(examples.Examples) > 0 && examples.Examples[0].Text != "" {
		entry.Example = examples.Examples[0].Text
	}

	return entry, nil
}

func (c *WordnikClient) wordURL(word, resource string) string {
	return fmt.Sprintf("%s/word.json/%s/%s?api_key=%s", c.baseURL, word, resource, c.apiKey)
}
