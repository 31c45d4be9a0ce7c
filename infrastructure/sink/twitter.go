// Package sink posts composed content to the Twitter API: tweet creation on
// the v2 endpoint and media upload on the v1.1 endpoint, both signed with
// OAuth1a user context.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

const (
	defaultAPIBaseURL    = "https://api.twitter.com"
	defaultUploadBaseURL = "https://upload.twitter.com"
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIBaseURL overrides the tweet API base URL (useful for testing).
func WithAPIBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.apiBaseURL = url
	}
}

// WithUploadBaseURL overrides the media upload base URL (useful for testing).
func WithUploadBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.uploadBaseURL = url
	}
}

// Client is the Twitter posting client.
type Client struct {
	httpClient    HTTPClient
	apiBaseURL    string
	uploadBaseURL string
	signer        *signer
	logger        *slog.Logger
}

// NewClient creates a posting client with the given account credentials.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // media uploads can be large
		},
		apiBaseURL:    defaultAPIBaseURL,
		uploadBaseURL: defaultUploadBaseURL,
		signer:        newSigner(creds),
		logger:        slog.Default().With("component", "twitter_sink"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createTweetRequest struct {
	Text  string      `json:"text"`
	Reply *tweetReply `json:"reply,omitempty"`
	Media *tweetMedia `json:"media,omitempty"`
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type createTweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type mediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

// CreatePost publishes one tweet, optionally with media and threaded under
// inReplyTo. Returns the created tweet's ID.
func (c *Client) CreatePost(ctx context.Context, text string, mediaIDs []string, inReplyTo string) (string, error) {
	payload := createTweetRequest{Text: text}
	if inReplyTo != "" {
		payload.Reply = &tweetReply{InReplyToTweetID: inReplyTo}
	}
	if len(mediaIDs) > 0 {
		payload.Media = &tweetMedia{MediaIDs: mediaIDs}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tweet: %w", err)
	}

	url := c.apiBaseURL + "/2/tweets"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// JSON bodies do not participate in the OAuth1a signature.
	auth, err := c.signer.authHeader(http.MethodPost, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tweet request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", c.classifyError(resp)
	}

	var parsed createTweetResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse tweet response: %w", err)
	}
	if parsed.Data.ID == "" {
		return "", fmt.Errorf("tweet response missing id")
	}

	c.logger.DebugContext(ctx, "Tweet created", "id", parsed.Data.ID, "reply_to", inReplyTo)
	return parsed.Data.ID, nil
}

// UploadMedia uploads image bytes via the v1.1 chunk-less upload endpoint
// and returns the media ID.
func (c *Client) UploadMedia(ctx context.Context, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("media", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write media bytes: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload form: %w", err)
	}

	url := c.uploadBaseURL + "/1.1/media/upload.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	// Multipart bodies are excluded from the signature base string, same as
	// JSON bodies.
	auth, err := c.signer.authHeader(http.MethodPost, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("media upload failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", c.classifyError(resp)
	}

	var parsed mediaUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	if parsed.MediaIDString == "" {
		return "", fmt.Errorf("upload response missing media id")
	}

	c.logger.DebugContext(ctx, "Media uploaded", "media_id", parsed.MediaIDString, "bytes", len(data))
	return parsed.MediaIDString, nil
}

// classifyError turns a non-2xx response into either a *models.RateLimitError
// (HTTP 429, with the reset hint when the header is present) or a generic
// error carrying a snippet of the response body.
func (c *Client) classifyError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	if resp.StatusCode == http.StatusTooManyRequests {
		rle := &models.RateLimitError{}
		if reset := resp.Header.Get("x-rate-limit-reset"); reset != "" {
			if unix, err := strconv.ParseInt(reset, 10, 64); err == nil {
				rle.ResetAt = time.Unix(unix, 0)
			}
		}
		return rle
	}

	return fmt.Errorf("twitter API error (status %d): %s", resp.StatusCode, string(body))
}
