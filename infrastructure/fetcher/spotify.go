package fetcher

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Manasess896/X-bot/domain/models"
)

const (
	defaultSpotifyAPIBaseURL      = "https://api.spotify.com"
	defaultSpotifyAccountsBaseURL = "https://accounts.spotify.com"
)

// SpotifyOption configures the SpotifyClient.
type SpotifyOption func(*SpotifyClient)

// WithSpotifyHTTPClient sets a custom HTTP client.
func WithSpotifyHTTPClient(hc HTTPClient) SpotifyOption {
	return func(c *SpotifyClient) {
		c.httpClient = hc
	}
}

// WithSpotifyAPIBaseURL overrides the API base URL (useful for testing).
func WithSpotifyAPIBaseURL(url string) SpotifyOption {
	return func(c *SpotifyClient) {
		c.apiBaseURL = url
	}
}

// WithSpotifyAccountsBaseURL overrides the token endpoint base URL.
func WithSpotifyAccountsBaseURL(url string) SpotifyOption {
	return func(c *SpotifyClient) {
		c.accountsBaseURL = url
	}
}

// SpotifyClient fetches tracks from a playlist using the client-credentials
// flow. Tokens are cached until shortly before expiry.
type SpotifyClient struct {
	httpClient      HTTPClient
	apiBaseURL      string
	accountsBaseURL string
	clientID        string
	clientSecret    string
	playlistID      string
	logger          *slog.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewSpotifyClient creates a Spotify client for the given app credentials
// and playlist.
func NewSpotifyClient(clientID, clientSecret, playlistID string, opts ...SpotifyOption) *SpotifyClient {
	c := &SpotifyClient{
		httpClient:      &http.Client{Timeout: 15 * time.Second},
		apiBaseURL:      defaultSpotifyAPIBaseURL,
		accountsBaseURL: defaultSpotifyAccountsBaseURL,
		clientID:        clientID,
		clientSecret:    clientSecret,
		playlistID:      playlistID,
		logger:          slog.Default().With("component", "spotify_fetcher"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type spotifyTracksResponse struct {
	Items []struct {
		Track struct {
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name        string `json:"name"`
				ReleaseDate string `json:"release_date"`
				Images      []struct {
					URL string `json:"url"`
				} `json:"images"`
			} `json:"album"`
			ExternalURLs struct {
				Spotify string `json:"spotify"`
			} `json:"external_urls"`
		} `json:"track"`
	} `json:"items"`
}

// PlaylistTracks returns up to 50 tracks from the configured playlist.
func (c *SpotifyClient) PlaylistTracks(ctx context.Context) ([]models.Song, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/v1/playlists/%s/tracks?limit=50", c.apiBaseURL, c.playlistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("spotify API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed spotifyTracksResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse tracks response: %w", err)
	}

	songs := make([]models.Song, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		t := item.Track
		if t.Name == "" {
			continue
		}
		artists := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			artists = append(artists, a.Name)
		}
		coverURL := ""
		if len(t.Album.Images) > 0 {
			coverURL = t.Album.Images[0].URL
		}
		songs = append(songs, models.Song{
			Title:       t.Name,
			Artists:     artists,
			Album:       t.Album.Name,
			ReleaseDate: t.Album.ReleaseDate,
			CoverURL:    coverURL,
			TrackURL:    t.ExternalURLs.Spotify,
		})
	}
	return songs, nil
}

// token returns a cached client-credentials token, refreshing it when it is
// within a minute of expiry.
func (c *SpotifyClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.accountsBaseURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("spotify token error (status %d)", resp.StatusCode)
	}

	var parsed spotifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.accessToken = parsed.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(parsed.ExpiresIn) * time.Second)
	return c.accessToken, nil
}
