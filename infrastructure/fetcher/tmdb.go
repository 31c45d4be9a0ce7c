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
	defaultTMDBBaseURL  = "https://api.themoviedb.org/3"
	defaultTMDBImageURL = "https://image.tmdb.org/t/p/original"
)

// TMDBOption configures the TMDBClient.
type TMDBOption func(*TMDBClient)

// WithTMDBHTTPClient sets a custom HTTP client.
func WithTMDBHTTPClient(hc HTTPClient) TMDBOption {
	return func(c *TMDBClient) {
		c.httpClient = hc
	}
}

// WithTMDBBaseURL overrides the API base URL (useful for testing).
func WithTMDBBaseURL(url string) TMDBOption {
	return func(c *TMDBClient) {
		c.baseURL = url
	}
}

// WithTMDBImageBaseURL overrides the poster image base URL.
func WithTMDBImageBaseURL(url string) TMDBOption {
	return func(c *TMDBClient) {
		c.imageBaseURL = url
	}
}

// TMDBClient fetches trending movies and TV series from TMDb.
type TMDBClient struct {
	httpClient   HTTPClient
	baseURL      string
	imageBaseURL string
	apiKey       string
	logger       *slog.Logger
}

// NewTMDBClient creates a TMDb client with the given API key.
func NewTMDBClient(apiKey string, opts ...TMDBOption) *TMDBClient {
	c := &TMDBClient{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		baseURL:      defaultTMDBBaseURL,
		imageBaseURL: defaultTMDBImageURL,
		apiKey:       apiKey,
		logger:       slog.Default().With("component", "tmdb_fetcher"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tmdbListResponse struct {
	Results []struct {
		ID           int     `json:"id"`
		Title        string  `json:"title"`
		Name         string  `json:"name"`
		VoteAverage  float64 `json:"vote_average"`
		GenreIDs     []int   `json:"genre_ids"`
		ReleaseDate  string  `json:"release_date"`
		FirstAirDate string  `json:"first_air_date"`
		Overview     string  `json:"overview"`
		PosterPath   string  `json:"poster_path"`
	} `json:"results"`
}

type tmdbGenreResponse struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type tmdbDetailResponse struct {
	Videos struct {
		Results []struct {
			Key  string `json:"key"`
			Site string `json:"site"`
			Type string `json:"type"`
		} `json:"results"`
	} `json:"videos"`
}

// TrendingMovies returns the movies trending today. When the trending
// endpoint fails it falls back to the top-rated list rather than skipping
// the cycle.
func (c *TMDBClient) TrendingMovies(ctx context.Context) ([]models.Screenwork, error) {
	url := fmt.Sprintf("%s/trending/movie/day?api_key=%s", c.baseURL, c.apiKey)
	var resp tmdbListResponse
	if err := getJSON(ctx, c.httpClient, url, &resp); err != nil {
		c.logger.WarnContext(ctx, "Trending endpoint failed, switching to top-rated movies", "error", err)
		return c.topRatedMovies(ctx)
	}
	return c.toScreenworks(resp, models.KindMovie), nil
}

func (c *TMDBClient) topRatedMovies(ctx context.Context) ([]models.Screenwork, error) {
	url := fmt.Sprintf("%s/movie/top_rated?api_key=%s", c.baseURL, c.apiKey)
	var resp tmdbListResponse
	if err := getJSON(ctx, c.httpClient, url, &resp); err != nil {
		return nil, err
	}
	return c.toScreenworks(resp, models.KindMovie), nil
}

// TrendingSeries returns the TV series trending today.
func (c *TMDBClient) TrendingSeries(ctx context.Context) ([]models.Screenwork, error) {
	url := fmt.Sprintf("%s/trending/tv/day?api_key=%s", c.baseURL, c.apiKey)
	var resp tmdbListResponse
	if err := getJSON(ctx, c.httpClient, url, &resp); err != nil {
		return nil, err
	}
	return c.toScreenworks(resp, models.KindSeries), nil
}

// GenreNames maps TMDb genre IDs to display names for movies.
func (c *TMDBClient) GenreNames(ctx context.Context) (map[int]string, error) {
	url := fmt.Sprintf("%s/genre/movie/list?api_key=%s", c.baseURL, c.apiKey)
	var resp tmdbGenreResponse
	if err := getJSON(ctx, c.httpClient, url, &resp); err != nil {
		return nil, err
	}
	genres := make(map[int]string, len(resp.Genres))
	for _, g := range resp.Genres {
		genres[g.ID] = g.Name
	}
	return genres, nil
}

// TrailerURL looks up the work's videos and returns a YouTube watch URL for
// the first trailer, or "" when the work has none.
func (c *TMDBClient) TrailerURL(ctx context.Context, id int, kind models.Kind) (string, error) {
	path := "movie"
	if kind == models.KindSeries {
		path = "tv"
	}
	url := fmt.Sprintf("%s/%s/%d?api_key=%s&append_to_response=videos", c.baseURL, path, id, c.apiKey)
	var resp tmdbDetailResponse
	if err := getJSON(ctx, c.httpClient, url, &resp); err != nil {
		return "", err
	}
	for _, v := range resp.Videos.Results {
		if v.Type == "Trailer" && v.Site == "YouTube" {
			return "https://www.youtube.com/watch?v=" + v.Key, nil
		}
	}
	return "", nil
}

func (c *TMDBClient) toScreenworks(resp tmdbListResponse, kind models.Kind) []models.Screenwork {
	works := make([]models.Screenwork, 0, len(resp.Results))
	for _, r := range resp.Results {
		title := r.Title
		release := r.ReleaseDate
		if kind == models.KindSeries {
			title = r.Name
			release = r.FirstAirDate
		}
		if title == "" {
			continue
		}
		posterURL := ""
		if r.PosterPath != "" {
			posterURL = c.imageBaseURL + r.PosterPath
		}
		works = append(works, models.Screenwork{
			TMDBID:      r.ID,
			Kind:        kind,
			Title:       title,
			Rating:      r.VoteAverage,
			GenreIDs:    r.GenreIDs,
			ReleaseDate: release,
			Plot:        r.Overview,
			PosterURL:   posterURL,
		})
	}
	return works
}
