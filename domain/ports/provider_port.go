package ports

import (
	"context"

	"github.com/Manasess896/X-bot/domain/models"
)

// Content providers are opaque external collaborators, one per kind. A
// provider error means "nothing to publish this cycle" to the action, never
// a fatal condition.

// ScreenProvider serves movies and TV series.
type ScreenProvider interface {
	TrendingMovies(ctx context.Context) ([]models.Screenwork, error)
	TrendingSeries(ctx context.Context) ([]models.Screenwork, error)
	// GenreNames maps TMDb genre IDs to display names.
	GenreNames(ctx context.Context) (map[int]string, error)
	// TrailerURL returns a YouTube watch URL for the work's trailer, or ""
	// when none exists.
	TrailerURL(ctx context.Context, id int, kind models.Kind) (string, error)
}

// SongProvider serves tracks from the configured playlist.
type SongProvider interface {
	PlaylistTracks(ctx context.Context) ([]models.Song, error)
}

// WordProvider serves a random dictionary word with details.
type WordProvider interface {
	RandomWord(ctx context.Context) (*models.WordEntry, error)
}

// FactProvider serves a random fact.
type FactProvider interface {
	RandomFact(ctx context.Context) (*models.Fact, error)
}

// JokeProvider serves a random setup/punchline joke.
type JokeProvider interface {
	RandomJoke(ctx context.Context) (*models.Joke, error)
}

// PunProvider serves a random one-liner.
type PunProvider interface {
	RandomPun(ctx context.Context) (*models.Pun, error)
}

// TriviaProvider serves one multiple-choice question with shuffled answers.
type TriviaProvider interface {
	RandomQuestion(ctx context.Context) (*models.TriviaQuestion, error)
}

// WeatherProvider assembles the morning weather report.
type WeatherProvider interface {
	CurrentReport(ctx context.Context) (*models.WeatherReport, error)
}

// CountryProvider serves country profiles.
type CountryProvider interface {
	ListNames(ctx context.Context) ([]string, error)
	Info(ctx context.Context, name string) (*models.Country, error)
}
