package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/Manasess896/X-bot/config"
	"github.com/Manasess896/X-bot/domain/models"
	"github.com/Manasess896/X-bot/domain/ports"
	"github.com/Manasess896/X-bot/infrastructure/dedupe"
	"github.com/Manasess896/X-bot/infrastructure/fetcher"
	"github.com/Manasess896/X-bot/infrastructure/imagefetcher"
	"github.com/Manasess896/X-bot/infrastructure/messenger"
	"github.com/Manasess896/X-bot/infrastructure/sink"
	"github.com/Manasess896/X-bot/infrastructure/telegram"
	"github.com/Manasess896/X-bot/interfaces/api"
	"github.com/Manasess896/X-bot/pkg/scheduler"
	"github.com/Manasess896/X-bot/use_cases"
)

// Container - Dependency Injection Container
type Container struct {
	Config *config.Config

	// External connections
	NATSConn *nats.Conn

	// Ports (Interfaces)
	Sink      ports.Sink
	Images    ports.ImageFetcher
	Dedupe    ports.DedupeStore
	Messenger ports.Messenger
	Notifier  ports.Notifier

	// Use Cases
	Actions   *use_cases.Actions
	Publisher *use_cases.Publisher

	// Serving
	Scheduler *scheduler.Scheduler
	App       *fiber.App

	// Internal
	location   *time.Location
	redisStore *dedupe.RedisStore
	logger     *slog.Logger
}

func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		logger: slog.Default().With("component", "container"),
	}

	var err error

	// ─────────────────────────────────────────────────────────────────────────────
	// 1. External Connections
	// ─────────────────────────────────────────────────────────────────────────────

	c.location, err = time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.App.Timezone, err)
	}

	// NATS Connection (optional; without it events go to the noop messenger)
	if cfg.NATS.URL != "" {
		c.NATSConn, err = nats.Connect(cfg.NATS.URL,
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		c.Messenger = messenger.NewNATSPublisher(c.NATSConn)
		c.logger.Info("Connected to NATS", "url", cfg.NATS.URL)
	} else {
		c.Messenger = messenger.NewNoop()
		c.logger.Info("NATS URL not set, lifecycle events disabled")
	}

	// Dedupe store backend
	switch cfg.Dedupe.Backend {
	case "redis":
		c.redisStore, err = dedupe.NewRedisStore(context.Background(), cfg.Dedupe.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Dedupe = c.redisStore
		c.logger.Info("Redis dedupe store created", "addr", cfg.Dedupe.RedisAddr)
	default:
		fileStore, err := dedupe.NewFileStore(cfg.Dedupe.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to create file dedupe store: %w", err)
		}
		c.Dedupe = fileStore
		c.logger.Info("File dedupe store created", "dir", cfg.Dedupe.Dir)
	}

	// ─────────────────────────────────────────────────────────────────────────────
	// 2. Infrastructure Layer
	// ─────────────────────────────────────────────────────────────────────────────

	c.Sink = sink.NewClient(sink.Credentials{
		APIKey:            cfg.Twitter.APIKey,
		APIKeySecret:      cfg.Twitter.APIKeySecret,
		AccessToken:       cfg.Twitter.AccessToken,
		AccessTokenSecret: cfg.Twitter.AccessTokenSecret,
	})
	c.logger.Info("Twitter sink created")

	c.Images = imagefetcher.New()

	c.Notifier = telegram.NewNotifier(cfg.Alert)
	if c.Notifier.IsEnabled() {
		c.logger.Info("Telegram notifier enabled")
	} else {
		c.logger.Info("Telegram notifier disabled")
	}

	// ─────────────────────────────────────────────────────────────────────────────
	// 3. Use Cases Layer
	// ─────────────────────────────────────────────────────────────────────────────

	c.Publisher = use_cases.NewPublisher(c.Sink, c.Images)

	deps := use_cases.ActionDeps{
		Dedupe:    c.Dedupe,
		Publisher: c.Publisher,
		Messenger: c.Messenger,
		Notifier:  c.Notifier,
	}
	if cfg.Providers.TMDBAPIKey != "" {
		deps.Screen = fetcher.NewTMDBClient(cfg.Providers.TMDBAPIKey)
	}
	if cfg.Providers.SpotifyClientID != "" && cfg.Providers.SpotifyClientSecret != "" {
		deps.Songs = fetcher.NewSpotifyClient(
			cfg.Providers.SpotifyClientID,
			cfg.Providers.SpotifyClientSecret,
			cfg.Providers.SpotifyPlaylistID,
		)
	}
	if cfg.Providers.WordnikAPIKey != "" {
		deps.Words = fetcher.NewWordnikClient(cfg.Providers.WordnikAPIKey)
	}
	deps.Facts = fetcher.NewFactClient()
	deps.Jokes = fetcher.NewJokeClient()
	deps.Puns = fetcher.NewPunClient()
	deps.Trivia = fetcher.NewTriviaClient()
	deps.Countries = fetcher.NewCountryClient()
	if cfg.Providers.MeteosourceAPIKey != "" && cfg.Providers.WeatherAPIKey != "" && cfg.Providers.ExchangeAPIKey != "" {
		deps.Weather = fetcher.NewWeatherClient(fetcher.WeatherConfig{
			MeteosourceAPIKey: cfg.Providers.MeteosourceAPIKey,
			WeatherAPIKey:     cfg.Providers.WeatherAPIKey,
			ExchangeAPIKey:    cfg.Providers.ExchangeAPIKey,
		}, c.location)
	}

	c.Actions = use_cases.NewActions(deps)
	c.logger.Info("Actions created")

	// ─────────────────────────────────────────────────────────────────────────────
	// 4. Scheduler and API
	// ─────────────────────────────────────────────────────────────────────────────

	c.Scheduler = scheduler.New(c.location)
	if err := c.registerJobs(deps); err != nil {
		return nil, err
	}

	c.App = api.NewApp(c.Scheduler)

	c.logger.Info("Container initialized successfully")
	return c, nil
}

// registerJobs wires every configured action onto its fixed schedule. An
// action whose provider is missing its API key is skipped and logged.
func (c *Container) registerJobs(deps use_cases.ActionDeps) error {
	cron := func(name string, kind models.Kind, expr string, fn func(ctx context.Context) error) error {
		return c.Scheduler.AddCronJob(name, expr, c.Actions.Run(name, kind, fn))
	}

	if deps.Weather != nil {
		if err := cron("post_weather", models.KindWeather, "10 4 * * *", c.Actions.PostWeather); err != nil {
			return err
		}
	} else {
		c.logger.Warn("Weather action not scheduled, provider keys missing")
	}

	if deps.Words != nil {
		if err := cron("post_word", models.KindWord, "1 5 * * *", c.Actions.PostWord); err != nil {
			return err
		}
	} else {
		c.logger.Warn("Word action not scheduled, WORDNIK_API_KEY missing")
	}

	if err := cron("post_joke_morning", models.KindJoke, "30 6 * * *", c.Actions.PostJoke); err != nil {
		return err
	}
	if err := cron("post_joke_evening", models.KindJoke, "0 19 * * *", c.Actions.PostJoke); err != nil {
		return err
	}
	if err := cron("post_fact", models.KindFact, "1 7 * * *", c.Actions.PostFact); err != nil {
		return err
	}
	if err := cron("post_pun", models.KindPun, "10 8 * * *", c.Actions.PostPun); err != nil {
		return err
	}
	if err := cron("post_trivia", models.KindTrivia, "1 9 * * *", c.Actions.PostTrivia); err != nil {
		return err
	}
	if err := cron("post_country", models.KindCountry, "5 14 * * *", c.Actions.PostCountry); err != nil {
		return err
	}

	if deps.Songs != nil {
		if err := cron("post_song_morning", models.KindSong, "1 11 * * *", c.Actions.PostSong); err != nil {
			return err
		}
		if err := cron("post_song_evening", models.KindSong, "1 19 * * *", c.Actions.PostSong); err != nil {
			return err
		}
	} else {
		c.logger.Warn("Song actions not scheduled, Spotify credentials missing")
	}

	if deps.Screen != nil {
		task := c.Actions.Run("post_movie_or_series", models.KindMovie, c.Actions.PostMovieOrSeries)
		if err := c.Scheduler.AddIntervalJob("post_movie_or_series", c.Config.Schedule.ScreenInterval, true, task); err != nil {
			return err
		}
	} else {
		c.logger.Warn("Movie/series action not scheduled, TMDB_API_KEY missing")
	}

	return nil
}

// Start begins the scheduler and serves the liveness API. It blocks until
// the fiber listener stops.
func (c *Container) Start() error {
	c.logger.Info("Starting container services...")

	c.Scheduler.Start()

	addr := ":" + c.Config.App.Port
	c.logger.Info("Liveness server listening", "addr", addr)
	return c.App.Listen(addr)
}

// Stop shuts everything down gracefully.
func (c *Container) Stop() {
	c.logger.Info("Stopping container services...")

	c.Scheduler.Stop()
	c.logger.Info("Scheduler stopped")

	if err := c.App.Shutdown(); err != nil {
		c.logger.Error("Failed to shut down liveness server", "error", err)
	}

	if c.redisStore != nil {
		if err := c.redisStore.Close(); err != nil {
			c.logger.Error("Failed to close redis connection", "error", err)
		}
	}

	if c.NATSConn != nil {
		c.NATSConn.Close()
		c.logger.Info("NATS connection closed")
	}

	c.logger.Info("Container stopped")
}
