package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Twitter   TwitterConfig
	Providers ProviderConfig
	Dedupe    DedupeConfig
	NATS      NATSConfig
	Alert     AlertConfig
	Log       LogConfig
	Schedule  ScheduleConfig
}

type AppConfig struct {
	Port     string `validate:"required,numeric"`
	Timezone string `validate:"required"`
}

type TwitterConfig struct {
	APIKey            string `validate:"required"`
	APIKeySecret      string `validate:"required"`
	AccessToken       string `validate:"required"`
	AccessTokenSecret string `validate:"required"`
}

// ProviderConfig holds the content-source API credentials. An empty key
// disables the actions that depend on it; the container logs what was
// skipped at startup.
type ProviderConfig struct {
	TMDBAPIKey          string
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyPlaylistID   string
	WordnikAPIKey       string
	WeatherAPIKey       string
	MeteosourceAPIKey   string
	ExchangeAPIKey      string
}

type DedupeConfig struct {
	Backend   string `validate:"oneof=file redis"`
	Dir       string
	RedisAddr string
}

type NATSConfig struct {
	// URL of the NATS server; empty means lifecycle events go to the noop
	// messenger.
	URL string
}

type AlertConfig struct {
	Enabled  bool
	BotToken string
	ChatID   string
}

type LogConfig struct {
	Level    string
	Format   string
	Output   string
	FilePath string
}

type ScheduleConfig struct {
	// ScreenInterval is how often the movie-or-series action fires.
	ScreenInterval time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// when one exists, and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	screenMinutes, _ := strconv.Atoi(getEnv("SCREEN_INTERVAL_MINUTES", "120"))
	alertEnabled, _ := strconv.ParseBool(getEnv("ALERT_ENABLED", "false"))

	cfg := &Config{
		App: AppConfig{
			Port:     getEnv("BOT_PORT", "8080"),
			Timezone: getEnv("BOT_TIMEZONE", "Africa/Nairobi"),
		},
		Twitter: TwitterConfig{
			APIKey:            getEnv("TWITTER_API_KEY", ""),
			APIKeySecret:      getEnv("TWITTER_API_KEY_SECRET", ""),
			AccessToken:       getEnv("TWITTER_ACCESS_TOKEN", ""),
			AccessTokenSecret: getEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
		},
		Providers: ProviderConfig{
			TMDBAPIKey:          getEnv("TMDB_API_KEY", ""),
			SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
			SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
			SpotifyPlaylistID:   getEnv("SPOTIFY_PLAYLIST_ID", "37i9dQZF1DXcBWIGoYBM5M"),
			WordnikAPIKey:       getEnv("WORDNIK_API_KEY", ""),
			WeatherAPIKey:       getEnv("WEATHER_API_KEY", ""),
			MeteosourceAPIKey:   getEnv("METEOSOURCE_API_KEY", ""),
			ExchangeAPIKey:      getEnv("EXCHANGE_API_KEY", ""),
		},
		Dedupe: DedupeConfig{
			Backend:   getEnv("DEDUPE_BACKEND", "file"),
			Dir:       getEnv("DEDUPE_DIR", "data"),
			RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		Alert: AlertConfig{
			Enabled:  alertEnabled,
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Format:   getEnv("LOG_FORMAT", "json"),
			Output:   getEnv("LOG_OUTPUT", "stdout"),
			FilePath: getEnv("LOG_FILE", "logs/bot.log"),
		},
		Schedule: ScheduleConfig{
			ScreenInterval: time.Duration(screenMinutes) * time.Minute,
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Alert.Enabled && (cfg.Alert.BotToken == "" || cfg.Alert.ChatID == "") {
		return nil, fmt.Errorf("invalid configuration: ALERT_ENABLED requires TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
