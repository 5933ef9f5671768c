package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken      string `env:"DISCORD_BOT_TOKEN"`
	RecordingsDir string `env:"RECORDINGS_DIR,default=recordings"`
	BadgerPath    string `env:"BADGER_FILEPATH,default=recordings/.journal"`
	LogLevel      string `env:"LOG_LEVEL,default=INFO"`

	// Download server: loopback-bound by default, only reachable through
	// whatever fronting the operator puts in place.
	DownloadHost string        `env:"DOWNLOAD_HOST,default=127.0.0.1"`
	DownloadPort int           `env:"DOWNLOAD_PORT,default=8000" validate:"gte=0,lte=65535"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,default=1h" validate:"gt=0"`

	FFmpegPath    string        `env:"FFMPEG_PATH,default=ffmpeg"`
	FFmpegTimeout time.Duration `env:"FFMPEG_TIMEOUT,default=5m" validate:"gt=0"`

	PresenceBufferSize int           `env:"PRESENCE_BUFFER_SIZE,default=64" validate:"gt=0"`
	SweepInterval      time.Duration `env:"TOKEN_SWEEP_INTERVAL,default=5m" validate:"gt=0"`
	MetricInterval     time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gt=0"`

	VoiceJoinAttempts int           `env:"VOICE_JOIN_ATTEMPTS,default=3" validate:"gt=0"`
	VoiceJoinBackoff  time.Duration `env:"VOICE_JOIN_BACKOFF,default=2s" validate:"gte=0"`
}

// Load reads the environment (optionally seeded from a .env file) into a
// validated Config. The bot token is deliberately not required here so
// diagnostic commands can run without one; the run command checks it.
func Load() (Config, error) {
	// A missing .env file is fine; the environment may be fully set.
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
