package internal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"soundscribe/internal"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := internal.Load()
	req.NoError(err)

	req.Equal("recordings", cfg.RecordingsDir)
	req.Equal("recordings/.journal", cfg.BadgerPath)
	req.Equal("INFO", cfg.LogLevel)
	req.Equal("127.0.0.1", cfg.DownloadHost)
	req.Equal(8000, cfg.DownloadPort)
	req.Equal(time.Hour, cfg.TokenTTL)
	req.Equal("ffmpeg", cfg.FFmpegPath)
	req.Equal(5*time.Minute, cfg.FFmpegTimeout)
	req.Equal(64, cfg.PresenceBufferSize)
	req.Equal(3, cfg.VoiceJoinAttempts)
	req.Equal(2*time.Second, cfg.VoiceJoinBackoff)
}

func TestLoad_Overrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("DISCORD_BOT_TOKEN", "abc.def.ghi")
	t.Setenv("RECORDINGS_DIR", "/var/lib/soundscribe")
	t.Setenv("DOWNLOAD_PORT", "9090")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := internal.Load()
	req.NoError(err)

	req.Equal("abc.def.ghi", cfg.BotToken)
	req.Equal("/var/lib/soundscribe", cfg.RecordingsDir)
	req.Equal(9090, cfg.DownloadPort)
	req.Equal(30*time.Minute, cfg.TokenTTL)
}

func TestLoad_RejectsOutOfRangePort(t *testing.T) {
	t.Setenv("DOWNLOAD_PORT", "70000")

	_, err := internal.Load()
	require.ErrorContains(t, err, "invalid config")
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "0s")

	_, err := internal.Load()
	require.ErrorContains(t, err, "invalid config")
}
