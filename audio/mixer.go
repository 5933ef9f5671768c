package audio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"soundscribe/contract"
	scerrors "soundscribe/errors"
	"time"
)

const (
	mp3Codec   = "libmp3lame"
	mp3Bitrate = "128k"

	// dropoutTransition is the fade applied when one input ends before
	// the others ("longest input wins" duration policy).
	dropoutTransition = 2

	stderrExcerptLen = 512
)

// FFmpegMixer merges per-participant recordings by shelling out to ffmpeg.
// Each invocation runs as a separate OS process with a bounded deadline so
// a wedged transcode can never block a session stop forever.
type FFmpegMixer struct {
	log     *slog.Logger
	binPath string
	timeout time.Duration
}

func NewFFmpegMixer(log *slog.Logger, binPath string, timeout time.Duration) *FFmpegMixer {
	return &FFmpegMixer{log: log, binPath: binPath, timeout: timeout}
}

// ConvertSingle re-encodes one recording into the distributable MP3.
func (m *FFmpegMixer) ConvertSingle(ctx context.Context, input, output string) error {
	args := []string{"-y", "-i", input, "-acodec", mp3Codec, "-ab", mp3Bitrate, output}
	if err := m.run(ctx, args); err != nil {
		return err
	}
	m.log.Info("Converted single recording", "input", input, "output", output)
	return nil
}

// MixMany merges all inputs with an N-way amplitude mix. totalDuration is
// the elapsed session duration; it is logged as a hint only. Per-input
// start offsets are carried through the interface but not applied as
// time-shifts in the filter graph (known limitation inherited from the
// first version of the pipeline).
func (m *FFmpegMixer) MixMany(ctx context.Context, inputs []contract.TimedInput, output string, totalDuration float64) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no inputs to mix")
	}

	args := []string{"-y"}
	for _, in := range inputs {
		args = append(args, "-i", in.Path)
	}
	filter := fmt.Sprintf("amix=inputs=%d:duration=longest:dropout_transition=%d",
		len(inputs), dropoutTransition)
	args = append(args, "-filter_complex", filter, "-acodec", mp3Codec, "-ab", mp3Bitrate, output)

	if err := m.run(ctx, args); err != nil {
		return err
	}
	m.log.Info("Mixed recordings", "inputs", len(inputs), "output", output, "session_duration_s", totalDuration)
	return nil
}

func (m *FFmpegMixer) run(ctx context.Context, args []string) error {
	runCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, m.binPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	m.log.Debug("Running ffmpeg", "cmd", cmd.String())

	if err := cmd.Run(); err != nil {
		if runCtx.Err() != nil {
			return fmt.Errorf("ffmpeg timed out after %s: %w", m.timeout, runCtx.Err())
		}
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return &scerrors.TranscodeError{
			ExitCode: exitCode,
			Stderr:   excerpt(stderr.String()),
		}
	}

	m.log.Debug("ffmpeg completed", "stdout_bytes", stdout.Len(), "stderr_bytes", stderr.Len())
	return nil
}

// excerpt keeps the tail of the tool output, where ffmpeg puts the
// actual failure reason.
func excerpt(s string) string {
	if len(s) <= stderrExcerptLen {
		return s
	}
	return s[len(s)-stderrExcerptLen:]
}
