//go:generate go run go.uber.org/mock/mockgen -source=coordinator.go -destination=../mocks/mock_journal.go -package=mocks
package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"soundscribe/contract"
	"soundscribe/domain"
	scerrors "soundscribe/errors"
	"soundscribe/observability"
)

// Journal persists completed-session records. The coordinator treats it
// as write-only; reads belong to the bot's history command.
type Journal interface {
	Record(rec domain.SessionRecord) error
}

// Coordinator enforces the single-recording invariant for the whole
// process: one slot, not one per guild. A second Start while any session
// is ACTIVE or FINALIZING observes ErrAlreadyRecording, never a silent
// overwrite.
type Coordinator struct {
	log       *slog.Logger
	mixer     contract.Mixer
	monitor   *observability.MonitoringManager
	journal   Journal
	outputDir string
	presence  chan<- domain.PresenceEvent

	mu      sync.Mutex
	current *Session
	handle  contract.CaptureHandle
}

func NewCoordinator(
	log *slog.Logger,
	mixer contract.Mixer,
	outputDir string,
	monitor *observability.MonitoringManager,
	journal Journal,
	presence chan<- domain.PresenceEvent,
) *Coordinator {
	return &Coordinator{
		log:       log,
		mixer:     mixer,
		outputDir: outputDir,
		monitor:   monitor,
		journal:   journal,
		presence:  presence,
	}
}

// Start claims the recording slot and instructs the capture handle to
// begin routing decoded per-participant audio into a fresh session. A
// failed capture start leaves the coordinator clean so the caller can
// retry immediately.
func (c *Coordinator) Start(guild domain.GuildID, handle contract.CaptureHandle) (domain.SessionID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return "", scerrors.ErrAlreadyRecording
	}

	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", c.outputDir, err)
	}

	s := NewSession(c.log, guild, c.outputDir, c.monitor)

	onStopped := func() { c.finalize(s) }
	if err := handle.StartCapture(s.Sink(), onStopped); err != nil {
		// No partial state may leak: the slot stays free.
		return "", fmt.Errorf("%w: %v", scerrors.ErrCaptureBackend, err)
	}

	c.current = s
	c.handle = handle
	if c.monitor != nil {
		c.monitor.IncrSessionsStarted()
	}
	c.log.Info("Recording started", "session", s.ID(), "guild", guild)
	return s.ID(), nil
}

// Stop transitions the active session to FINALIZING, signals the capture
// handle, and blocks until the session completes. Returns the artifact
// path, or "" when no audio was captured or mixing failed.
func (c *Coordinator) Stop(ctx context.Context) (string, error) {
	c.mu.Lock()
	s := c.current
	handle := c.handle
	c.mu.Unlock()

	if s == nil {
		return "", scerrors.ErrNotRecording
	}

	// Seal first: audio arriving after this point is dropped, not mixed.
	s.BeginFinalize()

	if err := handle.StopCapture(); err != nil {
		// The backend may never fire its stopped callback after a failed
		// stop; finalize ourselves rather than wedge the caller.
		c.log.Warn("Capture backend stop failed, finalizing directly", "error", err)
		go c.finalize(s)
	}

	select {
	case <-s.Done():
	case <-ctx.Done():
		return "", ctx.Err()
	}

	c.mu.Lock()
	if c.current == s {
		c.current = nil
		c.handle = nil
	}
	c.mu.Unlock()

	return s.ArtifactPath(), nil
}

// finalize runs on the capture backend's stopped callback.
func (c *Coordinator) finalize(s *Session) {
	artifact := s.Finalize(context.Background(), c.mixer)

	if c.monitor != nil {
		c.monitor.IncrSessionsCompleted()
	}
	if c.journal != nil {
		rec := domain.SessionRecord{
			ID:           s.ID(),
			Guild:        s.Guild(),
			ArtifactPath: artifact,
			StartedAt:    s.StartedAt(),
			Duration:     s.Elapsed(),
			Participants: s.Participants(),
		}
		if err := c.journal.Record(rec); err != nil {
			c.log.Warn("Failed to journal session", "session", s.ID(), "error", err)
		}
	}
}

// RouteVoiceActivity forwards a presence event observed during an active
// session. Diagnostic only: it never influences mixing correctness.
func (c *Coordinator) RouteVoiceActivity(participant domain.ParticipantID, joined bool, at time.Time) {
	c.mu.Lock()
	s := c.current
	c.mu.Unlock()

	if s == nil || s.State() != domain.StateActive {
		return
	}

	evt := domain.PresenceEvent{
		Participant: participant,
		Joined:      joined,
		Offset:      at.Sub(s.StartedAt()),
	}
	if c.presence == nil {
		return
	}
	select {
	case c.presence <- evt:
	default:
		c.log.Debug("Presence event dropped, channel full", "participant", participant)
	}
}

// Recording reports whether the slot is currently claimed.
func (c *Coordinator) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}

// LatestArtifact returns the most recently modified recording in the
// output directory, or "" when there is none.
func (c *Coordinator) LatestArtifact() string {
	entries, err := os.ReadDir(c.outputDir)
	if err != nil {
		return ""
	}

	type candidate struct {
		path  string
		mtime time.Time
	}

	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mp3") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:  filepath.Join(c.outputDir, entry.Name()),
			mtime: info.ModTime(),
		})
	}
	if len(candidates) == 0 {
		return ""
	}

	latest := lo.MaxBy(candidates, func(a, b candidate) bool {
		return a.mtime.After(b.mtime)
	})
	return latest.path
}
