package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"soundscribe/audio"
	"soundscribe/contract"
	"soundscribe/domain"
	"soundscribe/observability"
	"soundscribe/sink"
)

// Session owns one bounded recording episode: identity, start time, the
// per-participant sink, and the finalize hand-off to the mixer.
//
// The lifecycle is strictly one way. A session moves ACTIVE -> FINALIZING
// exactly once, FINALIZING -> COMPLETE exactly once, and is never reused.
type Session struct {
	id        domain.SessionID
	guild     domain.GuildID
	startedAt time.Time
	outputDir string

	log  *slog.Logger
	sink *sink.MultiStreamSink

	state        atomic.Int32
	finalizeOnce sync.Once
	done         chan struct{}

	mu           sync.Mutex
	artifactPath string
}

func NewSession(log *slog.Logger, guild domain.GuildID, outputDir string, monitor *observability.MonitoringManager) *Session {
	now := time.Now()
	id := domain.NewSessionID(guild, now)
	return &Session{
		id:        id,
		guild:     guild,
		startedAt: now,
		outputDir: outputDir,
		log:       log.With("session", id),
		sink:      sink.NewMultiStreamSink(log, monitor),
		done:      make(chan struct{}),
	}
}

func (s *Session) ID() domain.SessionID     { return s.id }
func (s *Session) Guild() domain.GuildID    { return s.guild }
func (s *Session) StartedAt() time.Time     { return s.startedAt }
func (s *Session) Sink() contract.AudioSink { return s.sink }
func (s *Session) Done() <-chan struct{}    { return s.done }
func (s *Session) Elapsed() time.Duration   { return time.Since(s.startedAt) }
func (s *Session) Participants() int        { return s.sink.Participants() }
func (s *Session) State() domain.SessionState {
	return domain.SessionState(s.state.Load())
}

// ArtifactPath returns the final mixed file, or "" when no audio was
// captured or mixing failed. Only meaningful once Done is closed.
func (s *Session) ArtifactPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifactPath
}

// BeginFinalize moves the session out of ACTIVE and seals the sink so no
// further audio can reach the mix. Safe to call more than once; only the
// first call performs the transition.
func (s *Session) BeginFinalize() bool {
	if !s.state.CompareAndSwap(int32(domain.StateActive), int32(domain.StateFinalizing)) {
		return false
	}
	s.sink.Seal()
	s.log.Info("Session finalizing", "elapsed", s.Elapsed())
	return true
}

// Finalize drains the sealed buffers to temp WAV files, invokes the mixer
// and records the artifact path. Mixer failures are terminal for the
// session but non-fatal to the process: the session still completes, with
// no artifact. Finalize runs its body at most once.
func (s *Session) Finalize(ctx context.Context, mixer contract.Mixer) string {
	s.finalizeOnce.Do(func() {
		s.BeginFinalize() // no-op when Stop already transitioned
		defer s.complete()

		buffers := s.sink.Seal()
		elapsed := s.Elapsed()

		inputs, err := s.flushBuffers(buffers)
		if err != nil {
			s.log.Error("Failed to flush participant buffers", "error", err)
			s.cleanupTempFiles(inputs)
			return
		}

		if len(inputs) == 0 {
			s.log.Warn("No audio captured, session completes without artifact")
			return
		}

		output := filepath.Join(s.outputDir, fmt.Sprintf("%s.mp3", s.id))

		switch len(inputs) {
		case 1:
			err = mixer.ConvertSingle(ctx, inputs[0].Path, output)
		default:
			err = mixer.MixMany(ctx, inputs, output, elapsed.Seconds())
		}

		s.cleanupTempFiles(inputs)

		if err != nil {
			s.log.Error("Mixing failed, session completes without artifact", "error", err)
			return
		}

		s.mu.Lock()
		s.artifactPath = output
		s.mu.Unlock()
		s.log.Info("Session artifact produced", "path", output, "participants", len(inputs))
	})
	return s.ArtifactPath()
}

// flushBuffers writes one temp WAV per participant with audio. Participants
// are flushed in a stable order so repeated runs name inputs consistently.
func (s *Session) flushBuffers(buffers map[domain.ParticipantID][]byte) ([]contract.TimedInput, error) {
	participants := make([]domain.ParticipantID, 0, len(buffers))
	for p, pcm := range buffers {
		if len(pcm) > 0 {
			participants = append(participants, p)
		}
	}
	sort.Slice(participants, func(i, j int) bool { return participants[i] < participants[j] })

	var inputs []contract.TimedInput
	for _, p := range participants {
		path := filepath.Join(s.outputDir, fmt.Sprintf("%s_user_%s.wav", s.id, p))
		if err := audio.WriteWAV(path, buffers[p]); err != nil {
			return inputs, err
		}
		// Offsets are accepted by the mixer interface but not yet applied
		// as time-shifts; every input starts at zero.
		inputs = append(inputs, contract.TimedInput{Path: path, Offset: 0})
		s.log.Debug("Flushed participant audio", "participant", p, "bytes", len(buffers[p]), "path", path)
	}
	return inputs, nil
}

// cleanupTempFiles is best-effort: a leftover temp file is logged, never fatal.
func (s *Session) cleanupTempFiles(inputs []contract.TimedInput) {
	for _, in := range inputs {
		if err := os.Remove(in.Path); err != nil && !os.IsNotExist(err) {
			s.log.Warn("Failed to remove temp file", "path", in.Path, "error", err)
		}
	}
}

func (s *Session) complete() {
	if s.state.CompareAndSwap(int32(domain.StateFinalizing), int32(domain.StateComplete)) {
		close(s.done)
		s.log.Info("Session complete")
	}
}
