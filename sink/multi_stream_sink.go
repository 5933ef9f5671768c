package sink

import (
	"bytes"
	"log/slog"
	"soundscribe/domain"
	"soundscribe/observability"
	"sync"
)

// MultiStreamSink accumulates decoded PCM per speaking participant.
// Buffers are created lazily on the first byte received for a participant
// and stay append-only until the sink is sealed.
//
// MultiStreamSink is safe for concurrent use: the capture backend writes
// from its own goroutine while the session seals from another.
type MultiStreamSink struct {
	mu      sync.Mutex
	log     *slog.Logger
	monitor *observability.MonitoringManager
	sealed  bool
	buffers map[domain.ParticipantID]*bytes.Buffer
	snap    map[domain.ParticipantID][]byte
}

func NewMultiStreamSink(log *slog.Logger, monitor *observability.MonitoringManager) *MultiStreamSink {
	return &MultiStreamSink{
		log:     log,
		monitor: monitor,
		buffers: make(map[domain.ParticipantID]*bytes.Buffer),
	}
}

// Write appends pcm to the participant's buffer. Writes arriving after
// Seal are dropped: they must never leak into the final mix.
func (s *MultiStreamSink) Write(participant domain.ParticipantID, pcm []byte) {
	if len(pcm) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		if s.monitor != nil {
			s.monitor.IncrFramesDropped()
		}
		return
	}

	buf, ok := s.buffers[participant]
	if !ok {
		buf = &bytes.Buffer{}
		s.buffers[participant] = buf
		s.log.Debug("First audio received", "participant", participant)
	}

	// bytes.Buffer.Write never returns an error
	_, _ = buf.Write(pcm)
	if s.monitor != nil {
		s.monitor.IncrBytesCaptured(uint64(len(pcm)))
	}
}

// Seal stops intake and returns the accumulated buffers. The first call
// takes the snapshot; every later call returns the same one.
func (s *MultiStreamSink) Seal() map[domain.ParticipantID][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		return s.snap
	}
	s.sealed = true

	s.snap = make(map[domain.ParticipantID][]byte, len(s.buffers))
	for participant, buf := range s.buffers {
		s.snap[participant] = buf.Bytes()
	}
	return s.snap
}

// Participants reports how many distinct speakers have sent audio so far.
func (s *MultiStreamSink) Participants() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffers)
}
