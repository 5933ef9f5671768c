package recorder_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"soundscribe/contract"
	"soundscribe/domain"
	scerrors "soundscribe/errors"
	"soundscribe/mocks"
	"soundscribe/recorder"
)

// capturingHandle wires a mock capture handle so tests can push audio into
// the session sink and trigger the stopped callback the way the voice
// backend would.
type capturingHandle struct {
	mu        sync.Mutex
	sink      contract.AudioSink
	onStopped func()
}

func newCapturingHandle(ctrl *gomock.Controller, h *capturingHandle) *mocks.MockCaptureHandle {
	handle := mocks.NewMockCaptureHandle(ctrl)
	handle.EXPECT().
		StartCapture(gomock.Any(), gomock.Any()).
		DoAndReturn(func(s contract.AudioSink, f func()) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.sink = s
			h.onStopped = f
			return nil
		}).
		AnyTimes()
	handle.EXPECT().
		StopCapture().
		DoAndReturn(func() error {
			h.mu.Lock()
			f := h.onStopped
			h.mu.Unlock()
			go f()
			return nil
		}).
		AnyTimes()
	return handle
}

func (h *capturingHandle) write(p domain.ParticipantID, b []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sink.Write(p, b)
}

func TestCoordinator_StopBeforeStart(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := recorder.NewCoordinator(discardLogger(), mocks.NewMockMixer(ctrl), t.TempDir(), nil, nil, nil)

	_, err := c.Stop(context.Background())
	req.ErrorIs(err, scerrors.ErrNotRecording)
}

func TestCoordinator_ConcurrentStartsExactlyOneWins(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := &capturingHandle{}
	handle := newCapturingHandle(ctrl, h)
	c := recorder.NewCoordinator(discardLogger(), mocks.NewMockMixer(ctrl), t.TempDir(), nil, nil, nil)

	const callers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, alreadyRecording int

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Start("42", handle)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case err == scerrors.ErrAlreadyRecording:
				alreadyRecording++
			}
		}()
	}
	wg.Wait()

	req.Equal(1, successes)
	req.Equal(callers-1, alreadyRecording)
	req.True(c.Recording())
}

func TestCoordinator_FailedStartLeavesCleanState(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mocks.NewMockCaptureHandle(ctrl)
	failing.EXPECT().
		StartCapture(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("gateway closed")).
		Times(1)

	c := recorder.NewCoordinator(discardLogger(), mocks.NewMockMixer(ctrl), t.TempDir(), nil, nil, nil)

	_, err := c.Start("42", failing)
	req.ErrorIs(err, scerrors.ErrCaptureBackend)
	req.False(c.Recording())

	// The slot is free again: a retry must succeed
	h := &capturingHandle{}
	_, err = c.Start("42", newCapturingHandle(ctrl, h))
	req.NoError(err)
}

func TestCoordinator_StopWithoutAudioYieldsNoArtifact(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := &capturingHandle{}
	c := recorder.NewCoordinator(discardLogger(), mocks.NewMockMixer(ctrl), t.TempDir(), nil, nil, nil)

	_, err := c.Start("42", newCapturingHandle(ctrl, h))
	req.NoError(err)

	artifact, err := c.Stop(context.Background())
	req.NoError(err)
	req.Empty(artifact)
	req.False(c.Recording())
}

func TestCoordinator_SingleParticipantUsesConversionPath(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	mixer := mocks.NewMockMixer(ctrl)
	mixer.EXPECT().
		ConvertSingle(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input, output string) error {
			req.Contains(input, "_user_alice")
			return os.WriteFile(output, []byte("mp3"), 0o644)
		}).
		Times(1)

	h := &capturingHandle{}
	c := recorder.NewCoordinator(discardLogger(), mixer, dir, nil, nil, nil)

	_, err := c.Start("42", newCapturingHandle(ctrl, h))
	req.NoError(err)

	h.write("alice", []byte{1, 2, 3, 4})

	artifact, err := c.Stop(context.Background())
	req.NoError(err)
	req.NotEmpty(artifact)
	req.FileExists(artifact)
}

func TestCoordinator_MultipleParticipantsUseMixPath(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	mixer := mocks.NewMockMixer(ctrl)
	mixer.EXPECT().
		MixMany(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inputs []contract.TimedInput, output string, totalDuration float64) error {
			req.Len(inputs, 2)
			req.Greater(totalDuration, 0.0)
			return os.WriteFile(output, []byte("mp3"), 0o644)
		}).
		Times(1)

	h := &capturingHandle{}
	c := recorder.NewCoordinator(discardLogger(), mixer, dir, nil, nil, nil)

	_, err := c.Start("42", newCapturingHandle(ctrl, h))
	req.NoError(err)

	// Participant A sends three chunks, participant B one
	h.write("alice", []byte{1, 2})
	h.write("bob", []byte{5, 6})
	h.write("alice", []byte{3, 4})
	h.write("alice", []byte{7, 8})

	artifact, err := c.Stop(context.Background())
	req.NoError(err)
	req.FileExists(artifact)

	// Temp WAV files must be cleaned up after a successful mix
	leftovers, err := filepath.Glob(filepath.Join(dir, "*_user_*.wav"))
	req.NoError(err)
	req.Empty(leftovers)
}

func TestCoordinator_MixerFailureStillCompletesSession(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mixer := mocks.NewMockMixer(ctrl)
	mixer.EXPECT().
		MixMany(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&scerrors.TranscodeError{ExitCode: 1, Stderr: "boom"}).
		Times(1)

	h := &capturingHandle{}
	c := recorder.NewCoordinator(discardLogger(), mixer, t.TempDir(), nil, nil, nil)

	_, err := c.Start("42", newCapturingHandle(ctrl, h))
	req.NoError(err)

	h.write("alice", []byte{1, 2})
	h.write("bob", []byte{3, 4})

	artifact, err := c.Stop(context.Background())
	req.NoError(err)
	req.Empty(artifact)
	req.False(c.Recording())

	// The slot is usable again after a failed mix
	_, err = c.Start("42", newCapturingHandle(ctrl, &capturingHandle{}))
	req.NoError(err)
}

func TestCoordinator_JournalReceivesCompletedSession(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	journal := mocks.NewMockJournal(ctrl)
	recorded := make(chan domain.SessionRecord, 1)
	journal.EXPECT().
		Record(gomock.Any()).
		DoAndReturn(func(rec domain.SessionRecord) error {
			recorded <- rec
			return nil
		}).
		Times(1)

	h := &capturingHandle{}
	c := recorder.NewCoordinator(discardLogger(), mocks.NewMockMixer(ctrl), t.TempDir(), nil, journal, nil)

	_, err := c.Start("42", newCapturingHandle(ctrl, h))
	req.NoError(err)

	_, err = c.Stop(context.Background())
	req.NoError(err)

	select {
	case rec := <-recorded:
		req.Equal(domain.GuildID("42"), rec.Guild)
		req.Empty(rec.ArtifactPath)
	case <-time.After(time.Second):
		req.Fail("journal was never written")
	}
}

func TestCoordinator_RouteVoiceActivityOnlyWhileActive(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	presence := make(chan domain.PresenceEvent, 4)
	h := &capturingHandle{}
	c := recorder.NewCoordinator(discardLogger(), mocks.NewMockMixer(ctrl), t.TempDir(), nil, nil, presence)

	// No active session: events are discarded
	c.RouteVoiceActivity("alice", true, time.Now())
	req.Empty(presence)

	_, err := c.Start("42", newCapturingHandle(ctrl, h))
	req.NoError(err)

	c.RouteVoiceActivity("alice", true, time.Now())
	req.Len(presence, 1)

	evt := <-presence
	req.Equal(domain.ParticipantID("alice"), evt.Participant)
	req.True(evt.Joined)
}

func TestCoordinator_LatestArtifact(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	c := recorder.NewCoordinator(discardLogger(), mocks.NewMockMixer(ctrl), dir, nil, nil, nil)

	req.Empty(c.LatestArtifact())

	older := filepath.Join(dir, "recording_42_one.mp3")
	newer := filepath.Join(dir, "recording_42_two.mp3")
	req.NoError(os.WriteFile(older, []byte("a"), 0o644))
	req.NoError(os.WriteFile(newer, []byte("b"), 0o644))

	base := time.Now().Add(-time.Hour)
	req.NoError(os.Chtimes(older, base, base))
	req.NoError(os.Chtimes(newer, base.Add(time.Minute), base.Add(time.Minute)))

	req.Equal(newer, c.LatestArtifact())

	// Non-mp3 files are ignored even when newer
	stray := filepath.Join(dir, "notes.txt")
	req.NoError(os.WriteFile(stray, []byte("x"), 0o644))
	req.Equal(newer, c.LatestArtifact())
}
