package recorder_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"soundscribe/domain"
	"soundscribe/mocks"
	"soundscribe/recorder"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSession_StateTransitionsExactlyOnce(t *testing.T) {
	req := require.New(t)
	s := recorder.NewSession(discardLogger(), "42", t.TempDir(), nil)

	req.Equal(domain.StateActive, s.State())
	req.True(s.BeginFinalize())
	req.Equal(domain.StateFinalizing, s.State())

	// Second transition attempt is a no-op
	req.False(s.BeginFinalize())
	req.Equal(domain.StateFinalizing, s.State())
}

func TestSession_FinalizeWithoutAudio(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Mixer must not be invoked for an empty session
	mixer := mocks.NewMockMixer(ctrl)

	s := recorder.NewSession(discardLogger(), "42", t.TempDir(), nil)
	artifact := s.Finalize(context.Background(), mixer)

	req.Empty(artifact)
	req.Equal(domain.StateComplete, s.State())

	select {
	case <-s.Done():
	default:
		req.Fail("Done channel should be closed after finalize")
	}
}

func TestSession_FinalizeRunsOnce(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mixer := mocks.NewMockMixer(ctrl)
	mixer.EXPECT().
		ConvertSingle(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)

	s := recorder.NewSession(discardLogger(), "42", t.TempDir(), nil)
	s.Sink().Write("alice", []byte{1, 2, 3, 4})

	first := s.Finalize(context.Background(), mixer)
	second := s.Finalize(context.Background(), mixer)

	req.NotEmpty(first)
	req.Equal(first, second)
	req.Equal(domain.StateComplete, s.State())
}

func TestSession_SinkRejectsAudioAfterFinalizeBegins(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mixer := mocks.NewMockMixer(ctrl)

	s := recorder.NewSession(discardLogger(), "42", t.TempDir(), nil)
	s.BeginFinalize()
	s.Sink().Write("alice", []byte{1, 2, 3, 4})

	artifact := s.Finalize(context.Background(), mixer)
	req.Empty(artifact)
}
