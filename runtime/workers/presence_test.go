package workers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"soundscribe/domain"
	"soundscribe/mocks"
	"soundscribe/runtime/workers"
)

func TestPresenceFanout_DeliversToAllSinks(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	evt := domain.PresenceEvent{Participant: "alice", Joined: true, Offset: 3 * time.Second}
	events := make(chan domain.PresenceEvent, 1)
	events <- evt

	delivered := make(chan domain.PresenceEvent, 2)
	first := mocks.NewMockPresenceSink(ctrl)
	second := mocks.NewMockPresenceSink(ctrl)
	for _, sink := range []*mocks.MockPresenceSink{first, second} {
		sink.EXPECT().Consume(gomock.Any(), evt).DoAndReturn(
			func(_ context.Context, e domain.PresenceEvent) error {
				delivered <- e
				return nil
			})
	}

	w := workers.NewPresenceFanout(discardLogger(), events, first, second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		req.NoError(w.Run(ctx))
	}()

	for i := 0; i < 2; i++ {
		select {
		case got := <-delivered:
			req.Equal(evt, got)
		case <-time.After(time.Second):
			t.Fatal("presence event never reached a sink")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fanout did not stop on cancel")
	}
}

func TestPresenceFanout_SinkErrorDoesNotStopOthers(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	events := make(chan domain.PresenceEvent, 2)
	events <- domain.PresenceEvent{Participant: "bob", Joined: true}
	events <- domain.PresenceEvent{Participant: "bob", Joined: false}

	failing := mocks.NewMockPresenceSink(ctrl)
	failing.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(context.Canceled).Times(2)

	delivered := make(chan domain.PresenceEvent, 2)
	healthy := mocks.NewMockPresenceSink(ctrl)
	healthy.EXPECT().Consume(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e domain.PresenceEvent) error {
			delivered <- e
			return nil
		}).Times(2)

	w := workers.NewPresenceFanout(discardLogger(), events, failing, healthy)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		req.NoError(w.Run(ctx))
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(time.Second):
			t.Fatal("healthy sink starved by failing sink")
		}
	}

	cancel()
	<-done
}
