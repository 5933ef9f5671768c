//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"soundscribe/domain"
)

// AudioSink receives decoded audio tagged by participant. It is the only
// surface the capture backend sees: bytes in, plus a one-shot seal that
// hands back whatever was accumulated.
type AudioSink interface {
	// Write appends decoded PCM for one participant. Arrival order is
	// preserved per participant; nothing is guaranteed across participants.
	Write(participant domain.ParticipantID, pcm []byte)
	// Seal stops intake and returns the accumulated buffers. Later calls
	// return the same snapshot; later writes are dropped.
	Seal() map[domain.ParticipantID][]byte
}

// CaptureHandle is the narrow view of the voice SDK the recorder needs.
// StartCapture routes decoded per-participant audio into sink until
// StopCapture is called; onStopped fires once the backend has fully
// stopped delivering audio.
type CaptureHandle interface {
	StartCapture(sink AudioSink, onStopped func()) error
	StopCapture() error
}

// TimedInput is one participant file handed to the mixer. Offset is the
// start offset in seconds; it is carried through the interface but the
// current filter graph does not apply it as a time-shift.
type TimedInput struct {
	Path   string
	Offset float64
}

type Mixer interface {
	// ConvertSingle re-encodes one input into the distributable codec.
	ConvertSingle(ctx context.Context, input, output string) error
	// MixMany merges all inputs into output. totalDuration is the elapsed
	// session duration, used as a trim/pad hint.
	MixMany(ctx context.Context, inputs []TimedInput, output string, totalDuration float64) error
}

// Worker doesn't protect itself. Supervision, restarts and panic
// recovery belong to the supervisor.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// PresenceSink consumes voice presence events fanned out by the
// coordinator while a session is active.
type PresenceSink interface {
	Consume(ctx context.Context, e domain.PresenceEvent) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
