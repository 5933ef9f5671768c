package repositories_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"soundscribe/domain"
	"soundscribe/repositories"
)

func newTestJournal(t *testing.T) *repositories.SessionJournal {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return repositories.NewSessionJournal(db, log)
}

func TestSessionJournal_RecentReturnsNewestFirst(t *testing.T) {
	req := require.New(t)
	j := newTestJournal(t)

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []domain.SessionID{"first", "second", "third"} {
		req.NoError(j.Record(domain.SessionRecord{
			ID:        id,
			Guild:     "42",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  5 * time.Second,
		}))
	}

	records, err := j.Recent(2)
	req.NoError(err)
	req.Len(records, 2)
	req.Equal(domain.SessionID("third"), records[0].ID)
	req.Equal(domain.SessionID("second"), records[1].ID)
}

func TestSessionJournal_RecentOnEmptyJournal(t *testing.T) {
	req := require.New(t)
	j := newTestJournal(t)

	records, err := j.Recent(5)
	req.NoError(err)
	req.Empty(records)
}

func TestSessionJournal_RecordRoundTrip(t *testing.T) {
	req := require.New(t)
	j := newTestJournal(t)

	rec := domain.SessionRecord{
		ID:           "recording_42_20240101_120000",
		Guild:        "42",
		ArtifactPath: "/recordings/recording_42_20240101_120000.mp3",
		StartedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Duration:     42 * time.Second,
		Participants: 2,
	}
	req.NoError(j.Record(rec))

	records, err := j.Recent(1)
	req.NoError(err)
	req.Len(records, 1)
	req.Equal(rec, records[0])
}
