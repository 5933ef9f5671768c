package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"soundscribe/domain"
)

// Keys are ordered by completion time so a reverse iteration yields the
// most recent sessions first.
const journalPrefix = "session:done:"

// SessionJournal persists completed-session records in BadgerDB. The
// journal is append-only history; artifact files themselves live on disk
// and are not owned here.
type SessionJournal struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSessionJournal(db *badger.DB, log *slog.Logger) *SessionJournal {
	return &SessionJournal{db: db, log: log}
}

func (j *SessionJournal) Record(rec domain.SessionRecord) error {
	key := fmt.Sprintf("%s%d:%s", journalPrefix, rec.StartedAt.UnixNano(), rec.ID)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	err = j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to store session record %s: %w", rec.ID, err)
	}

	j.log.Debug("Journaled session", "session", rec.ID, "artifact", rec.ArtifactPath)
	return nil
}

// Recent returns up to limit records, newest first.
func (j *SessionJournal) Recent(limit int) ([]domain.SessionRecord, error) {
	var records []domain.SessionRecord
	prefix := []byte(journalPrefix)

	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchSize = limit

		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts just past the prefix range.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix) && len(records) < limit; it.Next() {
			err := it.Item().Value(func(v []byte) error {
				var rec domain.SessionRecord
				if err := json.Unmarshal(v, &rec); err != nil {
					return fmt.Errorf("failed to unmarshal session record: %w", err)
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
