package domain

import "time"

// SessionRecord is the journal entry persisted once a session reaches
// COMPLETE. ArtifactPath is empty when no audio was captured or when
// mixing failed.
type SessionRecord struct {
	ID           SessionID     `json:"id"`
	Guild        GuildID       `json:"guild"`
	ArtifactPath string        `json:"artifact_path"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration"`
	Participants int           `json:"participants"`
}
