package domain

import (
	"fmt"
	"time"
)

type GuildID string

// ParticipantID identifies one speaking user inside a voice channel.
type ParticipantID string

// SessionID is derived from the owning guild and the creation instant.
// The nanosecond suffix keeps two sessions of the same guild created
// within the same second distinguishable.
type SessionID string

func NewSessionID(guild GuildID, at time.Time) SessionID {
	return SessionID(fmt.Sprintf("recording_%s_%s_%d",
		guild, at.Format("20060102_150405"), at.Nanosecond()))
}

// SessionState is the lifecycle of one recording session.
// Transitions are one way: Active -> Finalizing -> Complete.
type SessionState int32

const (
	StateActive SessionState = iota
	StateFinalizing
	StateComplete
)

func (s SessionState) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateFinalizing:
		return "FINALIZING"
	case StateComplete:
		return "COMPLETE"
	default:
		return "UNKNOWN"
	}
}
