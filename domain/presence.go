package domain

import "time"

// PresenceEvent is a voice-channel join/leave observed while a session
// is active. It feeds diagnostic logging only and never influences the
// mix itself.
type PresenceEvent struct {
	Participant ParticipantID
	Joined      bool
	Offset      time.Duration // elapsed since session start
}
