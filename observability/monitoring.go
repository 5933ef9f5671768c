package observability

import (
	"sync/atomic"
	"time"
)

// Stats is a point-in-time snapshot of the capture and download counters.
type Stats struct {
	BytesCaptured     uint64 `json:"bytes_captured"`
	FramesDropped     uint64 `json:"frames_dropped"`
	SessionsStarted   uint64 `json:"sessions_started"`
	SessionsCompleted uint64 `json:"sessions_completed"`
	TokensIssued      uint64 `json:"tokens_issued"`
	TokensRedeemed    uint64 `json:"tokens_redeemed"`
	TokensExpired     uint64 `json:"tokens_expired"`
	StartedAt         time.Time
}

// MonitoringManager aggregates process-wide counters. All increments are
// atomic so the capture goroutines and the HTTP handlers never contend.
type MonitoringManager struct {
	bytesCaptured     atomic.Uint64
	framesDropped     atomic.Uint64
	sessionsStarted   atomic.Uint64
	sessionsCompleted atomic.Uint64
	tokensIssued      atomic.Uint64
	tokensRedeemed    atomic.Uint64
	tokensExpired     atomic.Uint64
	startedAt         time.Time
}

func NewMonitoringManager() *MonitoringManager {
	return &MonitoringManager{startedAt: time.Now()}
}

func (mm *MonitoringManager) IncrBytesCaptured(n uint64) { mm.bytesCaptured.Add(n) }
func (mm *MonitoringManager) IncrFramesDropped()         { mm.framesDropped.Add(1) }
func (mm *MonitoringManager) IncrSessionsStarted()       { mm.sessionsStarted.Add(1) }
func (mm *MonitoringManager) IncrSessionsCompleted()     { mm.sessionsCompleted.Add(1) }
func (mm *MonitoringManager) IncrTokensIssued()          { mm.tokensIssued.Add(1) }
func (mm *MonitoringManager) IncrTokensRedeemed()        { mm.tokensRedeemed.Add(1) }
func (mm *MonitoringManager) IncrTokensExpired(n uint64) { mm.tokensExpired.Add(n) }

func (mm *MonitoringManager) Snapshot() Stats {
	return Stats{
		BytesCaptured:     mm.bytesCaptured.Load(),
		FramesDropped:     mm.framesDropped.Load(),
		SessionsStarted:   mm.sessionsStarted.Load(),
		SessionsCompleted: mm.sessionsCompleted.Load(),
		TokensIssued:      mm.tokensIssued.Load(),
		TokensRedeemed:    mm.tokensRedeemed.Load(),
		TokensExpired:     mm.tokensExpired.Load(),
		StartedAt:         mm.startedAt,
	}
}
