package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"soundscribe/observability"
)

// TelemetryWorker periodically logs process health (RSS, CPU) together
// with the capture and token counters.
type TelemetryWorker struct {
	log      *slog.Logger
	monitor  *observability.MonitoringManager
	interval time.Duration
}

func NewTelemetryWorker(log *slog.Logger, monitor *observability.MonitoringManager, interval time.Duration) *TelemetryWorker {
	return &TelemetryWorker{log: log, monitor: monitor, interval: interval}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stats := w.monitor.Snapshot()

			var rss uint64
			var cpu float64
			if memInfo, err := p.MemoryInfo(); err == nil {
				rss = memInfo.RSS
			}
			if cpuPercent, err := p.CPUPercent(); err == nil {
				cpu = cpuPercent
			}

			w.log.Info("Telemetry",
				"rss_bytes", rss,
				"cpu_percent", cpu,
				"bytes_captured", stats.BytesCaptured,
				"frames_dropped", stats.FramesDropped,
				"sessions_started", stats.SessionsStarted,
				"sessions_completed", stats.SessionsCompleted,
				"tokens_issued", stats.TokensIssued,
				"tokens_redeemed", stats.TokensRedeemed,
				"tokens_expired", stats.TokensExpired,
			)
		}
	}
}
