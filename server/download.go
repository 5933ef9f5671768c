package server

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	scerrors "soundscribe/errors"
	"soundscribe/observability"
)

// tokenBytes yields 256 bits of entropy per token; collisions are
// astronomically improbable and not handled explicitly.
const tokenBytes = 32

const shutdownTimeout = 5 * time.Second

type tokenEntry struct {
	path      string
	expiresAt time.Time
}

// DownloadServer serves finalized recordings over short-lived token URLs.
//
// A token stays valid for repeat downloads until its expiry instant; there
// is no single-redemption invalidation. Expired tokens are purged lazily
// on their next redemption attempt, on every link creation, and by the
// periodic sweeper.
type DownloadServer struct {
	log     *slog.Logger
	monitor *observability.MonitoringManager
	host    string
	port    int
	ttl     time.Duration
	now     func() time.Time

	mu     sync.Mutex
	tokens map[string]tokenEntry

	srvMu sync.Mutex
	srv   *http.Server
	addr  string
}

func NewDownloadServer(log *slog.Logger, host string, port int, ttl time.Duration, monitor *observability.MonitoringManager) *DownloadServer {
	return &DownloadServer{
		log:     log,
		monitor: monitor,
		host:    host,
		port:    port,
		ttl:     ttl,
		now:     time.Now,
		tokens:  make(map[string]tokenEntry),
	}
}

// Start binds the listener and begins serving without blocking the caller.
func (d *DownloadServer) Start() error {
	d.srvMu.Lock()
	defer d.srvMu.Unlock()

	if d.srv != nil {
		return nil
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", d.host, d.port))
	if err != nil {
		return fmt.Errorf("failed to bind download server: %w", err)
	}
	d.addr = listener.Addr().String()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", d.handleRoot)
	mux.HandleFunc("GET /download/{token}", d.handleDownload)
	mux.HandleFunc("GET /health", d.handleHealth)

	d.srv = &http.Server{Handler: mux}

	go func() {
		if err := d.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.log.Error("Download server error", "error", err)
		}
	}()

	d.log.Info("Download server started", "addr", d.addr)
	return nil
}

// Stop requests a graceful shutdown, waits up to a bounded timeout so
// in-flight downloads past header transmission can finish, then force
// closes. Idempotent and safe when the server was never started.
func (d *DownloadServer) Stop(ctx context.Context) error {
	d.srvMu.Lock()
	srv := d.srv
	d.srv = nil
	d.srvMu.Unlock()

	if srv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		d.log.Warn("Graceful shutdown timed out, forcing close", "error", err)
		return srv.Close()
	}
	d.log.Info("Download server stopped")
	return nil
}

// CreateLink mints a fresh single-purpose token for path and returns the
// fully qualified download URL. Every call produces a new token, even for
// the same file. Expired tokens are swept opportunistically on each call.
func (d *DownloadServer) CreateLink(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", scerrors.ErrFileNotFound, path)
	}

	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	d.mu.Lock()
	d.tokens[token] = tokenEntry{path: path, expiresAt: d.now().Add(d.ttl)}
	swept := d.sweepLocked()
	d.mu.Unlock()

	if d.monitor != nil {
		d.monitor.IncrTokensIssued()
	}
	if swept > 0 {
		d.log.Debug("Swept expired tokens", "count", swept)
	}

	url := fmt.Sprintf("http://%s/download/%s", d.Addr(), token)
	d.log.Debug("Created download link", "path", path)
	return url, nil
}

// Addr returns the bound address, falling back to the configured one when
// the server has not started yet.
func (d *DownloadServer) Addr() string {
	d.srvMu.Lock()
	defer d.srvMu.Unlock()
	if d.addr != "" {
		return d.addr
	}
	return fmt.Sprintf("%s:%d", d.host, d.port)
}

// TTL reports how long a minted link stays valid.
func (d *DownloadServer) TTL() time.Duration { return d.ttl }

// ActiveTokens reports the live token count, including expired entries not
// yet swept. Staleness is acceptable for health reporting.
func (d *DownloadServer) ActiveTokens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tokens)
}

// Sweep removes every expired token and returns how many were purged.
func (d *DownloadServer) Sweep() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sweepLocked()
}

func (d *DownloadServer) sweepLocked() int {
	now := d.now()
	swept := 0
	for token, entry := range d.tokens {
		if now.After(entry.expiresAt) {
			delete(d.tokens, token)
			swept++
		}
	}
	if swept > 0 && d.monitor != nil {
		d.monitor.IncrTokensExpired(uint64(swept))
	}
	return swept
}

func (d *DownloadServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "SoundScribe download server"})
}

func (d *DownloadServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":        "healthy",
		"active_tokens": d.ActiveTokens(),
	})
}

// handleDownload redeems a token. Unknown, expired and dangling tokens all
// surface as 404 with a reason string so nothing leaks about which case
// was hit beyond what the caller already knows.
func (d *DownloadServer) handleDownload(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	reqID := uuid.NewString()

	d.mu.Lock()
	entry, ok := d.tokens[token]
	if ok && d.now().After(entry.expiresAt) {
		delete(d.tokens, token)
		if d.monitor != nil {
			d.monitor.IncrTokensExpired(1)
		}
		ok = false
	}
	d.mu.Unlock()

	if !ok {
		d.log.Debug("Rejected download", "request", reqID, "reason", "invalid or expired token")
		http.Error(w, "invalid or expired download link", http.StatusNotFound)
		return
	}

	f, err := os.Open(entry.path)
	if err != nil {
		// Artifact vanished from disk: the token is worthless, drop it.
		d.mu.Lock()
		delete(d.tokens, token)
		d.mu.Unlock()
		d.log.Debug("Rejected download", "request", reqID, "reason", "artifact missing", "path", entry.path)
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	filename := filepath.Base(entry.path)
	w.Header().Set("Content-Type", contentTypeFor(entry.path))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	http.ServeContent(w, r, filename, time.Time{}, f)
	if d.monitor != nil {
		d.monitor.IncrTokensRedeemed()
	}
	d.log.Info("Served recording", "request", reqID, "file", filename)
}

func contentTypeFor(path string) string {
	mime, err := mimetype.DetectFile(path)
	if err != nil || !strings.HasPrefix(mime.String(), "audio/") {
		return "audio/mpeg"
	}
	return mime.String()
}
