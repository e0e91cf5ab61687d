package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// UsageStat tracks invocations of a single feature. Counters are monotonic
// and only reset process-wide via Reset.
type UsageStat struct {
	Count         int           `json:"count"`
	FirstUsed     time.Time     `json:"first_used"`
	LastUsed      time.Time     `json:"last_used"`
	TotalDuration time.Duration `json:"total_duration"`
	ErrorCount    int           `json:"error_count"`
}

// UsageTracker records per-feature usage and, when telemetry is enabled,
// dispatches each event as a fire-and-forget background send. The background
// path never blocks the caller and its failures are swallowed, surfacing only
// as verbose log entries.
type UsageTracker struct {
	mu       sync.Mutex
	stats    map[string]*UsageStat
	logger   *Logger
	endpoint string
	enabled  bool
	client   *http.Client
	wg       sync.WaitGroup
}

// NewUsageTracker creates a tracker; telemetry sends go to endpoint when
// enabled is set and endpoint is non-empty
func NewUsageTracker(logger *Logger, endpoint string, enabled bool) *UsageTracker {
	return &UsageTracker{
		stats:    make(map[string]*UsageStat),
		logger:   logger,
		endpoint: endpoint,
		enabled:  enabled && endpoint != "",
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type usageEvent struct {
	Feature    string    `json:"feature"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS int64     `json:"duration_ms"`
	Failed     bool      `json:"failed"`
}

// Record updates the stat for feature and dispatches a telemetry event in the
// background. failed marks the invocation as errored.
func (t *UsageTracker) Record(feature string, duration time.Duration, failed bool) {
	now := time.Now()

	t.mu.Lock()
	stat, ok := t.stats[feature]
	if !ok {
		stat = &UsageStat{FirstUsed: now}
		t.stats[feature] = stat
	}
	stat.Count++
	stat.LastUsed = now
	stat.TotalDuration += duration
	if failed {
		stat.ErrorCount++
	}
	t.mu.Unlock()

	if !t.enabled {
		return
	}

	event := usageEvent{Feature: feature, Timestamp: now, DurationMS: duration.Milliseconds(), Failed: failed}
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		t.send(event)
	}()
}

func (t *UsageTracker) send(event usageEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		t.logger.Verbosef("telemetry", "failed to encode event: %v", err)
		return
	}
	resp, err := t.client.Post(t.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		t.logger.Verbosef("telemetry", "send failed: %v", err)
		return
	}
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.logger.Verbosef("telemetry", "send rejected with status %d", resp.StatusCode)
	}
}

// Stats returns a snapshot of all feature stats
func (t *UsageTracker) Stats() map[string]UsageStat {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]UsageStat, len(t.stats))
	for k, v := range t.stats {
		out[k] = *v
	}
	return out
}

// Reset clears all stats
func (t *UsageTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats = make(map[string]*UsageStat)
}

// Flush waits up to timeout for in-flight telemetry sends, used at shutdown
// and by tests. Pending sends past the deadline are abandoned.
func (t *UsageTracker) Flush(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
