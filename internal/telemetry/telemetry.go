// Package telemetry reports anonymous usage events to PostHog.
//
// Everything in this package is best-effort and fire-and-forget: delivery
// happens on detached goroutines, failures are swallowed (logged at debug
// level only), and no code path here may ever fail a command or write to the
// user's terminal.
package telemetry

import (
	"bytes"
	"cmp"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apimesh/apimesh/internal/paths"
	"github.com/apimesh/apimesh/internal/userconfig"
)

// Baked-in project defaults, overridable at build time via -ldflags -X.
var (
	DefaultAPIKey = "phc_te3mp08IuF167Pd3zQvC0ocdGd4Wj2undKV1cEQE1n1"
	DefaultHost   = "https://us.i.posthog.com" // or https://eu.i.posthog.com
)

const (
	// capturePath is PostHog's single-event capture endpoint.
	capturePath = "/i/v0/e/"

	// requestTimeout bounds each delivery attempt. It is the only resource
	// bound on the background goroutines; an unreachable host just means a
	// goroutine that sleeps this long and exits.
	requestTimeout = 1500 * time.Millisecond

	// timestampLayout is RFC 3339 UTC with microseconds.
	timestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// Config is the telemetry configuration, resolved once and immutable for the
// lifetime of the process.
type Config struct {
	Enabled    bool   // opt-in flag; see Telemetry.Enabled for the effective state
	APIKey     string // PostHog project API key
	Host       string // PostHog ingestion host
	ConfigPath string // shared config file holding the install id
}

// ConfigFromEnv resolves the configuration from APIMESH_* environment
// variables, falling back to the compiled-in defaults. Telemetry is always
// off while running under go test so tests never phone home.
func ConfigFromEnv() Config {
	cfg := configFromEnv()
	if flag.Lookup("test.v") != nil {
		cfg.Enabled = false
	}
	return cfg
}

// configFromEnv is ConfigFromEnv without the test-run guard, so the env var
// logic itself stays testable.
func configFromEnv() Config {
	// Absent means default-enabled; set means enabled only when "1".
	enabled := true
	if v, ok := os.LookupEnv("APIMESH_TELEMETRY"); ok {
		enabled = v == "1"
	}
	// Console convention, honored regardless of APIMESH_TELEMETRY.
	if v, _ := strconv.ParseBool(os.Getenv("DO_NOT_TRACK")); v {
		enabled = false
	}

	apiKey := cmp.Or(
		strings.TrimSpace(os.Getenv("APIMESH_POSTHOG_API_KEY")),
		strings.TrimSpace(os.Getenv("APIMESH_DEFAULT_POSTHOG_API_KEY")),
		DefaultAPIKey,
	)
	host := cmp.Or(
		strings.TrimSpace(os.Getenv("APIMESH_POSTHOG_HOST")),
		strings.TrimSpace(os.Getenv("APIMESH_DEFAULT_POSTHOG_HOST")),
		DefaultHost,
	)

	return Config{
		Enabled:    enabled,
		APIKey:     apiKey,
		Host:       host,
		ConfigPath: paths.UserConfigPath(),
	}
}

// Telemetry captures events and delivers them to the configured endpoint.
type Telemetry struct {
	cfg    Config
	client *http.Client

	idOnce    sync.Once
	installID string
}

// New returns a Telemetry using cfg.
func New(cfg Config) *Telemetry {
	return &Telemetry{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Enabled reports whether events will actually be sent: the flag must be on
// and an API key must have resolved.
func (t *Telemetry) Enabled() bool {
	return t.cfg.Enabled && t.cfg.APIKey != ""
}

// Config returns the resolved configuration.
func (t *Telemetry) Config() Config {
	return t.cfg
}

// Endpoint returns the full capture URL.
func (t *Telemetry) Endpoint() string {
	return strings.TrimRight(t.cfg.Host, "/") + capturePath
}

// getInstallID resolves the persisted installation id, creating it on the
// first event this installation ever emits.
func (t *Telemetry) getInstallID() string {
	t.idOnce.Do(func() {
		t.installID = userconfig.GetOrCreateInstallID(t.cfg.ConfigPath)
	})
	return t.installID
}

// Capture records an event with the current time. It never blocks on
// delivery, never returns an error, and is a no-op when telemetry is
// disabled. Events captured concurrently may arrive in any order or not at
// all.
func (t *Telemetry) Capture(event string, properties map[string]any) {
	t.CaptureAt(event, properties, time.Now())
}

// CaptureAt is Capture with an explicit event timestamp. A zero ts means now.
func (t *Telemetry) CaptureAt(event string, properties map[string]any, ts time.Time) {
	if !t.Enabled() {
		return
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	// Everything that can touch the filesystem or network runs detached;
	// the caller gets control back immediately.
	go t.deliver(event, properties, ts)
}

// deliver builds the event payload and posts it. All failures are swallowed.
func (t *Telemetry) deliver(event string, properties map[string]any, ts time.Time) {
	payload := map[string]any{
		"api_key":     t.cfg.APIKey,
		"distinct_id": t.getInstallID(),
		"event":       event,
		"properties":  t.eventProperties(properties),
		"timestamp":   ts.UTC().Format(timestampLayout),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Debug("telemetry: marshal failed", "event", event, "error", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, t.Endpoint(), bytes.NewReader(body))
	if err != nil {
		slog.Debug("telemetry: bad request", "event", event, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		slog.Debug("telemetry: delivery failed", "event", event, "error", err)
		return
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the response is never acted on.
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Debug("telemetry: rejected", "event", event, "status", resp.StatusCode)
	}
}

// eventProperties merges the static base properties under the caller's;
// caller keys win.
func (t *Telemetry) eventProperties(properties map[string]any) map[string]any {
	base := baseProperties()
	merged := make(map[string]any, len(base)+len(properties))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range properties {
		merged[k] = v
	}
	return merged
}
