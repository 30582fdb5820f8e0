// Package daemon runs the background reminder process: it arms one recurring
// trigger per configured slot, pushes a notification when a trigger fires,
// and serves a loopback acknowledgement endpoint so the tray application can
// log a drink against the slot that prompted it.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quenchapp/quench/internal/constants"
	"github.com/quenchapp/quench/internal/facts"
	"github.com/quenchapp/quench/internal/hydration"
	"github.com/quenchapp/quench/internal/logger"
	"github.com/quenchapp/quench/internal/notify"
	"github.com/quenchapp/quench/internal/schedule"
	"github.com/quenchapp/quench/internal/timeslot"
	"github.com/quenchapp/quench/internal/trigger"
)

// Options configures a daemon instance.
type Options struct {
	// ConfigDir is where the daemon writes its lockfile.
	ConfigDir string
	Schedule  *schedule.Store
	Tracker   *hydration.Tracker
}

// Daemon owns the scheduler, the notifier and the ack endpoint for one run.
type Daemon struct {
	opts      Options
	notifier  *notify.Notifier
	scheduler *trigger.Scheduler
	secret    string
	server    *http.Server
}

// AckPayload is the body of an acknowledgement request.
type AckPayload struct {
	Slot string `json:"slot"`
}

// New creates a daemon. The trigger scheduler is created here so its fire
// handler can close over the daemon.
func New(opts Options) (*Daemon, error) {
	d := &Daemon{
		opts:     opts,
		notifier: notify.New(),
		secret:   uuid.NewString(),
	}

	scheduler, err := trigger.NewScheduler(d.onFire)
	if err != nil {
		return nil, err
	}
	d.scheduler = scheduler
	return d, nil
}

// Run arms the persisted schedule and blocks until ctx is cancelled. The
// lockfile advertising the ack endpoint is removed on the way out.
func (d *Daemon) Run(ctx context.Context) error {
	config, err := d.opts.Schedule.Config()
	if err != nil {
		return err
	}

	for _, slot := range config.Slots {
		minutes, err := timeslot.ParseTimeToMinutes(slot)
		if err != nil {
			return fmt.Errorf("persisted slot %q is not a valid time: %w", slot, err)
		}
		if _, err := d.scheduler.Register(ctx, minutes/60, minutes%60, slot); err != nil {
			return fmt.Errorf("failed to arm reminder for %s: %w", slot, err)
		}
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to bind ack endpoint: %w", err)
	}

	lockfilePath := filepath.Join(d.opts.ConfigDir, constants.DaemonLockfileName)
	if err := d.writeLockfile(lockfilePath, listener.Addr()); err != nil {
		listener.Close()
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ack", d.handleAck)
	d.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	serveErr := make(chan error, 1)
	go func() {
		if err := d.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	d.scheduler.Start()
	logger.Info("Daemon running", "slots", len(config.Slots), "ack_addr", listener.Addr().String())

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	d.shutdown(lockfilePath)
	return err
}

// onFire delivers the notification for a fired slot. Delivery failures are
// logged, never fatal: the tray may simply not be running.
func (d *Daemon) onFire(slot string) {
	if err := d.notifier.Notify(constants.NotificationTitle, facts.Random()); err != nil {
		logger.Warn("Failed to deliver reminder notification", "slot", slot, "error", err)
	}
}

// handleAck records a drink for the slot named in the request body.
func (d *Daemon) handleAck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.Header.Get("X-Quench-Secret") != d.secret {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var payload AckPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !timeslot.ValidTimeFormat(payload.Slot) {
		http.Error(w, "slot must be HH:MM", http.StatusBadRequest)
		return
	}

	if err := d.opts.Tracker.AddStat(payload.Slot); err != nil {
		logger.Error("Failed to record acknowledged slot", "slot", payload.Slot, "error", err)
		http.Error(w, "failed to record drink", http.StatusInternalServerError)
		return
	}

	logger.Info("Recorded acknowledged reminder", "slot", payload.Slot)
	w.WriteHeader(http.StatusOK)
}

func (d *Daemon) writeLockfile(path string, addr net.Addr) error {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return fmt.Errorf("unexpected listener address type %T", addr)
	}
	content := fmt.Sprintf("%d|%d|%s", tcpAddr.Port, os.Getpid(), d.secret)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write daemon lockfile: %w", err)
	}
	return nil
}

func (d *Daemon) shutdown(lockfilePath string) {
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := d.server.Shutdown(sctx); err != nil {
		logger.Error("Failed to shut down ack endpoint", "error", err)
	}
	if err := d.scheduler.Stop(); err != nil {
		logger.Error("Failed to stop trigger scheduler", "error", err)
	}
	if err := os.Remove(lockfilePath); err != nil && !os.IsNotExist(err) {
		logger.Error("Failed to remove daemon lockfile", "error", err)
	}
	logger.Info("Daemon stopped")
}

// ReadLockfile parses a daemon lockfile into its port, pid and secret parts.
func ReadLockfile(configDir string) (port int, pid int, secret string, err error) {
	content, err := os.ReadFile(filepath.Join(configDir, constants.DaemonLockfileName))
	if err != nil {
		return 0, 0, "", errors.New("quench daemon is not running")
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return 0, 0, "", errors.New("daemon lockfile is malformed")
	}
	if _, err := fmt.Sscanf(parts[0], "%d", &port); err != nil || port < 1 || port > 65535 {
		return 0, 0, "", errors.New("invalid port in daemon lockfile")
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &pid); err != nil {
		return 0, 0, "", errors.New("invalid pid in daemon lockfile")
	}
	secret = parts[2]
	if strings.TrimSpace(secret) == "" {
		return 0, 0, "", errors.New("empty secret in daemon lockfile")
	}
	return port, pid, secret, nil
}
