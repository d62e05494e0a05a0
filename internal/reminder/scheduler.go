package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/spent/internal/model"
	"github.com/robfig/cron/v3"
)

// SnapshotLoader is the part of the store the reminder reads.
type SnapshotLoader interface {
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

// Notifier delivers a digest to the user.
type Notifier interface {
	Notify(ctx context.Context, digest Digest) error
}

// Scheduler sends the digest on a cron schedule.
type Scheduler struct {
	loader   SnapshotLoader
	notifier Notifier
	now      func() time.Time
	newCron  func() *cron.Cron
}

// NewScheduler creates a scheduler. Nothing runs until Run is called.
func NewScheduler(loader SnapshotLoader, notifier Notifier) *Scheduler {
	return &Scheduler{
		loader:   loader,
		notifier: notifier,
		now:      time.Now,
		newCron:  func() *cron.Cron { return cron.New() },
	}
}

// Run schedules the digest with a standard five-field cron spec and blocks
// until ctx is done. A job still running at that point is waited for. Each
// call owns its own cron, so a Scheduler can be run again after a previous
// Run returned.
func (s *Scheduler) Run(ctx context.Context, spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}

	c := s.newCron()
	_, err := c.AddFunc(spec, func() {
		if err := s.Tick(ctx); err != nil {
			slog.Error("Reminder failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}

	c.Start()
	slog.Info("Reminder scheduled", "schedule", spec)

	<-ctx.Done()
	<-c.Stop().Done()
	slog.Info("Reminder stopped")
	return nil
}

// Tick sends one scheduled digest, unless the user turned daily reminders off.
func (s *Scheduler) Tick(ctx context.Context) error {
	snap, err := s.loader.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	if !snap.Settings.DailyReminder {
		slog.Debug("Daily reminder disabled in settings, skipping")
		return nil
	}
	return s.notifier.Notify(ctx, BuildDigest(snap, model.DateOf(s.now())))
}

// RunOnce builds and sends the digest immediately, regardless of the daily
// reminder setting.
func (s *Scheduler) RunOnce(ctx context.Context) (Digest, error) {
	snap, err := s.loader.Snapshot(ctx)
	if err != nil {
		return Digest{}, fmt.Errorf("failed to load data: %w", err)
	}
	digest := BuildDigest(snap, model.DateOf(s.now()))
	if err := s.notifier.Notify(ctx, digest); err != nil {
		return Digest{}, err
	}
	return digest, nil
}

// WriterNotifier prints the digest to a writer.
type WriterNotifier struct {
	W     io.Writer
	Money func(symbol string, amount float64) string
}

// Notify implements Notifier.
func (n WriterNotifier) Notify(_ context.Context, digest Digest) error {
	if _, err := fmt.Fprintf(n.W, "Spending digest for %s\n", digest.Date); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	for _, line := range digest.Lines(n.Money) {
		if _, err := fmt.Fprintln(n.W, "  "+line); err != nil {
			return fmt.Errorf("failed to write digest: %w", err)
		}
	}
	return nil
}

// LogNotifier records the digest as a structured log event.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(ctx context.Context, digest Digest) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Spending digest",
		"date", digest.Date.String(),
		"today_total", digest.TodayTotal,
		"today_count", digest.TodayCount,
		"month_total", digest.MonthTotal,
		"alerts", len(digest.Alerts))
	for _, a := range digest.Alerts {
		logger.WarnContext(ctx, "Budget alert",
			"scope", a.Scope.String(),
			"status", string(a.Status),
			"spent", a.Spent,
			"budget", a.Budget,
			"percentage", a.Percentage)
	}
	return nil
}

// Notifiers fans a digest out to several notifiers in order.
type Notifiers []Notifier

// Notify implements Notifier; the first error stops delivery.
func (ns Notifiers) Notify(ctx context.Context, digest Digest) error {
	for _, n := range ns {
		if err := n.Notify(ctx, digest); err != nil {
			return err
		}
	}
	return nil
}
