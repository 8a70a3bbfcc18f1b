// Package poller is a client-side library for consumers of the relay. The
// server itself never polls; UI backends and scripted callers import this
// package to drive a submitted task to completion: query status, report
// changes, sleep, repeat, bounded by a wall-clock deadline. One outstanding
// query at a time, no overlap.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/logger"
)

const (
	// DefaultInterval is the pause between status queries.
	DefaultInterval = 5 * time.Second

	// DefaultMaxWait is how long a poll loop runs before giving up.
	DefaultMaxWait = 10 * time.Minute
)

// ErrTimeout indicates the deadline elapsed before the task reached a
// terminal status. The task itself may still complete upstream.
var ErrTimeout = errors.New("timed out waiting for generation task")

// GenerationFailedError is a terminal non-complete outcome. It carries the
// specific status so callers can distinguish a content rejection from a
// provider-side failure.
type GenerationFailedError struct {
	Status domain.TaskStatus
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed with status %s", e.Status)
}

// StatusQuerier answers status queries for a task. The relay service
// satisfies this.
type StatusQuerier interface {
	QueryStatus(ctx context.Context, taskID string) (*domain.StatusRecord, error)
}

// Config bounds the poll loop. Zero values fall back to the defaults.
type Config struct {
	Interval time.Duration
	MaxWait  time.Duration
}

// Poller runs bounded status poll loops against a StatusQuerier.
type Poller struct {
	logger   *slog.Logger
	querier  StatusQuerier
	interval time.Duration
	maxWait  time.Duration

	// now and sleep are injected so tests can simulate time.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewPoller creates a poller over the given querier.
func NewPoller(querier StatusQuerier, cfg Config, log *slog.Logger) (*Poller, error) {
	if querier == nil {
		return nil, errors.New("querier cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = DefaultMaxWait
	}

	return &Poller{
		logger:   log.With("component", "poller"),
		querier:  querier,
		interval: cfg.Interval,
		maxWait:  cfg.MaxWait,
		now:      time.Now,
		sleep:    sleepContext,
	}, nil
}

// PollUntilDone polls taskID until it reaches a terminal status or the
// deadline passes. onStatus, when non-nil, is invoked each time the observed
// status changes.
//
// The caller sees one of three outcomes: the artifact list on completion, a
// *GenerationFailedError for any other terminal status, or ErrTimeout.
// Transient query errors are logged and retried within the deadline; they
// never surface directly. Cancelling ctx stops the loop with ctx.Err().
func (p *Poller) PollUntilDone(ctx context.Context, taskID string, onStatus func(domain.TaskStatus)) ([]domain.Artifact, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)
	deadline := p.now().Add(p.maxWait)

	var lastStatus domain.TaskStatus

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := p.querier.QueryStatus(ctx, taskID)
		switch {
		case err != nil:
			log.Warn("status query failed, will retry",
				"task_id", taskID,
				"error", err)
		default:
			if record.Status != lastStatus {
				lastStatus = record.Status
				if onStatus != nil {
					onStatus(record.Status)
				}
			}

			if record.Status.IsTerminal() {
				if record.Status == domain.TaskStatusComplete {
					return record.Artifacts, nil
				}
				return nil, &GenerationFailedError{Status: record.Status}
			}
		}

		if !p.now().Before(deadline) {
			log.Warn("poll deadline exceeded",
				"task_id", taskID,
				"last_status", lastStatus)
			return nil, ErrTimeout
		}

		if err := p.sleep(ctx, p.interval); err != nil {
			return nil, err
		}
	}
}

// sleepContext sleeps for d or until ctx is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
