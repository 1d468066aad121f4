// Package reminder schedules best-effort one-shot reminders for
// activities: it resolves notification authorization, then registers a
// trigger with the engine. It does not track firing or support
// cancellation.
package reminder

import (
	"context"
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/notify"
	"github.com/sandeepkv93/habitd/internal/scheduler"
)

// Outcome is the caller-visible result of a schedule attempt. Failures
// never propagate as errors past this package; details go to the
// diagnostic log only.
type Outcome string

const (
	OutcomeScheduled   Outcome = "scheduled"
	OutcomeDenied      Outcome = "denied"
	OutcomeUnsupported Outcome = "unsupported"
	OutcomeFailed      Outcome = "failed"
)

type Scheduler struct {
	auth   notify.Authorizer
	engine *scheduler.Engine
	log    *slog.Logger

	mu       sync.Mutex
	resolved bool
	granted  bool
}

func NewScheduler(auth notify.Authorizer, engine *scheduler.Engine, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		auth:   auth,
		engine: engine,
		log:    log,
	}
}

// RequestAuthorization resolves whether alerts may be shown, prompting at
// most once. Repeat calls return the first resolution without a second
// prompt; an already-authorized or already-denied platform status resolves
// immediately.
func (s *Scheduler) RequestAuthorization(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestLocked(ctx)
}

func (s *Scheduler) requestLocked(ctx context.Context) bool {
	switch s.auth.Status(ctx) {
	case notify.AuthAuthorized, notify.AuthProvisional:
		s.resolved, s.granted = true, true
		return true
	case notify.AuthDenied:
		s.resolved, s.granted = true, false
		return false
	}
	if s.resolved {
		return s.granted
	}
	granted, err := s.auth.Request(ctx)
	if err != nil {
		s.log.Warn("authorization request failed", "err", err)
		return false
	}
	s.resolved, s.granted = true, granted
	return granted
}

// Schedule registers a one-shot trigger for the activity at the given
// local time. The notification body carries the activity title; the
// trigger id correlates back to the activity.
func (s *Scheduler) Schedule(ctx context.Context, act model.Activity, at time.Time) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.auth.Status(ctx) {
	case notify.AuthNotDetermined, notify.AuthDenied:
		if !s.requestLocked(ctx) {
			s.log.Info("reminder not scheduled, authorization denied", "activity", act.ID)
			return OutcomeDenied
		}
	case notify.AuthAuthorized, notify.AuthProvisional:
		// Register directly.
	default:
		// Ephemeral or anything unrecognized: explicitly unsupported.
		s.log.Info("reminder not scheduled, unsupported authorization status", "activity", act.ID)
		return OutcomeUnsupported
	}

	tr := scheduler.Trigger{
		ID:         ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		ActivityID: act.ID,
		Title:      "Activity reminder",
		Body:       act.Title,
		FireAt:     at,
	}
	if err := s.engine.Arm(tr); err != nil {
		s.log.Error("reminder registration failed", "activity", act.ID, "err", err)
		return OutcomeFailed
	}
	s.log.Info("reminder scheduled", "activity", act.ID, "trigger", tr.ID, "at", at)
	return OutcomeScheduled
}
