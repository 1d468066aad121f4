package reminder

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/notify"
	"github.com/sandeepkv93/habitd/internal/scheduler"
)

type fakeAuthorizer struct {
	status   notify.AuthStatus
	grant    bool
	requests int
}

func (f *fakeAuthorizer) Status(context.Context) notify.AuthStatus {
	return f.status
}

func (f *fakeAuthorizer) Request(context.Context) (bool, error) {
	f.requests++
	return f.grant, nil
}

func newTestScheduler(t *testing.T, auth notify.Authorizer) (*Scheduler, *scheduler.Engine) {
	t.Helper()
	engine := scheduler.NewEngine(8)
	engine.Start()
	t.Cleanup(engine.Stop)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScheduler(auth, engine, log), engine
}

func testActivity() model.Activity {
	return model.Activity{
		ID:       "act-1",
		Title:    "Morning run",
		Category: model.CategoryFitness,
		History:  model.History{},
	}
}

func TestRequestAuthorizationPromptsOnce(t *testing.T) {
	auth := &fakeAuthorizer{status: notify.AuthNotDetermined, grant: true}
	s, _ := newTestScheduler(t, auth)
	ctx := context.Background()

	if !s.RequestAuthorization(ctx) {
		t.Fatal("expected first request to resolve true")
	}
	if !s.RequestAuthorization(ctx) {
		t.Fatal("expected second request to resolve true")
	}
	if auth.requests != 1 {
		t.Fatalf("expected exactly one prompt, got %d", auth.requests)
	}
}

func TestRequestAuthorizationAlreadyAuthorizedSkipsPrompt(t *testing.T) {
	auth := &fakeAuthorizer{status: notify.AuthAuthorized}
	s, _ := newTestScheduler(t, auth)

	if !s.RequestAuthorization(context.Background()) {
		t.Fatal("expected true for already-authorized status")
	}
	if auth.requests != 0 {
		t.Fatalf("expected no prompt, got %d", auth.requests)
	}
}

func TestScheduleDeniedMakesNoRegistration(t *testing.T) {
	auth := &fakeAuthorizer{status: notify.AuthDenied, grant: false}
	s, engine := newTestScheduler(t, auth)

	outcome := s.Schedule(context.Background(), testActivity(), time.Now().Add(10*time.Millisecond))
	if outcome != OutcomeDenied {
		t.Fatalf("expected OutcomeDenied, got %s", outcome)
	}

	select {
	case tr := <-engine.C():
		t.Fatalf("unexpected trigger registered: %#v", tr)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestScheduleAuthorizedRegistersTrigger(t *testing.T) {
	auth := &fakeAuthorizer{status: notify.AuthAuthorized}
	s, engine := newTestScheduler(t, auth)
	act := testActivity()

	outcome := s.Schedule(context.Background(), act, time.Now().Add(10*time.Millisecond))
	if outcome != OutcomeScheduled {
		t.Fatalf("expected OutcomeScheduled, got %s", outcome)
	}

	select {
	case tr := <-engine.C():
		if tr.ActivityID != act.ID {
			t.Fatalf("trigger does not correlate to activity: %#v", tr)
		}
		if tr.Body != act.Title {
			t.Fatalf("expected body %q, got %q", act.Title, tr.Body)
		}
		if tr.ID == "" {
			t.Fatal("expected a registration id")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for trigger")
	}
}

func TestScheduleNotDeterminedPromptsThenRegisters(t *testing.T) {
	auth := &fakeAuthorizer{status: notify.AuthNotDetermined, grant: true}
	s, engine := newTestScheduler(t, auth)

	outcome := s.Schedule(context.Background(), testActivity(), time.Now().Add(10*time.Millisecond))
	if outcome != OutcomeScheduled {
		t.Fatalf("expected OutcomeScheduled, got %s", outcome)
	}
	if auth.requests != 1 {
		t.Fatalf("expected one prompt, got %d", auth.requests)
	}

	select {
	case <-engine.C():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for trigger")
	}
}

func TestScheduleEphemeralIsUnsupported(t *testing.T) {
	auth := &fakeAuthorizer{status: notify.AuthEphemeral}
	s, _ := newTestScheduler(t, auth)

	outcome := s.Schedule(context.Background(), testActivity(), time.Now().Add(time.Minute))
	if outcome != OutcomeUnsupported {
		t.Fatalf("expected OutcomeUnsupported, got %s", outcome)
	}
	if auth.requests != 0 {
		t.Fatalf("expected no prompt for unsupported status, got %d", auth.requests)
	}
}

func TestScheduleEngineFailureIsReportedNotThrown(t *testing.T) {
	auth := &fakeAuthorizer{status: notify.AuthAuthorized}
	engine := scheduler.NewEngine(1)
	engine.Start()
	engine.Stop()
	s := NewScheduler(auth, engine, slog.New(slog.NewTextHandler(io.Discard, nil)))

	outcome := s.Schedule(context.Background(), testActivity(), time.Now().Add(time.Minute))
	if outcome != OutcomeFailed {
		t.Fatalf("expected OutcomeFailed, got %s", outcome)
	}
}
