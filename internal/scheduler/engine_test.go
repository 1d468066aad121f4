package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInFireOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Arm(Trigger{ID: "later", FireAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("arm later: %v", err)
	}
	if err := engine.Arm(Trigger{ID: "sooner", FireAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("arm sooner: %v", err)
	}

	first := waitTrigger(t, engine.C(), time.Second)
	second := waitTrigger(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineCarriesActivityPayload(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	if err := engine.Arm(Trigger{
		ID:         "tr-1",
		ActivityID: "act-1",
		Title:      "Activity reminder",
		Body:       "Morning run",
		FireAt:     time.Now().Add(10 * time.Millisecond),
	}); err != nil {
		t.Fatalf("arm: %v", err)
	}

	got := waitTrigger(t, engine.C(), time.Second)
	if got.ActivityID != "act-1" || got.Body != "Morning run" {
		t.Fatalf("unexpected payload: %#v", got)
	}
}

func TestEngineDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	fireAt := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Arm(Trigger{ID: "tr", FireAt: fireAt}); err != nil {
			t.Fatalf("arm: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped triggers > 0, got %d", engine.Dropped())
	}
}

func TestArmValidatesFireTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Arm(Trigger{ID: "bad"}); err != ErrInvalidFireTime {
		t.Fatalf("expected ErrInvalidFireTime, got %v", err)
	}
}

func TestArmAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Arm(Trigger{ID: "tr", FireAt: time.Now().Add(time.Minute)}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func waitTrigger(t *testing.T, ch <-chan Trigger, timeout time.Duration) Trigger {
	t.Helper()
	select {
	case tr := <-ch:
		return tr
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for trigger")
		return Trigger{}
	}
}
