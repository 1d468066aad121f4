package notify

import (
	"context"
	"errors"
	"testing"
)

func TestDesktopAuthorizerResolvesOnce(t *testing.T) {
	probes := 0
	auth := &DesktopAuthorizer{
		goos: "linux",
		lookPath: func(string) (string, error) {
			probes++
			return "/usr/bin/notify-send", nil
		},
	}
	ctx := context.Background()

	if got := auth.Status(ctx); got != AuthNotDetermined {
		t.Fatalf("expected notDetermined before probe, got %s", got)
	}

	granted, err := auth.Request(ctx)
	if err != nil || !granted {
		t.Fatalf("expected grant, got granted=%v err=%v", granted, err)
	}
	if got := auth.Status(ctx); got != AuthAuthorized {
		t.Fatalf("expected authorized after probe, got %s", got)
	}

	if _, err := auth.Request(ctx); err != nil {
		t.Fatalf("second request: %v", err)
	}
	if probes != 1 {
		t.Fatalf("expected one probe, got %d", probes)
	}
}

func TestDesktopAuthorizerDeniesWhenToolMissing(t *testing.T) {
	auth := &DesktopAuthorizer{
		goos: "linux",
		lookPath: func(string) (string, error) {
			return "", errors.New("not found")
		},
	}
	ctx := context.Background()

	granted, err := auth.Request(ctx)
	if err != nil || granted {
		t.Fatalf("expected denial, got granted=%v err=%v", granted, err)
	}
	if got := auth.Status(ctx); got != AuthDenied {
		t.Fatalf("expected denied, got %s", got)
	}
}

func TestDesktopAuthorizerUnsupportedPlatform(t *testing.T) {
	auth := &DesktopAuthorizer{goos: "plan9"}
	ctx := context.Background()

	if got := auth.Status(ctx); got != AuthEphemeral {
		t.Fatalf("expected ephemeral on unsupported platform, got %s", got)
	}
	if granted, _ := auth.Request(ctx); granted {
		t.Fatal("expected no grant on unsupported platform")
	}
}

func TestStaticAuthorizer(t *testing.T) {
	denied := StaticAuthorizer{Fixed: AuthDenied}
	if granted, _ := denied.Request(context.Background()); granted {
		t.Fatal("denied authorizer must not grant")
	}
	provisional := StaticAuthorizer{Fixed: AuthProvisional}
	if granted, _ := provisional.Request(context.Background()); !granted {
		t.Fatal("provisional authorizer must grant")
	}
}
