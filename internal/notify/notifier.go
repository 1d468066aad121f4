// Package notify wraps the host OS notification facility: delivery of a
// single desktop notification and the authorization handshake in front of
// it.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// AuthStatus mirrors the states the platform authorization check can
// report.
type AuthStatus string

const (
	AuthNotDetermined AuthStatus = "notDetermined"
	AuthDenied        AuthStatus = "denied"
	AuthAuthorized    AuthStatus = "authorized"
	AuthProvisional   AuthStatus = "provisional"
	AuthEphemeral     AuthStatus = "ephemeral"
)

// Authorizer answers whether alerts may be shown. Request may prompt or
// probe the platform; Status never does.
type Authorizer interface {
	Status(ctx context.Context) AuthStatus
	Request(ctx context.Context) (bool, error)
}

type Notification struct {
	ID         string
	ActivityID string
	Title      string
	Body       string
}

type Notifier interface {
	Send(n Notification) error
}

// NoopNotifier swallows notifications. Used when desktop delivery is
// disabled.
type NoopNotifier struct{}

func (NoopNotifier) Send(Notification) error { return nil }

// ExecNotifier shells out to the platform notification tool.
type ExecNotifier struct{}

func (ExecNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return fmt.Errorf("notify: unsupported platform %s", runtime.GOOS)
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// DesktopAuthorizer probes for the platform notification tool. The probe
// runs once, on the first Request; until then the status is
// notDetermined. Platforms with no supported tool report ephemeral, which
// schedulers treat as unsupported.
type DesktopAuthorizer struct {
	mu       sync.Mutex
	resolved bool
	granted  bool
	goos     string
	lookPath func(string) (string, error)
}

func NewDesktopAuthorizer() *DesktopAuthorizer {
	return &DesktopAuthorizer{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
	}
}

func (a *DesktopAuthorizer) Status(context.Context) AuthStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.goos != "linux" && a.goos != "darwin" {
		return AuthEphemeral
	}
	if !a.resolved {
		return AuthNotDetermined
	}
	if a.granted {
		return AuthAuthorized
	}
	return AuthDenied
}

func (a *DesktopAuthorizer) Request(context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.goos != "linux" && a.goos != "darwin" {
		return false, nil
	}
	if a.resolved {
		return a.granted, nil
	}
	tool := "notify-send"
	if a.goos == "darwin" {
		tool = "osascript"
	}
	_, err := a.lookPath(tool)
	a.resolved = true
	a.granted = err == nil
	return a.granted, nil
}

// StaticAuthorizer reports a fixed status; Request grants only for the
// authorized states. Useful for tests and for forcing notifications off.
type StaticAuthorizer struct {
	Fixed AuthStatus
}

func (a StaticAuthorizer) Status(context.Context) AuthStatus {
	return a.Fixed
}

func (a StaticAuthorizer) Request(context.Context) (bool, error) {
	return a.Fixed == AuthAuthorized || a.Fixed == AuthProvisional, nil
}
