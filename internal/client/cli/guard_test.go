package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/agrivision/agrivision/internal/client/session"
)

func TestGuard_LoadingRendersNoticeOnly(t *testing.T) {
	sess := &fakeSession{snap: session.Snapshot{IsLoading: true}}
	app, out := newTestApp(t, sess, &fakeBackend{})

	viewRan := false
	err := app.guard(context.Background(), func(context.Context) error {
		viewRan = true
		return nil
	})
	if err != nil {
		t.Fatalf("guard err: %v", err)
	}
	if viewRan {
		t.Error("view must not run while the session is loading")
	}
	if !strings.Contains(out.String(), "loading") {
		t.Errorf("expected a loading notice, got: %q", out.String())
	}
	// no side effects either: nothing was fetched
	if sess.loginCalls != 0 {
		t.Error("guard must not trigger login while loading")
	}
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	sess := &fakeSession{}
	app, _ := newTestApp(t, sess, &fakeBackend{})
	stubInputs(t, []string{"alice@farm.example"}, "x", false)

	viewRan := false
	err := app.guard(context.Background(), func(context.Context) error {
		viewRan = true
		return nil
	})
	if err != nil {
		t.Fatalf("guard err: %v", err)
	}
	if viewRan {
		t.Error("protected view must not run anonymously")
	}
	if sess.loginCalls != 1 {
		t.Errorf("expected login view to run instead, got %d calls", sess.loginCalls)
	}
}

func TestGuard_AuthenticatedRunsView(t *testing.T) {
	app, _ := newTestApp(t, authedSession(), &fakeBackend{})

	viewRan := false
	if err := app.guard(context.Background(), func(context.Context) error {
		viewRan = true
		return nil
	}); err != nil {
		t.Fatalf("guard err: %v", err)
	}
	if !viewRan {
		t.Error("authenticated view should run")
	}
}
