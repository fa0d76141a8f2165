package cli

import (
	"context"
	"strings"

	"github.com/agrivision/agrivision/internal/client/session"
)

// getSimpleText, getPassword and getYesNo are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getYesNo      = GetYesNo
	getFloat      = GetFloat
)

// Login prompts for credentials and attempts to authenticate. Empty fields
// are rejected inline without touching the network; a server-side failure
// is rendered and the session is left unchanged.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if email == "" || len(password) == 0 {
		a.println(warnStyle.Render("Email and password are required."))
		return nil
	}

	remember, err := getYesNo(a.reader, "Remember me? [y/N]", a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, string(password), remember); err != nil {
		a.errorBanner(err)
		return err
	}

	a.println(titleStyle.Render("Welcome back!"))
	return nil
}

// Register prompts for a new-account profile and creates it. On success the
// session is signed in immediately, as with login.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if !strings.Contains(email, "@") || len(password) == 0 {
		a.println(warnStyle.Render("A valid email and a non-empty password are required."))
		return nil
	}

	req := session.RegisterRequest{Username: username, Email: email, Password: string(password)}
	if err := a.session.Register(ctx, req); err != nil {
		a.errorBanner(err)
		return err
	}

	a.println(titleStyle.Render("Account created — you are signed in."))
	return nil
}

// Logout unconditionally signs out and returns to the anonymous prompt.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		a.errorBanner(err)
		return err
	}
	a.println(mutedStyle.Render("Signed out."))
	return nil
}
