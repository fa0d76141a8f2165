package cli

import "context"

// guard gates a protected view behind the session state: while the session
// is still hydrating it renders a neutral notice and does nothing else;
// when anonymous it sends the user to the login view instead of the target
// (the guarded view never runs); otherwise the view runs unchanged.
func (a *App) guard(ctx context.Context, view func(context.Context) error) error {
	snap := a.session.Snapshot()

	if snap.IsLoading {
		a.println(mutedStyle.Render("Session is loading, try again in a moment."))
		return nil
	}

	if !snap.IsAuthenticated {
		a.println(warnStyle.Render("You need to sign in first."))
		return a.Login(ctx)
	}

	return view(ctx)
}
