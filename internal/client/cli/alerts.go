package cli

import (
	"context"
	"errors"

	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/common"
)

// PestAlerts renders the active pest and disease alerts.
func (a *App) PestAlerts(ctx context.Context) error {
	return a.guard(ctx, a.pestAlertsView)
}

func (a *App) pestAlertsView(ctx context.Context) error {
	a.println(titleStyle.Render("Pest alerts"))
	a.println(mutedStyle.Render("Loading…"))

	overview, err := fetchJSON[models.Overview](ctx, a.backend, "/dashboard/overview")
	if errors.Is(err, common.ErrAuthExpired) {
		a.println(warnStyle.Render(msgSessionExpired))
		return nil
	}
	if err != nil {
		a.errorBanner(err)
		a.renderAlerts(fallbackAlerts())
		return nil
	}

	a.renderAlerts(overview.Alerts)
	return nil
}
