package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/common"
)

// Reports renders the market-price report from the analytics endpoint.
func (a *App) Reports(ctx context.Context) error {
	return a.guard(ctx, a.reportsView)
}

// ProfitableCrops renders the profitability ranking from the same endpoint.
func (a *App) ProfitableCrops(ctx context.Context) error {
	return a.guard(ctx, a.cropsView)
}

func (a *App) reportsView(ctx context.Context) error {
	a.println(titleStyle.Render("Market report"))
	analytics, ok := a.fetchAnalytics(ctx)
	if !ok {
		return nil
	}

	rows := make([][]string, 0, len(analytics.MarketData))
	for _, m := range analytics.MarketData {
		rows = append(rows, []string{m.Crop, fmt.Sprintf("%.0f", m.Price), m.Trend})
	}
	a.println(renderTable([]string{"Crop", "Price (₹/q)", "Trend"}, rows))
	return nil
}

func (a *App) cropsView(ctx context.Context) error {
	a.println(titleStyle.Render("Profitable crops"))
	analytics, ok := a.fetchAnalytics(ctx)
	if !ok {
		return nil
	}
	a.renderCropTable(analytics.ProfitableCrops)
	return nil
}

// fetchAnalytics performs the shared fetch. ok is false only on auth
// expiry; other failures degrade to the fallback dataset under an error
// banner so the view stays populated.
func (a *App) fetchAnalytics(ctx context.Context) (*models.Analytics, bool) {
	a.println(mutedStyle.Render("Loading…"))

	analytics, err := fetchJSON[models.Analytics](ctx, a.backend, "/dashboard/analytics")
	if errors.Is(err, common.ErrAuthExpired) {
		a.println(warnStyle.Render(msgSessionExpired))
		return nil, false
	}
	if err != nil {
		a.errorBanner(err)
		fb := fallbackAnalytics()
		return &fb, true
	}
	return analytics, true
}
