package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/client/store"
	"github.com/agrivision/agrivision/internal/common"
)

// Dashboard renders the main advisory view: weather, soil, market analytics
// and alerts. A fresh weather cache entry is shown immediately as a seed,
// then unconditionally replaced by the fetched result.
func (a *App) Dashboard(ctx context.Context) error {
	return a.guard(ctx, a.dashboardView)
}

func (a *App) dashboardView(ctx context.Context) error {
	a.println(titleStyle.Render("Farm dashboard"))

	seeded := false
	if cached, err := store.GetJSON[store.Cached[models.WeatherSnapshot]](ctx, a.store, store.KeyWeatherData); err == nil &&
		cached != nil && cached.Fresh(a.config.WeatherCacheTTL) {
		a.println(mutedStyle.Render("cached weather, refreshing…"))
		a.renderWeather(&cached.Data)
		seeded = true
	}
	if !seeded {
		a.println(mutedStyle.Render("Loading…"))
	}

	var (
		weather   *models.WeatherSnapshot
		soil      *models.SoilSnapshot
		analytics *models.Analytics
		overview  *models.Overview

		weatherErr, soilErr, analyticsErr, overviewErr error
	)

	// Four distinct slots, one in-flight request each; an auth expiry on any
	// of them aborts the whole view.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		weather, weatherErr = fetchJSON[models.WeatherSnapshot](gctx, a.backend, "/dashboard/weather")
		return abortOnAuthExpired(weatherErr)
	})
	g.Go(func() error {
		soil, soilErr = fetchJSON[models.SoilSnapshot](gctx, a.backend, "/dashboard/soil")
		return abortOnAuthExpired(soilErr)
	})
	g.Go(func() error {
		analytics, analyticsErr = fetchJSON[models.Analytics](gctx, a.backend, "/dashboard/analytics")
		return abortOnAuthExpired(analyticsErr)
	})
	g.Go(func() error {
		overview, overviewErr = fetchJSON[models.Overview](gctx, a.backend, "/dashboard/overview")
		return abortOnAuthExpired(overviewErr)
	})

	if err := g.Wait(); err != nil {
		a.println(warnStyle.Render(msgSessionExpired))
		return nil
	}

	// Weather slot: fetched result replaces the seed; errors fall back.
	switch {
	case weatherErr != nil:
		a.errorBanner(weatherErr)
		w := fallbackWeather()
		a.renderWeather(&w)
	default:
		a.renderWeather(weather)
		if err := store.SetJSON(ctx, a.store, store.KeyWeatherData,
			store.Cached[models.WeatherSnapshot]{Data: *weather, Timestamp: time.Now().UTC()}); err != nil {
			a.log.Warn(ctx, "failed to cache weather", "error", err)
		}
	}

	if soilErr != nil {
		a.errorBanner(soilErr)
	} else {
		a.renderSoil(soil)
	}

	if analyticsErr != nil {
		a.errorBanner(analyticsErr)
		fb := fallbackAnalytics()
		analytics = &fb
	}
	a.renderCropTable(analytics.ProfitableCrops)

	if overviewErr != nil {
		a.errorBanner(overviewErr)
		a.renderAlerts(fallbackAlerts())
	} else {
		a.renderAlerts(overview.Alerts)
	}

	return nil
}

// abortOnAuthExpired lets per-slot failures stay per-slot while an auth
// expiry cancels the remaining fetches.
func abortOnAuthExpired(err error) error {
	if errors.Is(err, common.ErrAuthExpired) {
		return err
	}
	return nil
}

func (a *App) renderWeather(w *models.WeatherSnapshot) {
	lines := []string{
		fmt.Sprintf("Temperature  %.1f °C", w.Temperature),
		fmt.Sprintf("Humidity     %.0f %%", w.Humidity),
		fmt.Sprintf("Wind         %.1f km/h", w.WindSpeed),
		fmt.Sprintf("Rainfall     %.1f mm", w.RainfallMM),
		fmt.Sprintf("Condition    %s", w.Condition),
	}
	if w.Location != "" {
		lines = append(lines, fmt.Sprintf("Location     %s", w.Location))
	}
	a.panel("Weather", lines...)
}

func (a *App) renderSoil(s *models.SoilSnapshot) {
	a.panel("Soil",
		fmt.Sprintf("pH           %.1f", s.PH),
		fmt.Sprintf("Moisture     %.0f %%", s.MoisturePct),
		fmt.Sprintf("N / P / K    %.0f / %.0f / %.0f", s.Nitrogen, s.Phosphorus, s.Potassium),
		fmt.Sprintf("Organic      %.1f %%", s.OrganicMatter),
	)
}

func (a *App) renderCropTable(crops []models.CropProfit) {
	rows := make([][]string, 0, len(crops))
	for _, c := range crops {
		rows = append(rows, []string{c.Name, c.Season, fmt.Sprintf("%.0f%%", c.Profitability*100)})
	}
	a.println(renderTable([]string{"Crop", "Season", "Profitability"}, rows))
}

func (a *App) renderAlerts(alerts []models.Alert) {
	if len(alerts) == 0 {
		a.println(mutedStyle.Render("No active alerts."))
		return
	}
	for _, alert := range alerts {
		line := fmt.Sprintf("[%s] %s — %s", alert.Severity, alert.Title, alert.Message)
		switch alert.Severity {
		case "critical", "high":
			a.println(errorStyle.Render(line))
		case "warning", "medium":
			a.println(warnStyle.Render(line))
		default:
			a.println(line)
		}
	}
}
