package cli

import (
	"context"
	"errors"

	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/client/store"
	"github.com/agrivision/agrivision/internal/common"
)

// SoilHealth fetches the current soil metrics, mirrors them to the store
// for other views, and optionally requests a fertilizer recommendation.
func (a *App) SoilHealth(ctx context.Context) error {
	return a.guard(ctx, a.soilView)
}

func (a *App) soilView(ctx context.Context) error {
	a.println(titleStyle.Render("Soil health monitor"))
	a.println(mutedStyle.Render("Loading…"))

	soil, err := fetchJSON[models.SoilSnapshot](ctx, a.backend, "/dashboard/soil")
	if errors.Is(err, common.ErrAuthExpired) {
		a.println(warnStyle.Render(msgSessionExpired))
		return nil
	}
	if err != nil {
		a.errorBanner(err)
		return nil
	}

	a.renderSoil(soil)
	if err := store.SetJSON(ctx, a.store, store.KeyUserSoilMetrics, soil); err != nil {
		a.log.Warn(ctx, "failed to store soil metrics", "error", err)
	}

	want, err := getYesNo(a.reader, "Request a fertilizer recommendation? [y/N]", a.out)
	if err != nil || !want {
		return err
	}
	return a.fertilizerForm(ctx, soil)
}

func (a *App) fertilizerForm(ctx context.Context, soil *models.SoilSnapshot) error {
	if a.submittingFertilizer {
		a.println(mutedStyle.Render("A recommendation request is already in progress."))
		return nil
	}

	crop, err := getSimpleText(a.reader, "Crop to fertilize", a.out)
	if err != nil {
		return err
	}
	if crop == "" {
		a.println(warnStyle.Render("Crop name is required."))
		return nil
	}

	a.submittingFertilizer = true
	defer func() { a.submittingFertilizer = false }()

	raw, err := a.backend.Post(ctx, "/soil-health/fertilizer-recommendation", models.FertilizerRequest{
		Crop:       crop,
		Nitrogen:   soil.Nitrogen,
		Phosphorus: soil.Phosphorus,
		Potassium:  soil.Potassium,
		PH:         soil.PH,
	})
	if errors.Is(err, common.ErrAuthExpired) {
		// discard the submission result entirely
		a.println(warnStyle.Render(msgSessionExpired))
		return nil
	}
	if err != nil {
		a.errorBanner(err)
		return nil
	}

	a.panel("Fertilizer recommendation", renderJSON(raw))
	return nil
}
