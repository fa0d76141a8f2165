package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/client/store"
	"github.com/agrivision/agrivision/internal/common"
)

// YieldForm collects the prediction inputs, submits them, hands the result
// off through the store, and lands on the results view.
func (a *App) YieldForm(ctx context.Context) error {
	return a.guard(ctx, a.yieldFormView)
}

// YieldResults renders the last prediction handed off by the form.
func (a *App) YieldResults(ctx context.Context) error {
	return a.guard(ctx, a.yieldResultsView)
}

func (a *App) yieldFormView(ctx context.Context) error {
	if a.submittingYield {
		a.println(mutedStyle.Render("A prediction is already being submitted."))
		return nil
	}

	a.println(titleStyle.Render("Yield prediction"))

	crop, err := getSimpleText(a.reader, "Crop", a.out)
	if err != nil {
		return err
	}
	if crop == "" {
		a.println(warnStyle.Render("Crop name is required."))
		return nil
	}

	area, err := a.readFloat("Area (hectares)", 1)
	if err != nil {
		return a.inlineValidation(err)
	}
	if area <= 0 {
		a.println(warnStyle.Render("Area must be positive."))
		return nil
	}

	nitrogen, err := a.readFloat("Nitrogen (kg/ha)", 50)
	if err != nil {
		return a.inlineValidation(err)
	}
	phosphorus, err := a.readFloat("Phosphorus (kg/ha)", 40)
	if err != nil {
		return a.inlineValidation(err)
	}
	potassium, err := a.readFloat("Potassium (kg/ha)", 40)
	if err != nil {
		return a.inlineValidation(err)
	}
	ph, err := a.readFloat("Soil pH", 6.5)
	if err != nil {
		return a.inlineValidation(err)
	}
	rainfall, err := a.readFloat("Expected rainfall (mm)", 120)
	if err != nil {
		return a.inlineValidation(err)
	}

	a.submittingYield = true
	defer func() { a.submittingYield = false }()

	raw, err := a.backend.Post(ctx, "/dashboard/yield-prediction", models.YieldPredictionRequest{
		Crop:         crop,
		AreaHectares: area,
		Nitrogen:     nitrogen,
		Phosphorus:   phosphorus,
		Potassium:    potassium,
		PH:           ph,
		RainfallMM:   rainfall,
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

	var res struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &res); err != nil || len(res.Data) == 0 {
		a.errorBanner(fmt.Errorf("malformed prediction response"))
		return nil
	}

	if err := a.store.Set(ctx, store.KeyYieldPrediction, string(res.Data)); err != nil {
		a.log.Warn(ctx, "failed to hand off prediction result", "error", err)
	}

	return a.yieldResultsView(ctx)
}

func (a *App) yieldResultsView(ctx context.Context) error {
	prediction, err := store.GetJSON[models.YieldPrediction](ctx, a.store, store.KeyYieldPrediction)
	if err != nil {
		a.errorBanner(err)
		return nil
	}
	if prediction == nil {
		a.println(mutedStyle.Render("No prediction yet — run 'yield' first."))
		return nil
	}

	lines := []string{fmt.Sprintf("Expected yield  %.1f t", prediction.YieldTonnes)}
	if prediction.Crop != "" {
		lines = append([]string{fmt.Sprintf("Crop            %s", prediction.Crop)}, lines...)
	}
	if prediction.Confidence > 0 {
		lines = append(lines, fmt.Sprintf("Confidence      %.0f%%", prediction.Confidence*100))
	}
	a.panel("Yield forecast", lines...)
	return nil
}

func (a *App) readFloat(prompt string, def float64) (float64, error) {
	return getFloat(a.reader, prompt, def, a.out)
}

// inlineValidation renders a validation failure and swallows it; I/O errors
// propagate.
func (a *App) inlineValidation(err error) error {
	if errors.Is(err, common.ErrValidation) {
		a.println(warnStyle.Render(err.Error()))
		return nil
	}
	return err
}
