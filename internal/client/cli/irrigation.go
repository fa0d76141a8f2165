package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/common"
)

// Irrigation shows the scheduled tasks, optionally fetches a fresh
// recommendation for the user's field, and can persist the chosen slot.
func (a *App) Irrigation(ctx context.Context) error {
	return a.guard(ctx, a.irrigationView)
}

func (a *App) irrigationView(ctx context.Context) error {
	a.println(titleStyle.Render("Irrigation"))
	a.println(mutedStyle.Render("Loading schedule…"))

	sched, err := fetchJSON[models.IrrigationSchedule](ctx, a.backend, "/irrigation/schedule")
	if errors.Is(err, common.ErrAuthExpired) {
		a.println(warnStyle.Render(msgSessionExpired))
		return nil
	}
	if err != nil {
		a.errorBanner(err)
	} else {
		a.renderSchedule(sched.Schedule)
	}

	want, err := getYesNo(a.reader, "Fetch an irrigation recommendation? [y/N]", a.out)
	if err != nil || !want {
		return err
	}

	crop, err := getSimpleText(a.reader, "Crop", a.out)
	if err != nil {
		return err
	}
	lat, err := a.readFloat("Latitude", a.config.DefaultLat)
	if err != nil {
		return a.inlineValidation(err)
	}
	lon, err := a.readFloat("Longitude", a.config.DefaultLon)
	if err != nil {
		return a.inlineValidation(err)
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	if crop != "" {
		q.Set("crop", crop)
	}

	rec, err := fetchJSON[models.IrrigationRecommendation](ctx, a.backend, "/irrigation/recommendation?"+q.Encode())
	if errors.Is(err, common.ErrAuthExpired) {
		a.println(warnStyle.Render(msgSessionExpired))
		return nil
	}
	if err != nil {
		a.errorBanner(err)
		return nil
	}
	if !rec.Success {
		a.println(warnStyle.Render("No recommendation available for these inputs."))
		return nil
	}

	a.panel("Irrigation advice", rec.Recommendation)
	if len(rec.WeatherData) > 0 {
		a.println(mutedStyle.Render(renderJSON(rec.WeatherData)))
	}

	confirm, err := getYesNo(a.reader, "Log this irrigation slot? [y/N]", a.out)
	if err != nil || !confirm {
		return err
	}
	return a.logIrrigation(ctx, rec.Recommendation)
}

func (a *App) logIrrigation(ctx context.Context, recommendation string) error {
	if a.submittingIrrigation {
		a.println(mutedStyle.Render("An irrigation entry is already being logged."))
		return nil
	}
	a.submittingIrrigation = true
	defer func() { a.submittingIrrigation = false }()

	raw, err := a.backend.Post(ctx, "/irrigation/log-schedule", map[string]any{
		"id":             uuid.NewString(),
		"recommendation": recommendation,
		"logged_at":      time.Now().UTC().Format(time.RFC3339),
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
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(raw, &res); err != nil || !res.Success {
		a.errorBanner(fmt.Errorf("the server did not confirm the entry"))
		return nil
	}

	a.println(titleStyle.Render("Irrigation slot logged."))
	return nil
}

func (a *App) renderSchedule(tasks []models.IrrigationTask) {
	if len(tasks) == 0 {
		a.println(mutedStyle.Render("Nothing scheduled."))
		return
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t.Field, t.StartAt, fmt.Sprintf("%d min", t.DurationMinutes)})
	}
	a.println(renderTable([]string{"Field", "Start", "Duration"}, rows))
}
