package cli

import (
	"context"
	"net/url"
	"strconv"
)

// LocalWeather fetches the public local-weather endpoint; no session is
// required, so it is available from the anonymous prompt and must never
// send the bearer token.
func (a *App) LocalWeather(ctx context.Context) error {
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

	a.println(mutedStyle.Render("Loading…"))
	raw, err := a.backend.GetPublic(ctx, "/weather/current?"+q.Encode())
	if err != nil {
		a.errorBanner(err)
		return nil
	}

	a.panel("Local weather", renderJSON(raw))
	return nil
}
