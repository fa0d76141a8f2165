package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/client/store"
	"github.com/agrivision/agrivision/internal/common"
)

func seedWeatherCache(t *testing.T, app *App, temp float64, age time.Duration) {
	t.Helper()
	err := store.SetJSON(context.Background(), app.store, store.KeyWeatherData,
		store.Cached[models.WeatherSnapshot]{
			Data:      models.WeatherSnapshot{Temperature: temp, Condition: "cached"},
			Timestamp: time.Now().Add(-age),
		})
	if err != nil {
		t.Fatal(err)
	}
}

func TestDashboard_FreshCacheSeedsThenFetchWins(t *testing.T) {
	be := &fakeBackend{responses: map[string]json.RawMessage{
		"/dashboard/weather": json.RawMessage(`{"temperature":30,"condition":"sunny"}`),
	}}
	app, out := newTestApp(t, authedSession(), be)
	seedWeatherCache(t, app, 28, 5*time.Minute)

	if err := app.Dashboard(context.Background()); err != nil {
		t.Fatalf("Dashboard err: %v", err)
	}

	text := out.String()
	seedIdx := strings.Index(text, "28.0")
	fetchIdx := strings.Index(text, "30.0")
	if seedIdx < 0 {
		t.Error("fresh cache entry should seed the view")
	}
	if fetchIdx < 0 || fetchIdx < seedIdx {
		t.Error("fetched weather must render after (and replace) the seed")
	}

	// the cache is refreshed with the fetched result
	cached, err := store.GetJSON[store.Cached[models.WeatherSnapshot]](context.Background(), app.store, store.KeyWeatherData)
	if err != nil || cached == nil {
		t.Fatalf("cache missing after fetch: %v", err)
	}
	if cached.Data.Temperature != 30 {
		t.Errorf("cache not overwritten by fetch: %+v", cached.Data)
	}
	if !cached.Fresh(10 * time.Minute) {
		t.Error("refreshed cache entry should carry a new timestamp")
	}
}

func TestDashboard_StaleCacheNotUsedAsSeed(t *testing.T) {
	be := &fakeBackend{responses: map[string]json.RawMessage{
		"/dashboard/weather": json.RawMessage(`{"temperature":30,"condition":"sunny"}`),
	}}
	app, out := newTestApp(t, authedSession(), be)
	seedWeatherCache(t, app, 19, 11*time.Minute)

	if err := app.Dashboard(context.Background()); err != nil {
		t.Fatalf("Dashboard err: %v", err)
	}
	if strings.Contains(out.String(), "19.0") {
		t.Error("stale cache entry must not seed the view")
	}
}

func TestDashboard_WeatherFailureShowsFallbackAndError(t *testing.T) {
	be := &fakeBackend{errs: map[string]error{
		"/dashboard/weather": &statusErrStub{msg: "server returned 502: model offline"},
	}}
	app, out := newTestApp(t, authedSession(), be)

	if err := app.Dashboard(context.Background()); err != nil {
		t.Fatalf("Dashboard err: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "model offline") {
		t.Error("fallback must not suppress the error banner")
	}
	if !strings.Contains(text, "sample data") {
		t.Error("fallback weather should render")
	}
}

func TestDashboard_AuthExpiredAbortsView(t *testing.T) {
	be := &fakeBackend{errs: map[string]error{
		"/dashboard/weather": common.ErrAuthExpired,
	}}
	app, out := newTestApp(t, authedSession(), be)

	if err := app.Dashboard(context.Background()); err != nil {
		t.Fatalf("Dashboard err: %v", err)
	}
	if !strings.Contains(out.String(), "Session expired") {
		t.Errorf("expected a session-expired notice, got %q", out.String())
	}
}

func TestDashboard_FetchesAllFourSlots(t *testing.T) {
	be := &fakeBackend{}
	app, _ := newTestApp(t, authedSession(), be)

	if err := app.Dashboard(context.Background()); err != nil {
		t.Fatalf("Dashboard err: %v", err)
	}

	want := map[string]bool{
		"/dashboard/weather":   false,
		"/dashboard/soil":      false,
		"/dashboard/analytics": false,
		"/dashboard/overview":  false,
	}
	for _, path := range be.gets {
		want[path] = true
	}
	for path, seen := range want {
		if !seen {
			t.Errorf("slot %s was not fetched", path)
		}
	}
}

// statusErrStub mimics an HTTP error without importing the api package.
type statusErrStub struct{ msg string }

func (e *statusErrStub) Error() string { return e.msg }
