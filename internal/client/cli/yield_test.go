package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/agrivision/agrivision/internal/client/models"
	"github.com/agrivision/agrivision/internal/client/store"
	"github.com/agrivision/agrivision/internal/common"
)

func TestYieldForm_SubmitStoresAndShowsResult(t *testing.T) {
	be := &fakeBackend{responses: map[string]json.RawMessage{
		"/dashboard/yield-prediction": json.RawMessage(`{"data":{"yield":4.2,"crop":"wheat","confidence":0.9}}`),
	}}
	app, out := newTestApp(t, authedSession(), be)
	stubInputs(t, []string{"wheat"}, "", false)

	if err := app.YieldForm(context.Background()); err != nil {
		t.Fatalf("YieldForm err: %v", err)
	}

	if len(be.posts) != 1 {
		t.Fatalf("expected one submission, got %d", len(be.posts))
	}
	req, ok := be.posts[0].body.(models.YieldPredictionRequest)
	if !ok {
		t.Fatalf("unexpected request body: %T", be.posts[0].body)
	}
	if req.Crop != "wheat" || req.AreaHectares != 1 || req.PH != 6.5 {
		t.Errorf("unexpected request: %+v", req)
	}

	stored, err := store.GetJSON[models.YieldPrediction](context.Background(), app.store, store.KeyYieldPrediction)
	if err != nil || stored == nil {
		t.Fatalf("prediction not handed off: %v", err)
	}
	if stored.YieldTonnes != 4.2 {
		t.Errorf("stored yield = %v, want 4.2", stored.YieldTonnes)
	}

	text := out.String()
	if !strings.Contains(text, "Yield forecast") || !strings.Contains(text, "4.2") {
		t.Errorf("results view not rendered after submit: %q", text)
	}
}

func TestYieldForm_AuthExpiredDiscardsResult(t *testing.T) {
	be := &fakeBackend{errs: map[string]error{
		"/dashboard/yield-prediction": common.ErrAuthExpired,
	}}
	app, out := newTestApp(t, authedSession(), be)
	stubInputs(t, []string{"wheat"}, "", false)

	if err := app.YieldForm(context.Background()); err != nil {
		t.Fatalf("YieldForm err: %v", err)
	}

	if v, _ := app.store.Get(context.Background(), store.KeyYieldPrediction); v != "" {
		t.Errorf("expired submission must not be stored, got %q", v)
	}
	if !strings.Contains(out.String(), "Session expired") {
		t.Error("expected a session-expired notice")
	}
}

func TestYieldForm_EmptyCropNeverSubmits(t *testing.T) {
	be := &fakeBackend{}
	app, out := newTestApp(t, authedSession(), be)
	stubInputs(t, []string{""}, "", false)

	if err := app.YieldForm(context.Background()); err != nil {
		t.Fatalf("YieldForm err: %v", err)
	}
	if len(be.posts) != 0 {
		t.Error("validation failure must not reach the network")
	}
	if !strings.Contains(out.String(), "required") {
		t.Error("expected an inline validation message")
	}
}

func TestYieldForm_RejectsConcurrentSubmit(t *testing.T) {
	be := &fakeBackend{}
	app, out := newTestApp(t, authedSession(), be)
	app.submittingYield = true

	if err := app.YieldForm(context.Background()); err != nil {
		t.Fatalf("YieldForm err: %v", err)
	}
	if len(be.posts) != 0 {
		t.Error("an in-flight submission must block a second one")
	}
	if !strings.Contains(out.String(), "already being submitted") {
		t.Error("expected an in-flight notice")
	}
}

func TestYieldForm_MalformedResponse(t *testing.T) {
	be := &fakeBackend{responses: map[string]json.RawMessage{
		"/dashboard/yield-prediction": json.RawMessage(`{"unexpected":true}`),
	}}
	app, out := newTestApp(t, authedSession(), be)
	stubInputs(t, []string{"wheat"}, "", false)

	if err := app.YieldForm(context.Background()); err != nil {
		t.Fatalf("YieldForm err: %v", err)
	}
	if v, _ := app.store.Get(context.Background(), store.KeyYieldPrediction); v != "" {
		t.Errorf("malformed response must not be stored, got %q", v)
	}
	if !strings.Contains(out.String(), "malformed") {
		t.Error("expected an error banner")
	}
}

func TestYieldResults_EmptyState(t *testing.T) {
	app, out := newTestApp(t, authedSession(), &fakeBackend{})

	if err := app.YieldResults(context.Background()); err != nil {
		t.Fatalf("YieldResults err: %v", err)
	}
	if !strings.Contains(out.String(), "No prediction yet") {
		t.Errorf("expected the empty state, got %q", out.String())
	}
}

func TestYieldResults_RendersStoredPrediction(t *testing.T) {
	app, out := newTestApp(t, authedSession(), &fakeBackend{})
	err := app.store.Set(context.Background(), store.KeyYieldPrediction,
		`{"yield":3.8,"crop":"rice","confidence":0.75}`)
	if err != nil {
		t.Fatal(err)
	}

	if err := app.YieldResults(context.Background()); err != nil {
		t.Fatalf("YieldResults err: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "rice") || !strings.Contains(text, "3.8") || !strings.Contains(text, "75%") {
		t.Errorf("stored prediction not rendered: %q", text)
	}
}
