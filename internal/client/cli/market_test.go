package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/agrivision/agrivision/internal/common"
)

func TestReports_RendersMarketData(t *testing.T) {
	be := &fakeBackend{responses: map[string]json.RawMessage{
		"/dashboard/analytics": json.RawMessage(
			`{"marketData":[{"crop":"wheat","price":2125,"trend":"steady"}],"profitableCrops":[]}`),
	}}
	app, out := newTestApp(t, authedSession(), be)

	if err := app.Reports(context.Background()); err != nil {
		t.Fatalf("Reports err: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "wheat") || !strings.Contains(text, "2125") || !strings.Contains(text, "steady") {
		t.Errorf("market rows not rendered: %q", text)
	}
}

func TestReports_FallbackKeepsViewPopulated(t *testing.T) {
	be := &fakeBackend{errs: map[string]error{
		"/dashboard/analytics": &statusErrStub{msg: "server returned 500: analytics down"},
	}}
	app, out := newTestApp(t, authedSession(), be)

	if err := app.Reports(context.Background()); err != nil {
		t.Fatalf("Reports err: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "analytics down") {
		t.Error("fallback must not suppress the error banner")
	}
	if !strings.Contains(text, "rice") {
		t.Errorf("fallback market data should render: %q", text)
	}
}

func TestProfitableCrops_RendersRanking(t *testing.T) {
	be := &fakeBackend{responses: map[string]json.RawMessage{
		"/dashboard/analytics": json.RawMessage(
			`{"marketData":[],"profitableCrops":[{"name":"soybean","season":"kharif","profitability":0.82}]}`),
	}}
	app, out := newTestApp(t, authedSession(), be)

	if err := app.ProfitableCrops(context.Background()); err != nil {
		t.Fatalf("ProfitableCrops err: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "soybean") || !strings.Contains(text, "82%") {
		t.Errorf("ranking not rendered: %q", text)
	}
}

func TestProfitableCrops_FallbackOnError(t *testing.T) {
	be := &fakeBackend{errs: map[string]error{
		"/dashboard/analytics": &statusErrStub{msg: "server returned 500"},
	}}
	app, out := newTestApp(t, authedSession(), be)

	if err := app.ProfitableCrops(context.Background()); err != nil {
		t.Fatalf("ProfitableCrops err: %v", err)
	}
	if !strings.Contains(out.String(), "chickpea") {
		t.Errorf("fallback ranking should render: %q", out.String())
	}
}

func TestMarketViews_AuthExpiredSkipsFallback(t *testing.T) {
	be := &fakeBackend{errs: map[string]error{
		"/dashboard/analytics": common.ErrAuthExpired,
	}}
	app, out := newTestApp(t, authedSession(), be)

	if err := app.Reports(context.Background()); err != nil {
		t.Fatalf("Reports err: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Session expired") {
		t.Error("expected a session-expired notice")
	}
	if strings.Contains(text, "steady") {
		t.Error("auth expiry must not degrade to the fallback dataset")
	}
}
