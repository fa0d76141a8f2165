package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agrivision/agrivision/internal/client/config"
	"github.com/agrivision/agrivision/internal/client/session"
	"github.com/agrivision/agrivision/internal/client/store"
	"github.com/agrivision/agrivision/internal/logging"
)

// ---- fakes ----

type fakeSession struct {
	snap session.Snapshot

	loginErr     error
	loginCalls   int
	lastEmail    string
	lastPassword string
	lastRemember bool

	registerErr  error
	registerReq  session.RegisterRequest
	logoutCalled bool
}

func (f *fakeSession) Snapshot() session.Snapshot { return f.snap }
func (f *fakeSession) Hydrate(ctx context.Context) {
	f.snap.IsLoading = false
}
func (f *fakeSession) Login(_ context.Context, email, password string, remember bool) error {
	f.loginCalls++
	f.lastEmail, f.lastPassword, f.lastRemember = email, password, remember
	if f.loginErr != nil {
		return f.loginErr
	}
	f.snap = session.Snapshot{Token: "T", IsAuthenticated: true}
	return nil
}
func (f *fakeSession) Register(_ context.Context, req session.RegisterRequest) error {
	f.registerReq = req
	return f.registerErr
}
func (f *fakeSession) Logout(context.Context) error {
	f.logoutCalled = true
	f.snap = session.Snapshot{}
	return nil
}
func (f *fakeSession) HasPermission(string) bool { return false }

type postCall struct {
	path string
	body any
}

type fakeBackend struct {
	responses map[string]json.RawMessage
	errs      map[string]error

	gets       []string
	publicGets []string
	posts      []postCall
}

func (f *fakeBackend) Get(_ context.Context, path string) (json.RawMessage, error) {
	f.gets = append(f.gets, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if res, ok := f.responses[path]; ok {
		return res, nil
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeBackend) GetPublic(_ context.Context, path string) (json.RawMessage, error) {
	f.publicGets = append(f.publicGets, path)
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if res, ok := f.responses[path]; ok {
		return res, nil
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeBackend) Post(_ context.Context, path string, body any) (json.RawMessage, error) {
	f.posts = append(f.posts, postCall{path: path, body: body})
	if err, ok := f.errs[path]; ok {
		return nil, err
	}
	if res, ok := f.responses[path]; ok {
		return res, nil
	}
	return json.RawMessage(`{}`), nil
}

// ---- test app ----

func newTestApp(t *testing.T, sess *fakeSession, be *fakeBackend) (*App, *bytes.Buffer) {
	t.Helper()

	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	return &App{
		config:  cfg,
		session: sess,
		backend: be,
		store:   st,
		log:     logging.NewSlogLogger(slog.New(slog.DiscardHandler)),
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     &out,
	}, &out
}

func authedSession() *fakeSession {
	return &fakeSession{snap: session.Snapshot{
		Token:           "T",
		IsAuthenticated: true,
		User:            nil,
	}}
}

// ---- input seams ----

func stubInputs(t *testing.T, texts []string, password string, yes bool) {
	t.Helper()
	origST, origGP, origYN, origGF := getSimpleText, getPassword, getYesNo, getFloat

	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", nil
		}
		v := texts[i]
		i++
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	getYesNo = func(_ *bufio.Reader, _ string, _ io.Writer) (bool, error) { return yes, nil }
	getFloat = func(_ *bufio.Reader, _ string, def float64, _ io.Writer) (float64, error) { return def, nil }

	t.Cleanup(func() {
		getSimpleText, getPassword, getYesNo, getFloat = origST, origGP, origYN, origGF
	})
}
