package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/autodebugdev/autodebug/internal/core"
	"github.com/autodebugdev/autodebug/internal/lang"
	"github.com/autodebugdev/autodebug/internal/storage"
)

type fakeRunner struct {
	diag core.Diagnostics
}

func (f *fakeRunner) Execute(ctx context.Context, path string, language lang.Language) core.Diagnostics {
	return f.diag
}

type fakeFixer struct {
	fix string
}

func (f *fakeFixer) RequestFix(ctx context.Context, req core.FixRequest) (string, error) {
	return f.fix, nil
}

// newTestHandler wires a handler over a temp workspace and store. The
// fake runner reports a clean run, so lenient repairs succeed at once.
func newTestHandler(t *testing.T) (*Handler, string) {
	t.Helper()

	workspace := t.TempDir()
	cfg := config.Default()
	cfg.Project.Workspace = workspace
	cfg.Repair.Policy = "lenient"

	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	table := lang.NewTable(nil)
	engine := core.NewEngine(cfg, table, &fakeRunner{diag: core.Diagnostics{ExitCode: 0}}, &fakeFixer{}, db)

	return NewHandler(cfg, engine, db, table), workspace
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleConfig(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h.Router(), http.MethodGet, "/api/config", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cfg configResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if cfg.Model != "qwen2.5-coder:1.5b" || cfg.Policy != "lenient" {
		t.Errorf("unexpected config response: %+v", cfg)
	}
	if _, ok := cfg.Languages[".py"]; !ok {
		t.Error("config response missing language table")
	}
}

func TestHandleHistoryGreeting(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h.Router(), http.MethodGet, "/api/history", "")

	var history []chatMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(history) != 1 || history[0].Role != "assistant" {
		t.Errorf("expected a single greeting, got %+v", history)
	}
}

func TestHandleDebugValidation(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing fields", `{"target": "", "request": ""}`},
		{"unsupported type", `{"target": "script.rb", "request": "fix it"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/debug", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleDebug(t *testing.T) {
	h, workspace := newTestHandler(t)
	router := h.Router()

	target := filepath.Join(workspace, "script.py")
	if err := os.WriteFile(target, []byte("print('ok')\n"), 0644); err != nil {
		t.Fatalf("write target: %v", err)
	}

	body, _ := json.Marshal(debugRequest{Target: target, Request: "check the output"})
	rec := doJSON(t, router, http.MethodPost, "/api/debug", string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var session core.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if session.Phase != core.PhaseSucceeded {
		t.Errorf("expected succeeded session, got %s", session.Phase)
	}

	// The exchange lands in the chat history.
	rec = doJSON(t, router, http.MethodGet, "/api/history", "")
	var history []chatMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected greeting + user + assistant, got %d messages", len(history))
	}
	if history[1].Role != "user" || history[2].Role != "assistant" {
		t.Errorf("unexpected history roles: %+v", history)
	}
	if history[2].SessionID != session.ID {
		t.Errorf("assistant message not linked to session: %+v", history[2])
	}

	// The session is persisted and retrievable.
	rec = doJSON(t, router, http.MethodGet, "/api/sessions/"+session.ID, "")
	if rec.Code != http.StatusOK {
		t.Errorf("get session status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/sessions", "")
	var sessions []core.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &sessions); err != nil {
		t.Fatalf("decode sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("expected 1 stored session, got %d", len(sessions))
	}
}

func TestHandleLanguages(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h.Router(), http.MethodGet, "/api/languages", "")

	var languages map[string]lang.Language
	if err := json.Unmarshal(rec.Body.Bytes(), &languages); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(languages) != 5 {
		t.Errorf("expected 5 builtin languages, got %d", len(languages))
	}
	if languages[".py"].Name != "Python" {
		t.Errorf("unexpected .py entry: %+v", languages[".py"])
	}
}

func TestHandleGetSessionNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h.Router(), http.MethodGet, "/api/sessions/repair-nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleFiles(t *testing.T) {
	h, workspace := newTestHandler(t)
	for _, name := range []string{"a.py", "b.txt"} {
		if err := os.WriteFile(filepath.Join(workspace, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	rec := doJSON(t, h.Router(), http.MethodGet, "/api/files", "")
	var files []string
	if err := json.Unmarshal(rec.Body.Bytes(), &files); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(files) != 1 || files[0] != "a.py" {
		t.Errorf("unexpected files: %v", files)
	}
}

func TestHandleSettings(t *testing.T) {
	h, _ := newTestHandler(t)
	router := h.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/settings", `{"theme": "dark"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("post settings status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/settings", "")
	var settings map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if settings["theme"] != "dark" {
		t.Errorf("unexpected settings: %v", settings)
	}
}

func TestHandleStats(t *testing.T) {
	h, workspace := newTestHandler(t)
	router := h.Router()

	target := filepath.Join(workspace, "script.py")
	if err := os.WriteFile(target, []byte("print('ok')\n"), 0644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	body, _ := json.Marshal(debugRequest{Target: target, Request: "check it"})
	if rec := doJSON(t, router, http.MethodPost, "/api/debug", string(body)); rec.Code != http.StatusOK {
		t.Fatalf("debug status = %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/stats", "")
	var stats struct {
		Sessions    int     `json:"sessions"`
		SuccessRate float64 `json:"success_rate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.Sessions != 1 || stats.SuccessRate != 100 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestStaticIndex(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := doJSON(t, h.Router(), http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("unexpected content type: %s", ct)
	}
}
