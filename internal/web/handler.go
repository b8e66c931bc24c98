package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/autodebugdev/autodebug/internal/chat"
	"github.com/autodebugdev/autodebug/internal/config"
	"github.com/autodebugdev/autodebug/internal/core"
	"github.com/autodebugdev/autodebug/internal/lang"
	"github.com/autodebugdev/autodebug/internal/metrics"
	"github.com/autodebugdev/autodebug/internal/storage"
)

//go:embed static/*
var staticFS embed.FS

// configResponse is the non-sensitive subset of config returned by the API.
type configResponse struct {
	Model      string                   `json:"model"`
	Endpoint   string                   `json:"endpoint"`
	Policy     string                   `json:"policy"`
	MaxRetries int                      `json:"max_retries"`
	Workspace  string                   `json:"workspace"`
	Languages  map[string]lang.Language `json:"languages"`
}

// debugRequest is the body of POST /api/debug.
type debugRequest struct {
	Target  string `json:"target"`
	Request string `json:"request"`
}

// chatMessage is one entry in the front end's chat history. The history
// is an explicit append-only log owned by the handler, not ambient
// global state.
type chatMessage struct {
	Role      string    `json:"role"` // user|assistant
	Content   string    `json:"content"`
	SessionID string    `json:"session_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler serves the chat front end and the sessions API.
type Handler struct {
	cfg    *config.Config
	engine *core.Engine
	db     *storage.DB
	table  *lang.Table

	historyMu sync.Mutex
	history   []chatMessage

	// Sessions against the same file race on the working path and its
	// backup; serialize them per target.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewHandler creates an http.Handler serving the web chat UI and API.
func NewHandler(cfg *config.Config, engine *core.Engine, db *storage.DB, table *lang.Table) *Handler {
	h := &Handler{
		cfg:    cfg,
		engine: engine,
		db:     db,
		table:  table,
		locks:  make(map[string]*sync.Mutex),
	}
	h.appendHistory(chatMessage{
		Role:    "assistant",
		Content: "Hello! Pick a file and clearly describe the bug (e.g. 'The loop runs infinitely' or 'The calculation is off by one').",
	})
	return h
}

// Router builds the chi router for the handler.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/sessions", h.handleListSessions)
		r.Get("/sessions/{id}", h.handleGetSession)
		r.Get("/sessions/{id}/logs", h.handleGetLogs)
		r.Post("/debug", h.handleDebug)
		r.Get("/history", h.handleHistory)
		r.Get("/stats", h.handleStats)
		r.Get("/config", h.handleConfig)
		r.Get("/languages", h.handleLanguages)
		r.Get("/files", h.handleFiles)
		r.Get("/settings", h.handleGetSettings)
		r.Post("/settings", h.handleSetSettings)
	})

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("web: failed to create sub-filesystem: %v", err)
	}
	r.Handle("/*", http.FileServer(http.FS(staticSub)))

	return r
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.db.ListSessions()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []core.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	session, err := h.db.GetSession(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if session == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	logs, err := h.db.GetLogs(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []storage.LogEntry{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *Handler) handleDebug(w http.ResponseWriter, r *http.Request) {
	var req debugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Target == "" || req.Request == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "target and request are required"})
		return
	}
	if !h.table.Supports(req.Target) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported file type: " + req.Target})
		return
	}

	h.appendHistory(chatMessage{Role: "user", Content: req.Request})

	lock := h.targetLock(req.Target)
	lock.Lock()
	session, repairErr := h.engine.Repair(r.Context(), req.Target, req.Request)
	lock.Unlock()

	var reply string
	if repairErr != nil {
		reply = fmt.Sprintf("Auto-repair of %s failed after %d iterations: %v",
			req.Target, session.Iterations, repairErr)
	} else {
		reply = fmt.Sprintf("Repair of %s completed after %d iterations. A backup was saved to %s.",
			req.Target, session.Iterations, session.BackupPath)
	}
	h.appendHistory(chatMessage{Role: "assistant", Content: reply, SessionID: session.ID})

	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	h.historyMu.Lock()
	history := make([]chatMessage, len(h.history))
	copy(history, h.history)
	h.historyMu.Unlock()
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.db.ListSessions()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, metrics.Calculate(sessions))
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, configResponse{
		Model:      h.cfg.AI.Model,
		Endpoint:   h.cfg.AI.Endpoint,
		Policy:     h.cfg.Repair.Policy,
		MaxRetries: h.cfg.Repair.MaxRetries,
		Workspace:  h.cfg.Project.Workspace,
		Languages:  h.table.Entries(),
	})
}

func (h *Handler) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.table.Entries())
}

func (h *Handler) handleFiles(w http.ResponseWriter, r *http.Request) {
	workspace := h.cfg.Project.Workspace
	if workspace == "" {
		workspace = "."
	}
	files, err := chat.ListFiles(workspace, h.table)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, files)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.db.GetAllSettings()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) handleSetSettings(w http.ResponseWriter, r *http.Request) {
	var settings map[string]string
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	for k, v := range settings {
		if err := h.db.SetSetting(k, v); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) appendHistory(msg chatMessage) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	h.historyMu.Lock()
	h.history = append(h.history, msg)
	h.historyMu.Unlock()
}

func (h *Handler) targetLock(target string) *sync.Mutex {
	h.locksMu.Lock()
	defer h.locksMu.Unlock()
	lock, ok := h.locks[target]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[target] = lock
	}
	return lock
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[web] failed to encode response: %v", err)
	}
}
