package wizard

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medmatch/intake/internal/shared/auth"
	"github.com/medmatch/intake/internal/shared/config"
	"github.com/medmatch/intake/internal/shared/errors"
	"github.com/medmatch/intake/internal/shared/events"
	"github.com/medmatch/intake/internal/shared/types"
)

// Handler provides HTTP handlers for the questionnaire wizard
type Handler struct {
	manager *Manager
	bus     events.Publisher
	authCfg config.AuthConfig
}

// NewHandler creates a new wizard handler
func NewHandler(manager *Manager, bus events.Publisher, authCfg config.AuthConfig) *Handler {
	return &Handler{manager: manager, bus: bus, authCfg: authCfg}
}

// Routes registers the wizard routes. Everything except session creation
// requires a session token.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/sessions", h.StartSession)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(h.authCfg))

		r.Route("/record", func(r chi.Router) {
			r.Get("/", h.GetRecord)
			r.Delete("/", h.ResetRecord)
			r.Get("/field", h.GetField)
			r.Put("/field", h.SetField)

			r.Post("/procedures", h.AddProcedure)
			r.Delete("/procedures/{procedureID}", h.RemoveProcedure)
			r.Post("/conditions/toggle", h.ToggleCondition)
		})

		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", h.GetNavigation)
			r.Post("/advance", h.Advance)
			r.Post("/retreat", h.Retreat)
			r.Post("/jump", h.Jump)
		})

		r.Get("/summary", h.GetSummary)
		r.Post("/submit", h.Submit)
	})

	return r
}

// engine resolves the engine for the request's session
func (h *Handler) engine(w http.ResponseWriter, r *http.Request) (*Engine, types.ID, bool) {
	session := auth.GetSession(r.Context())
	if session == nil {
		writeError(w, errors.Unauthorized("session required"))
		return nil, "", false
	}
	engine, err := h.manager.Engine(r.Context(), session.ID)
	if err != nil {
		writeError(w, err)
		return nil, "", false
	}
	return engine, session.ID, true
}

func (h *Handler) publish(r *http.Request, sessionID types.ID, eventType string, data any) {
	if h.bus == nil {
		return
	}
	event := events.NewEvent(eventType, "wizard", data).WithSession(sessionID)
	h.bus.Publish(r.Context(), event)
}

// StartSession creates a new questionnaire session and returns its token
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	sessionID, engine, err := h.manager.StartSession(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := auth.Issue(h.authCfg, sessionID)
	if err != nil {
		writeError(w, errors.Internal(err))
		return
	}

	section := engine.Start(r.Context())
	h.publish(r, sessionID, events.TypeSessionStarted, nil)

	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": sessionID,
		"token":      token,
		"section":    section,
	})
}

// GetRecord returns the full in-progress record
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, engine.Record())
}

// ResetRecord discards the record and snapshot
func (h *Handler) ResetRecord(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}
	engine.Reset(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// GetField reads one record field by path
func (h *Handler) GetField(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, errors.BadRequest("path query parameter is required"))
		return
	}

	value, err := engine.GetField(path)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"path": path, "value": value})
}

// SetFieldRequest assigns one record field
type SetFieldRequest struct {
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value"`
}

// SetField assigns one record field, runs derivation and autosaves
func (h *Handler) SetField(w http.ResponseWriter, r *http.Request) {
	engine, sessionID, ok := h.engine(w, r)
	if !ok {
		return
	}

	var req SetFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}
	if req.Path == "" {
		writeError(w, errors.BadRequest("path is required"))
		return
	}

	var value any
	if err := json.Unmarshal(req.Value, &value); err != nil {
		writeError(w, errors.BadRequest("invalid field value"))
		return
	}

	if err := engine.SetField(r.Context(), req.Path, value); err != nil {
		writeError(w, err)
		return
	}

	h.publish(r, sessionID, events.TypeRecordUpdated, map[string]any{"path": req.Path})
	writeJSON(w, http.StatusOK, engine.Record())
}

// AddProcedure appends an empty planned procedure
func (h *Handler) AddProcedure(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}
	id := engine.AddProcedure(r.Context())
	writeJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// RemoveProcedure deletes a planned procedure by id
func (h *Handler) RemoveProcedure(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}

	id, err := types.ParseID(chi.URLParam(r, "procedureID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid procedure ID"))
		return
	}

	if err := engine.RemoveProcedure(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleConditionRequest names a chronic condition to toggle
type ToggleConditionRequest struct {
	Name string `json:"name"`
}

// ToggleCondition toggles one chronic condition in the disclosure set
func (h *Handler) ToggleCondition(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}

	var req ToggleConditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	if err := engine.ToggleCondition(r.Context(), req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"chronicConditions": engine.Record().ChronicConditions,
	})
}

// GetNavigation reports the current section and progress
func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}
	writeNavigation(w, engine)
}

// Advance moves one section forward
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}
	if _, err := engine.Advance(); err != nil {
		writeError(w, err)
		return
	}
	writeNavigation(w, engine)
}

// Retreat moves one section back
func (h *Handler) Retreat(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}
	engine.Retreat()
	writeNavigation(w, engine)
}

// JumpRequest names the target section
type JumpRequest struct {
	Section Section `json:"section"`
}

// Jump moves directly to a named section
func (h *Handler) Jump(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}

	var req JumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}

	if err := engine.JumpTo(req.Section); err != nil {
		writeError(w, err)
		return
	}
	writeNavigation(w, engine)
}

// GetSummary returns the review projection of the current record
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	engine, _, ok := h.engine(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": engine.Summary()})
}

// Submit validates the record and completes the questionnaire
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	engine, sessionID, ok := h.engine(w, r)
	if !ok {
		return
	}

	completed, fieldErrs := engine.Submit(r.Context())
	if len(fieldErrs) > 0 {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Path] = fe.Reason
		}
		writeError(w, errors.Validation("record is not submittable", details))
		return
	}

	h.publish(r, sessionID, events.TypeRecordSubmitted, completed)
	h.manager.Drop(sessionID)

	writeJSON(w, http.StatusOK, map[string]any{"record": completed})
}

func writeNavigation(w http.ResponseWriter, engine *Engine) {
	writeJSON(w, http.StatusOK, map[string]any{
		"section":  engine.Current(),
		"progress": engine.Progress(),
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
