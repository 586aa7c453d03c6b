package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/internal/storage"
	"github.com/jwebster45206/story-commands/pkg/actor"
	"github.com/jwebster45206/story-commands/pkg/session"
)

// CreateSessionRequest is the body of POST /v1/sessions
type CreateSessionRequest struct {
	CharacterID string   `json:"character_id,omitempty"`
	Location    string   `json:"location,omitempty"`
	Inventory   []string `json:"inventory,omitempty"`
}

type SessionHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewSessionHandler(storage storage.Storage, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP routes:
// POST /v1/sessions        - create a session
// GET /v1/sessions/{id}    - read a session
// DELETE /v1/sessions/{id} - delete a session
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	idStr := pathID(r.URL.Path, "/v1/sessions")

	if r.Method == http.MethodPost {
		if idStr != "" {
			writeError(w, h.logger, http.StatusMethodNotAllowed, "POST is only supported on /v1/sessions")
			return
		}
		h.handleCreate(w, r)
		return
	}

	if idStr == "" {
		writeError(w, h.logger, http.StatusBadRequest, "Session ID is required")
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r, id)
	case http.MethodDelete:
		h.handleDelete(w, r, id)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET, DELETE")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	// An empty body creates a session without a character.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("Invalid create session request", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	var character *actor.CharacterSpec
	if req.CharacterID != "" {
		spec, err := h.storage.GetCharacterSpec(r.Context(), req.CharacterID)
		if err != nil {
			if errors.Is(err, storage.ErrCharacterNotFound) {
				writeError(w, h.logger, http.StatusNotFound, "Character not found")
				return
			}
			h.logger.Error("Failed to load character", "error", err, "character_id", req.CharacterID)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to load character")
			return
		}
		if _, err := actor.NewCharacterFromSpec(spec); err != nil {
			h.logger.Warn("Character spec is invalid", "error", err, "character_id", req.CharacterID)
			writeError(w, h.logger, http.StatusUnprocessableEntity, "Character spec is invalid")
			return
		}
		character = spec
	}

	s := session.New(character)
	s.Location = strings.TrimSpace(req.Location)
	s.Inventory = req.Inventory

	if err := h.storage.SaveSession(r.Context(), s); err != nil {
		h.logger.Error("Failed to save session", "error", err, "session_id", s.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create session")
		return
	}

	h.logger.Info("Session created", "session_id", s.ID, "character_id", s.CharacterID)
	writeJSON(w, h.logger, http.StatusCreated, s)
}

func (h *SessionHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	s, err := h.storage.LoadSession(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load session", "error", err, "session_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if s == nil {
		writeError(w, h.logger, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, s)
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteSession(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete session", "error", err, "session_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
