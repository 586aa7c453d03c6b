package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/internal/logger"
	"github.com/jwebster45206/story-commands/internal/storage"
	"github.com/jwebster45206/story-commands/pkg/chat"
	"github.com/jwebster45206/story-commands/pkg/dice"
)

// RollHandler resolves dice specs sent as JSON, outside of text input.
type RollHandler struct {
	storage storage.Storage
	events  EventPublisher // may be nil
	roller  dice.Roller
	logger  *slog.Logger
}

func NewRollHandler(storage storage.Storage, events EventPublisher, roller dice.Roller, logger *slog.Logger) *RollHandler {
	return &RollHandler{
		storage: storage,
		events:  events,
		roller:  roller,
		logger:  logger,
	}
}

// ServeHTTP routes:
// POST /v1/rolls               - roll {count, sides, modifier, label}
// POST /v1/rolls/quick/{sides} - roll one quick die, ?session_id= optional
func (h *RollHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	rest := pathID(r.URL.Path, "/v1/rolls")
	switch {
	case rest == "":
		h.handleRoll(w, r)
	case strings.HasPrefix(rest, "quick/"):
		h.handleQuick(w, r, strings.TrimPrefix(rest, "quick/"))
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *RollHandler) handleRoll(w http.ResponseWriter, r *http.Request) {
	var req chat.RollRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	h.roll(w, r, req.SessionID, req.Spec)
}

func (h *RollHandler) handleQuick(w http.ResponseWriter, r *http.Request, sidesStr string) {
	sides, err := strconv.Atoi(sidesStr)
	if err != nil || !dice.IsQuickDie(sides) {
		writeError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Quick rolls support d4, d6, d8, d10, d12, d20 and d100, got %q", sidesStr))
		return
	}

	var sessionID uuid.UUID
	if s := r.URL.Query().Get("session_id"); s != "" {
		if sessionID, err = uuid.Parse(s); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
			return
		}
	}

	h.roll(w, r, sessionID, dice.Spec{Count: 1, Sides: sides})
}

func (h *RollHandler) roll(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID, spec dice.Spec) {
	if err := spec.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	if err := checkDiceLimits(spec); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if sessionID == uuid.Nil {
		out, err := dice.Resolve(h.roller, spec)
		if err != nil {
			h.fail(w, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, chat.RollResponse{
			Spec:      spec,
			Outcome:   out,
			Formatted: dice.Format(spec, out),
		})
		return
	}

	ctx := r.Context()
	reqID := requestID(r)
	log := logger.WithSessionID(logger.WithRequestID(h.logger, reqID), sessionID.String())

	s, err := h.storage.LoadSession(ctx, sessionID)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load session")
		writeError(w, log, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if s == nil {
		writeError(w, log, http.StatusNotFound, "Session not found")
		return
	}

	rec, err := s.Roll(spec, h.roller)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.storage.SaveSession(ctx, s); err != nil {
		logger.WithError(log, err).Error("Failed to save session")
		writeError(w, log, http.StatusInternalServerError, "Failed to save session")
		return
	}

	if h.events != nil {
		if err := h.events.PublishDiceRolled(ctx, s.ID, reqID, rec.Spec, rec.Outcome, rec.Formatted); err != nil {
			logger.WithError(log, err).Warn("Failed to publish dice event")
		}
	}

	log.Info("Dice rolled", "notation", spec.Notation(), "total", rec.Outcome.Total)
	writeJSON(w, log, http.StatusOK, chat.RollResponse{
		Spec:      rec.Spec,
		Outcome:   rec.Outcome,
		Formatted: rec.Formatted,
	})
}

func (h *RollHandler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, dice.ErrInvalidSpec) {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error("Failed to resolve roll", "error", err)
	writeError(w, h.logger, http.StatusInternalServerError, "Failed to resolve roll")
}
