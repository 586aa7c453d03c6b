package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/internal/logger"
	"github.com/jwebster45206/story-commands/internal/storage"
	"github.com/jwebster45206/story-commands/pkg/chat"
	"github.com/jwebster45206/story-commands/pkg/command"
	"github.com/jwebster45206/story-commands/pkg/dice"
	"github.com/jwebster45206/story-commands/pkg/queue"
	"github.com/jwebster45206/story-commands/pkg/session"
)

const (
	maxRequestBytes = 64 << 10

	// Dice limits for a single HTTP request. The interpreter itself accepts
	// any valid spec.
	maxDiceCount = 100
	maxDiceSides = 1000
)

// checkDiceLimits rejects rolls too large to serve over HTTP.
func checkDiceLimits(spec dice.Spec) error {
	if spec.Count > maxDiceCount {
		return fmt.Errorf("too many dice: at most %d per roll, got %d", maxDiceCount, spec.Count)
	}
	if spec.Sides > maxDiceSides {
		return fmt.Errorf("die too large: at most %d sides, got %d", maxDiceSides, spec.Sides)
	}
	return nil
}

// CommandHandler interprets one line of player input.
type CommandHandler struct {
	storage storage.Storage
	turns   TurnQueue      // may be nil
	events  EventPublisher // may be nil
	roller  dice.Roller
	logger  *slog.Logger
}

func NewCommandHandler(storage storage.Storage, turns TurnQueue, events EventPublisher, roller dice.Roller, logger *slog.Logger) *CommandHandler {
	return &CommandHandler{
		storage: storage,
		turns:   turns,
		events:  events,
		roller:  roller,
		logger:  logger,
	}
}

// ServeHTTP handles POST /v1/commands. Without a session_id the input is
// only classified (and rolled, for dice). With one, the session interprets
// it and unhandled turns are queued for the game engine.
func (h *CommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var req chat.CommandRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		h.logger.Warn("Invalid command request", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if cmd := command.Classify(req.Message); cmd.Dice != nil {
		if err := checkDiceLimits(*cmd.Dice); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
	}

	reqID := requestID(r)
	log := logger.WithRequestID(h.logger, reqID)

	if req.SessionID == uuid.Nil {
		h.handleStateless(w, log, req.Message)
		return
	}
	h.handleSession(w, r, log, reqID, req)
}

func (h *CommandHandler) handleStateless(w http.ResponseWriter, log *slog.Logger, message string) {
	res, err := session.Evaluate(message, h.roller)
	if errors.Is(err, dice.ErrInvalidSpec) {
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.WithError(log, err).Error("Failed to evaluate command")
		writeError(w, log, http.StatusInternalServerError, "Failed to evaluate command")
		return
	}

	log.Debug("Command classified", "kind", res.Command.Kind)
	writeJSON(w, log, http.StatusOK, chat.CommandResponse{
		Command:   res.Command,
		Outcome:   res.Outcome,
		Formatted: res.Formatted,
		Handled:   res.Handled,
		Message:   res.Message,
		Role:      res.Role,
	})
}

func (h *CommandHandler) handleSession(w http.ResponseWriter, r *http.Request, log *slog.Logger, reqID string, req chat.CommandRequest) {
	ctx := r.Context()
	log = logger.WithSessionID(log, req.SessionID.String())

	s, err := h.storage.LoadSession(ctx, req.SessionID)
	if err != nil {
		logger.WithError(log, err).Error("Failed to load session")
		writeError(w, log, http.StatusInternalServerError, "Failed to load session")
		return
	}
	if s == nil {
		writeError(w, log, http.StatusNotFound, "Session not found")
		return
	}

	res, err := s.Interpret(req.Message, h.roller)
	if errors.Is(err, dice.ErrInvalidSpec) {
		writeError(w, log, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logger.WithError(log, err).Error("Failed to interpret command")
		writeError(w, log, http.StatusInternalServerError, "Failed to interpret command")
		return
	}

	resp := chat.CommandResponse{
		SessionID: s.ID,
		Command:   res.Command,
		Outcome:   res.Outcome,
		Formatted: res.Formatted,
		Handled:   res.Handled,
		Message:   res.Message,
		Role:      res.Role,
	}

	queued := false
	if !res.Handled && h.turns != nil {
		cmd := res.Command
		turn := &queue.TurnRequest{
			RequestID:  reqID,
			SessionID:  s.ID,
			Kind:       cmd.Kind,
			Message:    res.Message,
			Command:    &cmd,
			Character:  s.CharacterID,
			Location:   s.Location,
			EnqueuedAt: time.Now(),
		}
		if err := h.turns.Enqueue(ctx, turn); err != nil {
			logger.WithError(log, err).Error("Failed to queue turn")
			writeError(w, log, http.StatusServiceUnavailable, "Failed to queue turn")
			return
		}
		queued = true
		resp.RequestID = reqID
	}

	if err := h.storage.SaveSession(ctx, s); err != nil {
		logger.WithError(log, err).Error("Failed to save session")
		writeError(w, log, http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.publish(ctx, log, s.ID, reqID, res, queued)

	log.Info("Command interpreted", "kind", res.Command.Kind, "handled", res.Handled, "queued", queued)
	writeJSON(w, log, http.StatusOK, resp)
}

// publish announces the result. Failures are logged and do not fail the request.
func (h *CommandHandler) publish(ctx context.Context, log *slog.Logger, sessionID uuid.UUID, reqID string, res *session.Result, queued bool) {
	if h.events == nil {
		return
	}
	if err := h.events.PublishCommandInterpreted(ctx, sessionID, reqID, res.Command, res.Handled); err != nil {
		logger.WithError(log, err).Warn("Failed to publish command event")
	}
	if res.Outcome != nil {
		if err := h.events.PublishDiceRolled(ctx, sessionID, reqID, *res.Command.Dice, *res.Outcome, res.Formatted); err != nil {
			logger.WithError(log, err).Warn("Failed to publish dice event")
		}
	}
	if queued {
		if err := h.events.PublishTurnQueued(ctx, sessionID, reqID, res.Command.Kind); err != nil {
			logger.WithError(log, err).Warn("Failed to publish turn event")
		}
	}
}
