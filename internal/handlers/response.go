package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/pkg/command"
	"github.com/jwebster45206/story-commands/pkg/dice"
	"github.com/jwebster45206/story-commands/pkg/queue"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// TurnQueue accepts turns for the game engine.
type TurnQueue interface {
	Enqueue(ctx context.Context, req *queue.TurnRequest) error
}

// EventPublisher announces session activity to SSE subscribers.
type EventPublisher interface {
	PublishCommandInterpreted(ctx context.Context, sessionID uuid.UUID, requestID string, cmd command.Command, handled bool) error
	PublishDiceRolled(ctx context.Context, sessionID uuid.UUID, requestID string, spec dice.Spec, outcome dice.Outcome, formatted string) error
	PublishTurnQueued(ctx context.Context, sessionID uuid.UUID, requestID string, kind command.Kind) error
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, status int, message string) {
	writeJSON(w, log, status, ErrorResponse{Error: message})
}

// pathID returns the path segment after prefix, or "" when there is none.
func pathID(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}

// requestID prefers the ID assigned by the logging middleware.
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}
