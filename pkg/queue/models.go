package queue

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/pkg/command"
)

// TurnRequest is one player turn handed to the game engine.
type TurnRequest struct {
	RequestID string       `json:"request_id"`
	SessionID uuid.UUID    `json:"session_id"`
	Kind      command.Kind `json:"kind"`

	// Message is the turn text: the formatted roll for dice, the
	// speaker-prefixed input otherwise.
	Message string `json:"message"`

	Command   *command.Command `json:"command,omitempty"`
	Character string           `json:"character,omitempty"`
	Location  string           `json:"location,omitempty"`

	EnqueuedAt time.Time `json:"enqueued_at"`
}

// MarshalJSON serializes the request to JSON for Redis storage
func (r *TurnRequest) MarshalJSON() ([]byte, error) {
	type Alias TurnRequest
	return json.Marshal(&struct {
		SessionID string `json:"session_id"`
		*Alias
	}{
		SessionID: r.SessionID.String(),
		Alias:     (*Alias)(r),
	})
}

// UnmarshalJSON deserializes the request from JSON in Redis
func (r *TurnRequest) UnmarshalJSON(data []byte) error {
	type Alias TurnRequest
	aux := &struct {
		SessionID string `json:"session_id"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	sessionID, err := uuid.Parse(aux.SessionID)
	if err != nil {
		return err
	}

	r.SessionID = sessionID
	return nil
}

// FromJSON parses a turn request from JSON bytes
func FromJSON(data []byte) (*TurnRequest, error) {
	var req TurnRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
