package chat

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/pkg/command"
	"github.com/jwebster45206/story-commands/pkg/dice"
)

const (
	MaxMessageLength = 1000

	// speakerPrefixLimit is the longest "Name:" prefix treated as a speaker.
	speakerPrefixLimit = 50
)

const (
	ChatRoleUser   = "user"      // Player
	ChatRoleAgent  = "assistant" // Game engine / narrator
	ChatRoleSystem = "system"
)

// CommandRequest is one line of player input posted to /v1/commands.
// A zero SessionID asks for stateless interpretation.
type CommandRequest struct {
	SessionID uuid.UUID `json:"session_id,omitempty"`
	Message   string    `json:"message"`
}

func (cr *CommandRequest) Validate() error {
	if strings.TrimSpace(cr.Message) == "" {
		return fmt.Errorf("message cannot be empty")
	}
	if len(cr.Message) > MaxMessageLength {
		return fmt.Errorf("message exceeds maximum length of %d characters", MaxMessageLength)
	}
	return nil
}

// CommandResponse is returned from /v1/commands.
type CommandResponse struct {
	SessionID uuid.UUID       `json:"session_id,omitempty"`
	RequestID string          `json:"request_id,omitempty"` // set when a turn was queued
	Command   command.Command `json:"command"`
	Outcome   *dice.Outcome   `json:"outcome,omitempty"`
	Formatted string          `json:"formatted,omitempty"` // rendered dice roll
	Handled   bool            `json:"handled"`             // answered locally, no turn queued
	Message   string          `json:"message,omitempty"`
	Role      string          `json:"role,omitempty"`
}

// RollRequest asks /v1/rolls to resolve a dice spec directly.
type RollRequest struct {
	SessionID uuid.UUID `json:"session_id,omitempty"`
	dice.Spec
}

// RollResponse is returned from /v1/rolls.
type RollResponse struct {
	Spec      dice.Spec    `json:"spec"`
	Outcome   dice.Outcome `json:"outcome"`
	Formatted string       `json:"formatted"`
}

// Message is a single turn in a session's history.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// FormatWithCharacterName prefixes message with "Name: " unless it already
// starts with a short "Speaker:" prefix.
func FormatWithCharacterName(message, name string) string {
	if name == "" {
		return message
	}
	if idx := strings.Index(message, ":"); idx > 0 && idx <= speakerPrefixLimit {
		return message
	}
	return name + ": " + message
}
