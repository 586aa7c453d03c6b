package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/pkg/actor"
	"github.com/jwebster45206/story-commands/pkg/chat"
	"github.com/jwebster45206/story-commands/pkg/dice"
)

const (
	RollHistoryLimit = 50
	TurnHistoryLimit = 100
)

// RollRecord is one resolved dice roll kept in the session log.
type RollRecord struct {
	Spec      dice.Spec    `json:"spec"`
	Outcome   dice.Outcome `json:"outcome"`
	Formatted string       `json:"formatted"`
	RolledAt  time.Time    `json:"rolled_at"`
}

// Session is one player's command interpreter state.
type Session struct {
	ID          uuid.UUID            `json:"id"`
	CharacterID string               `json:"character_id,omitempty"`
	Character   *actor.CharacterSpec `json:"character,omitempty"`
	Location    string               `json:"location,omitempty"`
	Inventory   []string             `json:"inventory,omitempty"` // items held outside the character sheet
	Rolls       []RollRecord         `json:"rolls,omitempty"`
	Turns       []chat.Message       `json:"turns,omitempty"` // turns handed to the game engine
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// New creates a session, optionally bound to a character.
func New(character *actor.CharacterSpec) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.New(),
		Character: character,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if character != nil {
		s.CharacterID = character.ID
	}
	return s
}

// CharacterName returns the bound character's name, or "".
func (s *Session) CharacterName() string {
	if s.Character == nil {
		return ""
	}
	return s.Character.Name
}

// DescribeCharacter renders the character sheet.
func (s *Session) DescribeCharacter() (string, error) {
	if s.Character == nil {
		var none *actor.Character
		return none.Sheet(), nil
	}
	c, err := actor.NewCharacterFromSpec(s.Character)
	if err != nil {
		return "", fmt.Errorf("failed to build character %q: %w", s.CharacterID, err)
	}
	return c.Sheet(), nil
}

// Items returns the character's inventory followed by session items.
func (s *Session) Items() []string {
	var items []string
	if s.Character != nil {
		items = append(items, s.Character.Inventory...)
	}
	return append(items, s.Inventory...)
}

// DescribeInventory renders the inventory list.
func (s *Session) DescribeInventory() string {
	return actor.DescribeInventory(s.Items())
}

// LastRoll returns the most recent roll, if any.
func (s *Session) LastRoll() (RollRecord, bool) {
	if len(s.Rolls) == 0 {
		return RollRecord{}, false
	}
	return s.Rolls[len(s.Rolls)-1], true
}

func (s *Session) recordRoll(r RollRecord) {
	s.Rolls = keepLast(append(s.Rolls, r), RollHistoryLimit)
}

func (s *Session) recordTurn(m chat.Message) {
	s.Turns = keepLast(append(s.Turns, m), TurnHistoryLimit)
}

func keepLast[T any](items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	return append([]T(nil), items[len(items)-limit:]...)
}
