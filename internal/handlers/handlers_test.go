package handlers

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/internal/services/events"
	"github.com/jwebster45206/story-commands/internal/storage"
	"github.com/jwebster45206/story-commands/pkg/actor"
	"github.com/jwebster45206/story-commands/pkg/command"
	"github.com/jwebster45206/story-commands/pkg/dice"
	"github.com/jwebster45206/story-commands/pkg/queue"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func kael() *actor.CharacterSpec {
	return &actor.CharacterSpec{
		Name:      "Kael",
		Class:     "arcblade",
		Level:     3,
		Pronouns:  "they/them",
		Stats:     actor.Stats{Strength: 14, Intelligence: 12, Agility: 15, Charisma: 9, Reputation: 3},
		HP:        18,
		MaxHP:     24,
		AC:        14,
		Inventory: []string{"rope"},
	}
}

func newTestStorage() *storage.MockStorage {
	m := storage.NewMockStorage()
	m.AddCharacterSpec("kael", kael())
	return m
}

type fakeQueue struct {
	turns []*queue.TurnRequest
	err   error
}

func (q *fakeQueue) Enqueue(ctx context.Context, req *queue.TurnRequest) error {
	if q.err != nil {
		return q.err
	}
	q.turns = append(q.turns, req)
	return nil
}

type fakePublisher struct {
	published []events.EventType
	err       error
}

func (p *fakePublisher) PublishCommandInterpreted(ctx context.Context, sessionID uuid.UUID, requestID string, cmd command.Command, handled bool) error {
	p.published = append(p.published, events.EventTypeCommandInterpreted)
	return p.err
}

func (p *fakePublisher) PublishDiceRolled(ctx context.Context, sessionID uuid.UUID, requestID string, spec dice.Spec, outcome dice.Outcome, formatted string) error {
	p.published = append(p.published, events.EventTypeDiceRolled)
	return p.err
}

func (p *fakePublisher) PublishTurnQueued(ctx context.Context, sessionID uuid.UUID, requestID string, kind command.Kind) error {
	p.published = append(p.published, events.EventTypeTurnQueued)
	return p.err
}

var errUnavailable = errors.New("unavailable")
