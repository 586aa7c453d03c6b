package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/pkg/actor"
	"github.com/jwebster45206/story-commands/pkg/session"
)

// Storage combines session persistence (Redis) with character loading (filesystem).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations. LoadSession returns nil, nil when the session does not exist.
	SaveSession(ctx context.Context, s *session.Session) error
	LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Character operations
	GetCharacterSpec(ctx context.Context, characterID string) (*actor.CharacterSpec, error)
	ListCharacters(ctx context.Context) ([]string, error)
}
