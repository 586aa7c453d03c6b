package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jwebster45206/story-commands/pkg/actor"
	"github.com/jwebster45206/story-commands/pkg/dice"
	"github.com/jwebster45206/story-commands/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kaelJSON = `{
	"id": "ignored",
	"name": "Kael",
	"class": "arcblade",
	"level": 3,
	"stats": {"strength": 14, "intelligence": 12, "agility": 15, "charisma": 9, "reputation": 3},
	"hp": 24,
	"max_hp": 24,
	"ac": 14,
	"inventory": ["rope", "lantern"]
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupRedisStorage(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "characters"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "characters", "kael.json"), []byte(kaelJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "characters", "notes.txt"), []byte("skip"), 0o644))

	store, err := NewRedisStorage("redis://"+mr.Addr(), dataDir, ttl, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestRedisStorage_SessionLifecycle(t *testing.T) {
	store, mr := setupRedisStorage(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	s := session.New(&actor.CharacterSpec{ID: "kael", Name: "Kael", MaxHP: 24, HP: 24})
	_, err := s.Interpret("/roll 2d6+1", dice.NewSequenceRoller(3, 4))
	require.NoError(t, err)

	require.NoError(t, store.SaveSession(ctx, s))
	assert.True(t, mr.Exists("session:"+s.ID.String()))
	assert.Equal(t, time.Hour, mr.TTL("session:"+s.ID.String()))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, "Kael", loaded.CharacterName())
	require.Len(t, loaded.Rolls, 1)
	assert.Equal(t, 8, loaded.Rolls[0].Outcome.Total)

	require.NoError(t, store.DeleteSession(ctx, s.ID))
	loaded, err = store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_SessionExpires(t *testing.T) {
	store, mr := setupRedisStorage(t, time.Minute)
	ctx := context.Background()

	s := session.New(nil)
	require.NoError(t, store.SaveSession(ctx, s))

	mr.FastForward(2 * time.Minute)

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_LoadMissingSession(t *testing.T) {
	store, _ := setupRedisStorage(t, 0)

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_LoadCorruptSession(t *testing.T) {
	store, mr := setupRedisStorage(t, 0)
	id := uuid.New()
	require.NoError(t, mr.Set("session:"+id.String(), "{not json"))

	_, err := store.LoadSession(context.Background(), id)
	assert.Error(t, err)
}

func TestRedisStorage_SaveNilSession(t *testing.T) {
	store, _ := setupRedisStorage(t, 0)
	assert.Error(t, store.SaveSession(context.Background(), nil))
}

func TestRedisStorage_PingFailsWhenRedisIsDown(t *testing.T) {
	store, mr := setupRedisStorage(t, 0)
	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

func TestRedisStorage_WaitForConnectionCancelled(t *testing.T) {
	store, mr := setupRedisStorage(t, 0)
	mr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.WaitForConnection(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisStorage_Characters(t *testing.T) {
	store, _ := setupRedisStorage(t, 0)
	ctx := context.Background()

	ids, err := store.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kael"}, ids)

	spec, err := store.GetCharacterSpec(ctx, "kael")
	require.NoError(t, err)
	assert.Equal(t, "kael", spec.ID, "filename overrides the id in the file")
	assert.Equal(t, "Kael", spec.Name)
	assert.Equal(t, 15, spec.Stats.Agility)
	assert.Equal(t, []string{"rope", "lantern"}, spec.Inventory)

	for _, id := range []string{"nobody", "../kael", "", `..\kael`} {
		_, err := store.GetCharacterSpec(ctx, id)
		assert.ErrorIs(t, err, ErrCharacterNotFound, id)
	}
}

func TestRedisStorage_ListCharactersWithoutDirectory(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStorage(mr.Addr(), t.TempDir(), 0, testLogger())
	require.NoError(t, err)
	defer store.Close()

	ids, err := store.ListCharacters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNewRedisStorage_BadURL(t *testing.T) {
	_, err := NewRedisStorage("redis://localhost:6379/notanumber", "", 0, testLogger())
	assert.Error(t, err)
}

func TestMockStorage(t *testing.T) {
	ctx := context.Background()
	m := NewMockStorage()

	assert.NoError(t, m.Ping(ctx))
	m.SetPingError(errors.New("down"))
	assert.EqualError(t, m.Ping(ctx), "down")

	s := session.New(nil)
	require.NoError(t, m.SaveSession(ctx, s))
	assert.Equal(t, 1, m.SessionCount())

	s.Inventory = append(s.Inventory, "mutated after save")
	loaded, err := m.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Inventory, "stored sessions are snapshots")

	m.SetSaveError(errors.New("full"))
	assert.Error(t, m.SaveSession(ctx, s))

	require.NoError(t, m.DeleteSession(ctx, s.ID))
	loaded, err = m.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	m.AddCharacterSpec("mira", &actor.CharacterSpec{Name: "Mira"})
	m.AddCharacterSpec("kael", &actor.CharacterSpec{Name: "Kael"})
	ids, err := m.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kael", "mira"}, ids)

	spec, err := m.GetCharacterSpec(ctx, "mira")
	require.NoError(t, err)
	assert.Equal(t, "mira", spec.ID)

	_, err = m.GetCharacterSpec(ctx, "nobody")
	assert.ErrorIs(t, err, ErrCharacterNotFound)
}
