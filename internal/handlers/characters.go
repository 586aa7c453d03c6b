package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/story-commands/internal/storage"
	"github.com/jwebster45206/story-commands/pkg/actor"
)

// CharacterSummary is one entry of the character list
type CharacterSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Class    string `json:"class,omitempty"`
	Level    int    `json:"level,omitempty"`
	Pronouns string `json:"pronouns,omitempty"`
}

type CharacterHandler struct {
	log     *slog.Logger
	storage storage.Storage
}

func NewCharacterHandler(log *slog.Logger, storage storage.Storage) *CharacterHandler {
	return &CharacterHandler{
		log:     log,
		storage: storage,
	}
}

// ServeHTTP routes:
// GET /v1/characters      - list character summaries
// GET /v1/characters/{id} - full character spec
func (h *CharacterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.log, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}

	if id := pathID(r.URL.Path, "/v1/characters"); id != "" {
		h.handleGet(w, r, id)
		return
	}
	h.handleList(w, r)
}

func (h *CharacterHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := h.storage.ListCharacters(r.Context())
	if err != nil {
		h.log.Error("Failed to list characters", "error", err)
		writeError(w, h.log, http.StatusInternalServerError, "Failed to list characters")
		return
	}

	list := make([]CharacterSummary, 0, len(ids))
	for _, id := range ids {
		spec, err := h.storage.GetCharacterSpec(r.Context(), id)
		if err != nil {
			h.log.Warn("Failed to load character spec", "error", err, "id", id)
			continue
		}
		list = append(list, CharacterSummary{
			ID:       spec.ID,
			Name:     spec.Name,
			Class:    spec.Class,
			Level:    spec.Level,
			Pronouns: spec.Pronouns,
		})
	}

	writeJSON(w, h.log, http.StatusOK, list)
}

func (h *CharacterHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	spec, err := h.storage.GetCharacterSpec(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrCharacterNotFound) {
			writeError(w, h.log, http.StatusNotFound, "Character not found")
			return
		}
		h.log.Error("Failed to load character", "error", err, "id", id)
		writeError(w, h.log, http.StatusInternalServerError, "Failed to load character")
		return
	}

	// Serve the runtime character so HP, AC and attributes come from the actor.
	character, err := actor.NewCharacterFromSpec(spec)
	if err != nil {
		h.log.Warn("Character spec is invalid", "error", err, "id", id)
		writeError(w, h.log, http.StatusUnprocessableEntity, "Character spec is invalid")
		return
	}
	writeJSON(w, h.log, http.StatusOK, character)
}
