package command

import "github.com/jwebster45206/story-commands/pkg/dice"

// Kind identifies which intent a line of player input was classified as.
type Kind string

const (
	KindDiceRoll       Kind = "dice_roll"
	KindMovement       Kind = "movement"
	KindAction         Kind = "action"
	KindCharacterSheet Kind = "character_sheet"
	KindInventory      Kind = "inventory"
	KindStory          Kind = "story" // Fallback for narrative text
)

// Command is the classified form of one input line. Exactly one of Dice,
// Movement or Action is set, matching Kind; CharacterSheet, Inventory and
// Story carry no payload.
type Command struct {
	Kind     Kind       `json:"kind"`
	Raw      string     `json:"raw"` // trimmed input, verbatim
	Dice     *dice.Spec `json:"dice,omitempty"`
	Movement *Movement  `json:"movement,omitempty"`
	Action   *Action    `json:"action,omitempty"`
}

// Movement is the payload of a KindMovement command. Empty fields are absent.
type Movement struct {
	Direction string `json:"direction,omitempty"`
	Target    string `json:"target,omitempty"`
}

// Action is the payload of a KindAction command.
type Action struct {
	Verb   string `json:"verb"`
	Target string `json:"target,omitempty"`
}

// IsSlash reports whether the command came from a slash-command.
func (c Command) IsSlash() bool {
	switch c.Kind {
	case KindDiceRoll, KindCharacterSheet, KindInventory:
		return true
	default:
		return false
	}
}
