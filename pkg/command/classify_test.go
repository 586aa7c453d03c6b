package command

import (
	"testing"

	"github.com/jwebster45206/story-commands/pkg/dice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_DiceRoll(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  dice.Spec
	}{
		{name: "roll with modifier", input: "/roll 2d20+3", want: dice.Spec{Count: 2, Sides: 20, Modifier: 3}},
		{name: "short form with label", input: "/r 1d6 perception", want: dice.Spec{Count: 1, Sides: 6, Label: "perception"}},
		{name: "mixed case command", input: "/ROLL 1D4", want: dice.Spec{Count: 1, Sides: 4}},
		{name: "negative modifier and multi word label", input: "/r 2d6-1 sneak attack", want: dice.Spec{Count: 2, Sides: 6, Modifier: -1, Label: "sneak attack"}},
		{name: "surrounding whitespace", input: "   /roll 3d8   ", want: dice.Spec{Count: 3, Sides: 8}},
		{name: "label whitespace trimmed", input: "/roll 1d20    initiative", want: dice.Spec{Count: 1, Sides: 20, Label: "initiative"}},
		{name: "many dice", input: "/roll 101d6", want: dice.Spec{Count: 101, Sides: 6}},
		{name: "large die", input: "/r 1d1001", want: dice.Spec{Count: 1, Sides: 1001}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Classify(tt.input)
			require.Equal(t, KindDiceRoll, cmd.Kind)
			require.NotNil(t, cmd.Dice)
			assert.Equal(t, tt.want, *cmd.Dice)
			assert.Nil(t, cmd.Movement)
			assert.Nil(t, cmd.Action)
		})
	}
}

func TestClassify_MalformedDiceFallsThrough(t *testing.T) {
	inputs := []string{
		"/roll 2dX",
		"/roll 0d6",
		"/roll 1d1",
		"/roll 1d0",
		"/roll d20",
		"/roll -1d6",
		"/roll 2d6+",
		"/roll 2d6*2",
		"/roll 2d6+9223372036854775807",
		"/roll 99999999999999999999d6",
		"/rolls 1d6",
		"/roll",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			cmd := Classify(input)
			assert.Equal(t, KindStory, cmd.Kind)
			assert.Equal(t, input, cmd.Raw)
			assert.Nil(t, cmd.Dice)
		})
	}
}

func TestClassify_SlashQueries(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"/stats", KindCharacterSheet},
		{"/sheet", KindCharacterSheet},
		{"/Character", KindCharacterSheet},
		{"/inventory", KindInventory},
		{"/inv", KindInventory},
		{"/ITEMS", KindInventory},
		{"/bag", KindInventory},
		{"/stats please", KindStory},
		{"stats", KindStory},
		{"/bags", KindStory},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd := Classify(tt.input)
			assert.Equal(t, tt.want, cmd.Kind)
			assert.Nil(t, cmd.Dice)
			assert.Nil(t, cmd.Movement)
			assert.Nil(t, cmd.Action)
		})
	}
}

func TestClassify_Movement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Movement
	}{
		{
			name:  "destination after to the",
			input: "I walk to the village square",
			want:  Movement{Target: "village square"},
		},
		{
			name:  "direction only",
			input: "run west",
			want:  Movement{Direction: "west"},
		},
		{
			name:  "location fallback",
			input: "Head north toward the castle",
			want:  Movement{Direction: "north", Target: "castle"},
		},
		{
			name:  "direction and destination",
			input: "We sneak back to the cave",
			want:  Movement{Direction: "back", Target: "cave"},
		},
		{
			name:  "destination stops at punctuation and keeps case",
			input: "Go to the Old Mill.",
			want:  Movement{Target: "Old Mill"},
		},
		{
			name:  "destination without article",
			input: "travel to Riverbend",
			want:  Movement{Target: "Riverbend"},
		},
		{
			name:  "direction list order wins over position",
			input: "move east, then north",
			want:  Movement{Direction: "north"},
		},
		{
			name:  "to at the end of a longer word",
			input: "sprint onto the bridge",
			want:  Movement{Target: "bridge"},
		},
		{
			name:  "trailing article is the target",
			input: "walk to the",
			want:  Movement{Target: "the"},
		},
		{
			name:  "bare direction word",
			input: "forward",
			want:  Movement{Direction: "forward"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Classify(tt.input)
			require.Equal(t, KindMovement, cmd.Kind)
			require.NotNil(t, cmd.Movement)
			assert.Equal(t, tt.want, *cmd.Movement)
			assert.Nil(t, cmd.Action)
		})
	}
}

func TestClassify_Action(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Action
	}{
		{name: "examine", input: "I examine the old chest", want: Action{Verb: "examine", Target: "old chest"}},
		{name: "only one article stripped", input: "look at the mural", want: Action{Verb: "look", Target: "the mural"}},
		{name: "an", input: "Use an elixir", want: Action{Verb: "use", Target: "elixir"}},
		{name: "multi word verb", input: "pick up the sword", want: Action{Verb: "pick up", Target: "sword"}},
		{name: "preposition kept", input: "talk to the innkeeper", want: Action{Verb: "talk", Target: "to the innkeeper"}},
		{name: "no target", input: "I search", want: Action{Verb: "search"}},
		{name: "article only", input: "attack the", want: Action{Verb: "attack", Target: "the"}},
		{name: "case preserved", input: "Speak with Elder Mara", want: Action{Verb: "speak", Target: "with Elder Mara"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Classify(tt.input)
			require.Equal(t, KindAction, cmd.Kind)
			require.NotNil(t, cmd.Action)
			assert.Equal(t, tt.want, *cmd.Action)
			assert.Nil(t, cmd.Movement)
		})
	}
}

// Verbs are chosen by vocabulary order, not by where they appear in the text.
// "grab" comes first in the sentence but "examine" is declared earlier.
func TestClassify_ActionVocabularyOrder(t *testing.T) {
	cmd := Classify("I grab the lantern and examine it")
	require.Equal(t, KindAction, cmd.Kind)
	assert.Equal(t, "examine", cmd.Action.Verb)
	assert.Equal(t, "it", cmd.Action.Target)
}

// Vocabulary words match anywhere, including inside other words.
func TestClassify_SubstringMatch(t *testing.T) {
	cmd := Classify("attack the goblin")
	require.Equal(t, KindMovement, cmd.Kind)
	require.NotNil(t, cmd.Movement)
	assert.Equal(t, Movement{}, *cmd.Movement)
}

func TestClassify_Story(t *testing.T) {
	cmd := Classify("  The moonlight spills across the courtyard.  ")
	assert.Equal(t, KindStory, cmd.Kind)
	assert.Equal(t, "The moonlight spills across the courtyard.", cmd.Raw)
	assert.Nil(t, cmd.Dice)
	assert.Nil(t, cmd.Movement)
	assert.Nil(t, cmd.Action)
}

func TestClassify_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		cmd := Classify(input)
		assert.Equal(t, KindStory, cmd.Kind)
		assert.Equal(t, "", cmd.Raw)
	}
}

func TestClassify_Priority(t *testing.T) {
	assert.Equal(t, []Kind{
		KindDiceRoll,
		KindCharacterSheet,
		KindInventory,
		KindMovement,
		KindAction,
		KindStory,
	}, Priority())

	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{name: "dice beats movement words in label", input: "/r 1d20 sneak north", want: KindDiceRoll},
		{name: "movement beats action", input: "look north", want: KindMovement},
		{name: "keywords are substrings", input: "My cargo is heavy", want: KindMovement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input).Kind)
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	inputs := []string{
		"/roll 2d20+3 attack",
		"/bag",
		"I walk to the village square",
		"I examine the old chest",
		"The moonlight spills across the courtyard.",
		"",
	}
	for _, input := range inputs {
		assert.Equal(t, Classify(input), Classify(input), input)
	}
}

func TestClassify_RawIsTrimmedInput(t *testing.T) {
	input := "\t/R 4d6 Stats roll \n"
	cmd := Classify(input)
	assert.Equal(t, "/R 4d6 Stats roll", cmd.Raw)
	require.Equal(t, KindDiceRoll, cmd.Kind)
	assert.Equal(t, "Stats roll", cmd.Dice.Label)
}

func TestCommand_IsSlash(t *testing.T) {
	assert.True(t, Classify("/r 1d6").IsSlash())
	assert.True(t, Classify("/inv").IsSlash())
	assert.False(t, Classify("walk north").IsSlash())
	assert.False(t, Classify("hello").IsSlash())
}
