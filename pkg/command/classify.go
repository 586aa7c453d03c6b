package command

import (
	"strconv"
	"strings"

	"github.com/jwebster45206/story-commands/pkg/dice"
)

// rule recognises one Kind. Rules are tried in order and the first match wins.
type rule struct {
	kind  Kind
	match func(raw string) (Command, bool)
}

var rules = []rule{
	{KindDiceRoll, matchDice},
	{KindCharacterSheet, matchPattern(KindCharacterSheet, sheetPattern.MatchString)},
	{KindInventory, matchPattern(KindInventory, inventoryPattern.MatchString)},
	{KindMovement, matchMovement},
	{KindAction, matchAction},
}

// Priority lists the kinds in the order Classify tries them. KindStory is
// always last.
func Priority() []Kind {
	kinds := make([]Kind, 0, len(rules)+1)
	for _, r := range rules {
		kinds = append(kinds, r.kind)
	}
	return append(kinds, KindStory)
}

// Classify turns one line of player input into a Command. It never fails:
// input matching no rule, including the empty string, is a KindStory command.
//
// Target extraction for movement and action commands is a best-effort
// heuristic: it slices the input around the matched keyword and does not
// understand grammar.
func Classify(input string) Command {
	raw := strings.TrimSpace(input)
	for _, r := range rules {
		if cmd, ok := r.match(raw); ok {
			return cmd
		}
	}
	return Command{Kind: KindStory, Raw: raw}
}

func matchPattern(kind Kind, match func(string) bool) func(string) (Command, bool) {
	return func(raw string) (Command, bool) {
		if !match(raw) {
			return Command{}, false
		}
		return Command{Kind: kind, Raw: raw}, true
	}
}

// matchDice parses "/roll NdS[+M|-M] [label]" or the "/r" short form.
func matchDice(raw string) (Command, bool) {
	m := dicePattern.FindStringSubmatch(raw)
	if m == nil {
		return Command{}, false
	}

	count, err := strconv.Atoi(m[1])
	if err != nil {
		return Command{}, false
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Command{}, false
	}
	modifier := 0
	if m[3] != "" {
		if modifier, err = strconv.Atoi(m[3]); err != nil {
			return Command{}, false
		}
	}

	spec := dice.Spec{
		Count:    count,
		Sides:    sides,
		Modifier: modifier,
		Label:    strings.TrimSpace(m[4]),
	}
	if spec.Validate() != nil {
		return Command{}, false
	}
	return Command{Kind: KindDiceRoll, Raw: raw, Dice: &spec}, true
}

func matchMovement(raw string) (Command, bool) {
	if !movementWords.any(raw) {
		return Command{}, false
	}
	direction, _, _ := directionWords.first(raw)
	return Command{
		Kind: KindMovement,
		Raw:  raw,
		Movement: &Movement{
			Direction: direction,
			Target:    movementTarget(raw),
		},
	}, true
}

// movementTarget prefers the words after "to [the]", then a known location.
func movementTarget(raw string) string {
	if m := destinationPattern.FindStringSubmatch(raw); m != nil {
		if target := strings.TrimSpace(m[1]); target != "" {
			return target
		}
	}
	if loc, _, ok := locationWords.first(raw); ok {
		return loc
	}
	return ""
}

func matchAction(raw string) (Command, bool) {
	verb, loc, ok := actionWords.first(raw)
	if !ok {
		return Command{}, false
	}
	return Command{
		Kind: KindAction,
		Raw:  raw,
		Action: &Action{
			Verb:   verb,
			Target: actionTarget(raw[loc[1]:]),
		},
	}, true
}

// actionTarget strips one leading article or "at" from the text after the verb.
func actionTarget(rest string) string {
	rest = strings.TrimSpace(rest)
	rest = articlePattern.ReplaceAllString(rest, "")
	return strings.TrimSpace(rest)
}
