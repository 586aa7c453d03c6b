package command

import (
	"regexp"
)

// Vocabularies recognised by the classifier. Members match as substrings, so
// "goblin" contains "go". Order matters wherever the first present member wins.
var (
	MovementVerbs = []string{"walk", "run", "move", "go", "travel", "head", "sprint", "sneak"}
	Directions    = []string{"north", "south", "east", "west", "forward", "back", "backward"}
	Locations     = []string{"village", "forest", "desert", "dungeon", "town", "cave", "castle"}

	// ActionVerbs is scanned in declaration order, not by position in the text.
	ActionVerbs = []string{
		"examine", "look", "inspect", "search", "talk", "speak", "attack",
		"use", "open", "close", "take", "grab", "pick up", "interact",
	}
)

var (
	dicePattern      = regexp.MustCompile(`(?i)^/(?:roll|r)\s+(\d+)d(\d+)([+-]\d+)?(?:\s+(.+))?$`)
	sheetPattern     = regexp.MustCompile(`(?i)^/(?:sheet|character|stats)$`)
	inventoryPattern = regexp.MustCompile(`(?i)^/(?:inventory|inv|items|bag)$`)

	// "to" may end a longer word, so "onto the bridge" reads as "bridge".
	destinationPattern = regexp.MustCompile(`(?i)to\s+(?:the\s+)?([\w\s]+)`)
	articlePattern     = regexp.MustCompile(`(?i)^(?:at|the|a|an)\s+`)
)

// keywordSet matches vocabulary members as case-insensitive substrings.
type keywordSet struct {
	words    []string
	patterns []*regexp.Regexp
}

func newKeywordSet(words ...[]string) *keywordSet {
	ks := &keywordSet{}
	for _, list := range words {
		for _, w := range list {
			ks.words = append(ks.words, w)
			ks.patterns = append(ks.patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(w)))
		}
	}
	return ks
}

// first returns the earliest-declared member present in s, and the byte
// range of its first occurrence.
func (ks *keywordSet) first(s string) (string, []int, bool) {
	for i, p := range ks.patterns {
		if loc := p.FindStringIndex(s); loc != nil {
			return ks.words[i], loc, true
		}
	}
	return "", nil, false
}

func (ks *keywordSet) any(s string) bool {
	_, _, ok := ks.first(s)
	return ok
}

var (
	movementWords  = newKeywordSet(MovementVerbs, Directions)
	directionWords = newKeywordSet(Directions)
	locationWords  = newKeywordSet(Locations)
	actionWords    = newKeywordSet(ActionVerbs)
)
