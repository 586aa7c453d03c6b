package actor

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jwebster45206/d20"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stats are the core LitRPG attributes shown on a character sheet
type Stats struct {
	Strength     int `json:"strength"`
	Intelligence int `json:"intelligence"`
	Agility      int `json:"agility"`
	Charisma     int `json:"charisma"`
	Reputation   int `json:"reputation"`
}

var coreStats = []string{"strength", "intelligence", "agility", "charisma", "reputation"}

// ToAttributes converts Stats to a map for d20.Actor compatibility
func (s *Stats) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"intelligence": s.Intelligence,
		"agility":      s.Agility,
		"charisma":     s.Charisma,
		"reputation":   s.Reputation,
	}
}

// CharacterSpec is the serializable specification for a player character
type CharacterSpec struct {
	ID              string         `json:"id"`
	Name            string         `json:"name,omitempty"`
	Class           string         `json:"class,omitempty"` // e.g. arcblade, shadow_walker, lorekeeper
	Level           int            `json:"level,omitempty"`
	Role            string         `json:"role,omitempty"` // hero, antihero, neutral
	Alignment       string         `json:"alignment,omitempty"`
	Background      string         `json:"background,omitempty"`
	Pronouns        string         `json:"pronouns,omitempty"`
	Backstory       string         `json:"backstory,omitempty"`
	Stats           Stats          `json:"stats,omitempty"`
	HP              int            `json:"hp,omitempty"`
	MaxHP           int            `json:"max_hp,omitempty"`
	Mana            int            `json:"mana,omitempty"`
	MaxMana         int            `json:"max_mana,omitempty"`
	AC              int            `json:"ac,omitempty"`
	CombatModifiers map[string]int `json:"combat_modifiers,omitempty"`
	Attributes      map[string]int `json:"attributes,omitempty"` // Skills, proficiencies, etc.
	Traits          []string       `json:"traits,omitempty"`
	Inventory       []string       `json:"inventory,omitempty"`
}

// Character is the runtime representation of a player character
type Character struct {
	Spec  *CharacterSpec
	Actor *d20.Actor // Built at runtime from CharacterSpec
}

// NewCharacterFromSpec builds the d20.Actor for spec.
// MaxHP must be positive.
func NewCharacterFromSpec(spec *CharacterSpec) (*Character, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}

	allAttrs := spec.Stats.ToAttributes()
	maps.Copy(allAttrs, spec.Attributes)

	actor, err := d20.NewActor(spec.ID).
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(allAttrs).
		WithCombatModifiers(spec.CombatModifiers).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	// Set current HP if different from max
	if spec.HP != spec.MaxHP && spec.HP > 0 {
		if err := actor.SetHP(spec.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}

	return &Character{Spec: spec, Actor: actor}, nil
}

// ReadCharacterSpec reads a character spec from a JSON file.
// The filename (without .json extension) overrides any ID in the JSON.
func ReadCharacterSpec(path string) (*CharacterSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character file: %w", err)
	}

	var spec CharacterSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character spec: %w", err)
	}
	spec.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	return &spec, nil
}

// MarshalJSON serializes the character with HP, AC and attributes read from
// the Actor, so runtime damage is reflected.
func (c *Character) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	if c.Actor == nil {
		return json.Marshal(c.Spec)
	}

	resp := *c.Spec
	resp.HP = c.Actor.HP()
	resp.MaxHP = c.Actor.MaxHP()
	resp.AC = c.Actor.AC()
	resp.Stats = Stats{
		Strength:     c.attr("strength"),
		Intelligence: c.attr("intelligence"),
		Agility:      c.attr("agility"),
		Charisma:     c.attr("charisma"),
		Reputation:   c.attr("reputation"),
	}

	resp.CombatModifiers = make(map[string]int)
	for _, mod := range c.Actor.GetCombatModifiers() {
		resp.CombatModifiers[mod.Reason] = mod.Value
	}

	resp.Attributes = make(map[string]int)
	for key := range c.Spec.Attributes {
		if slices.Contains(coreStats, key) {
			continue
		}
		if val, ok := c.Actor.Attribute(key); ok {
			resp.Attributes[key] = val
		}
	}

	return json.Marshal(resp)
}

func (c *Character) attr(key string) int {
	if val, ok := c.Actor.Attribute(key); ok {
		return val
	}
	return 0
}

// Title turns identifiers like "shadow_walker" into "Shadow Walker".
// A Caser is stateful, so one is made per call.
func Title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// Sheet renders the character sheet shown for the /sheet command.
//
// Example output:
//
//	Kael (they/them), Level 3 Arcblade
//	HP 18/24 | Mana 10/12 | AC 14
//	Strength 14 | Intelligence 12 | Agility 15 | Charisma 9 | Reputation 3
//	Skills: Stealth 4
//	Traits: stubborn, curious
func (c *Character) Sheet() string {
	if c == nil || c.Spec == nil {
		return "No character sheet is attached to this session."
	}
	spec := c.Spec

	var sb strings.Builder
	sb.WriteString(spec.Name)
	if spec.Pronouns != "" {
		fmt.Fprintf(&sb, " (%s)", spec.Pronouns)
	}
	var summary []string
	if spec.Level > 0 {
		summary = append(summary, fmt.Sprintf("Level %d", spec.Level))
	}
	if spec.Class != "" {
		summary = append(summary, Title(spec.Class))
	}
	if len(summary) > 0 {
		sb.WriteString(", " + strings.Join(summary, " "))
	}
	sb.WriteString("\n")

	hp, maxHP, ac := spec.HP, spec.MaxHP, spec.AC
	if c.Actor != nil {
		hp, maxHP, ac = c.Actor.HP(), c.Actor.MaxHP(), c.Actor.AC()
	}
	fmt.Fprintf(&sb, "HP %d/%d", hp, maxHP)
	if spec.MaxMana > 0 {
		fmt.Fprintf(&sb, " | Mana %d/%d", spec.Mana, spec.MaxMana)
	}
	fmt.Fprintf(&sb, " | AC %d\n", ac)

	stats := spec.Stats.ToAttributes()
	parts := make([]string, 0, len(coreStats))
	for _, key := range coreStats {
		val := stats[key]
		if c.Actor != nil {
			val = c.attr(key)
		}
		parts = append(parts, fmt.Sprintf("%s %d", Title(key), val))
	}
	sb.WriteString(strings.Join(parts, " | "))

	if skills := slices.Sorted(maps.Keys(spec.Attributes)); len(skills) > 0 {
		parts = parts[:0]
		for _, key := range skills {
			if slices.Contains(coreStats, key) {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s %d", Title(key), spec.Attributes[key]))
		}
		if len(parts) > 0 {
			sb.WriteString("\nSkills: " + strings.Join(parts, ", "))
		}
	}
	if len(spec.Traits) > 0 {
		sb.WriteString("\nTraits: " + strings.Join(spec.Traits, ", "))
	}
	return sb.String()
}

// DescribeInventory renders an inventory list for the /inventory command.
func DescribeInventory(items []string) string {
	if len(items) == 0 {
		return "Your inventory is empty."
	}
	return "You have:\n- " + strings.Join(items, "\n- ")
}
