package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/story-commands/pkg/actor"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <character.json> [more.json ...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &CharacterValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("%s is valid!\n", filename)
	}
	if failed {
		os.Exit(1)
	}
}

type CharacterValidator struct {
	errors []string
}

func (v *CharacterValidator) validateFile(filename string) error {
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("character file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidID(nameWithoutExt) {
		return fmt.Errorf("character filename '%s' must be lowercase snake_case (e.g., kael.json, not Kael.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var spec actor.CharacterSpec
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}
	// The filename is the character ID, as when the API loads it.
	spec.ID = nameWithoutExt

	v.errors = nil
	v.validateCharacter(&spec)
	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *CharacterValidator) validateCharacter(spec *actor.CharacterSpec) {
	if strings.TrimSpace(spec.Name) == "" {
		v.addError("name is required")
	}
	if spec.MaxHP <= 0 {
		v.addError(fmt.Sprintf("max_hp must be positive, got %d", spec.MaxHP))
	}
	if spec.HP < 0 || spec.HP > spec.MaxHP {
		v.addError(fmt.Sprintf("hp %d must be between 0 and max_hp %d", spec.HP, spec.MaxHP))
	}
	if spec.Mana > spec.MaxMana {
		v.addError(fmt.Sprintf("mana %d exceeds max_mana %d", spec.Mana, spec.MaxMana))
	}
	if spec.Level < 0 {
		v.addError(fmt.Sprintf("level cannot be negative, got %d", spec.Level))
	}

	for name := range spec.Attributes {
		v.validateIDFormat("attribute", name)
	}
	for name := range spec.CombatModifiers {
		v.validateIDFormat("combat modifier", name)
	}
	for i, item := range spec.Inventory {
		if strings.TrimSpace(item) == "" {
			v.addError(fmt.Sprintf("inventory item %d is blank", i))
		}
	}

	if len(v.errors) > 0 {
		return
	}
	if _, err := actor.NewCharacterFromSpec(spec); err != nil {
		v.addError(err.Error())
	}
}

func (v *CharacterValidator) validateIDFormat(fieldName, id string) {
	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *CharacterValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
