package session

import (
	"time"

	"github.com/jwebster45206/story-commands/pkg/chat"
	"github.com/jwebster45206/story-commands/pkg/command"
	"github.com/jwebster45206/story-commands/pkg/dice"
)

// Result is the outcome of interpreting one line of player input.
type Result struct {
	Command   command.Command
	Outcome   *dice.Outcome // set for dice rolls
	Formatted string        // rendered dice roll
	Handled   bool          // True if answered locally and no turn goes to the game engine
	Message   string        // Reply for handled commands, turn text otherwise
	Role      string        // Role for the message, e.g. "user", "assistant"
}

// Evaluate classifies input and resolves any dice roll, without session
// state. Sheet and inventory queries are left unhandled.
func Evaluate(input string, roller dice.Roller) (*Result, error) {
	cmd := command.Classify(input)
	res := &Result{
		Command: cmd,
		Message: cmd.Raw,
		Role:    chat.ChatRoleUser,
	}
	if cmd.Kind == command.KindDiceRoll {
		if err := res.roll(roller); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Interpret classifies input against this session. Character sheet and
// inventory queries are answered from session state. Dice rolls are resolved,
// logged, and become a turn carrying the formatted result. Everything else
// becomes a turn carrying the player's text.
func (s *Session) Interpret(input string, roller dice.Roller) (*Result, error) {
	res, err := Evaluate(input, roller)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	switch res.Command.Kind {
	case command.KindCharacterSheet:
		sheet, err := s.DescribeCharacter()
		if err != nil {
			return nil, err
		}
		res.Handled = true
		res.Message = sheet
		res.Role = chat.ChatRoleAgent

	case command.KindInventory:
		res.Handled = true
		res.Message = s.DescribeInventory()
		res.Role = chat.ChatRoleAgent

	case command.KindDiceRoll:
		s.recordRoll(RollRecord{
			Spec:      *res.Command.Dice,
			Outcome:   *res.Outcome,
			Formatted: res.Formatted,
			RolledAt:  now,
		})

	default:
		res.Message = chat.FormatWithCharacterName(res.Command.Raw, s.CharacterName())
	}

	if !res.Handled {
		s.recordTurn(chat.Message{Role: res.Role, Content: res.Message})
	}
	s.UpdatedAt = now
	return res, nil
}

// Roll resolves spec directly, outside of text input, and logs it.
func (s *Session) Roll(spec dice.Spec, roller dice.Roller) (RollRecord, error) {
	out, err := dice.Resolve(roller, spec)
	if err != nil {
		return RollRecord{}, err
	}
	rec := RollRecord{
		Spec:      spec,
		Outcome:   out,
		Formatted: dice.Format(spec, out),
		RolledAt:  time.Now(),
	}
	s.recordRoll(rec)
	s.UpdatedAt = rec.RolledAt
	return rec, nil
}

func (r *Result) roll(roller dice.Roller) error {
	spec := *r.Command.Dice
	out, err := dice.Resolve(roller, spec)
	if err != nil {
		return err
	}
	r.Outcome = &out
	r.Formatted = dice.Format(spec, out)
	r.Message = r.Formatted
	return nil
}
