package dice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSpec is returned when a Spec breaks the count/sides invariant,
// carries an out-of-range modifier, or would overflow its total.
var ErrInvalidSpec = errors.New("invalid dice spec")

const (
	MinSides = 2
	// MaxModifier bounds the magnitude of a modifier so totals stay far from
	// int overflow.
	MaxModifier = 1_000_000_000
)

// QuickDice are the die sizes offered as one-click rolls.
var QuickDice = []int{4, 6, 8, 10, 12, 20, 100}

// Spec is a parsed, unresolved dice roll such as "2d20+3 perception".
type Spec struct {
	Count    int    `json:"count"`
	Sides    int    `json:"sides"`
	Modifier int    `json:"modifier,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Validate reports whether the spec can be rolled.
func (s Spec) Validate() error {
	if s.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", ErrInvalidSpec, s.Count)
	}
	if s.Sides < MinSides {
		return fmt.Errorf("%w: sides must be at least %d, got %d", ErrInvalidSpec, MinSides, s.Sides)
	}
	if s.Modifier < -MaxModifier || s.Modifier > MaxModifier {
		return fmt.Errorf("%w: modifier must be between %d and %d, got %d", ErrInvalidSpec, -MaxModifier, MaxModifier, s.Modifier)
	}
	return nil
}

// Notation renders the spec in NdS[+M] form, without the label.
func (s Spec) Notation() string {
	return fmt.Sprintf("%dd%d%s", s.Count, s.Sides, signed(s.Modifier, ""))
}

// IsQuickDie reports whether sides is one of QuickDice.
func IsQuickDie(sides int) bool {
	for _, q := range QuickDice {
		if q == sides {
			return true
		}
	}
	return false
}

// Outcome is the result of rolling a Spec once.
type Outcome struct {
	Rolls    []int `json:"rolls"`
	Modifier int   `json:"modifier"`
	Total    int   `json:"total"`
}

// Resolve rolls every die in spec using r. Total is always the sum of Rolls
// plus the modifier.
func Resolve(r Roller, spec Spec) (Outcome, error) {
	if err := spec.Validate(); err != nil {
		return Outcome{}, err
	}
	if r == nil {
		r = DefaultRoller()
	}

	rolls := make([]int, spec.Count)
	sum := 0
	for i := range rolls {
		v := r.Roll(spec.Sides)
		if v < 1 || v > spec.Sides {
			return Outcome{}, fmt.Errorf("roller returned %d for a d%d", v, spec.Sides)
		}
		rolls[i] = v
		var ok bool
		if sum, ok = add(sum, v); !ok {
			return Outcome{}, fmt.Errorf("%w: total of %s overflows", ErrInvalidSpec, spec.Notation())
		}
	}

	total, ok := add(sum, spec.Modifier)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: total of %s overflows", ErrInvalidSpec, spec.Notation())
	}

	return Outcome{
		Rolls:    rolls,
		Modifier: spec.Modifier,
		Total:    total,
	}, nil
}

// add returns a+b and false if the sum wrapped.
func add(a, b int) (int, bool) {
	c := a + b
	if (c > a) != (b > 0) {
		return c, false
	}
	return c, true
}

// Format renders a resolved roll for display.
//
// Example output:
//
//	perception: Rolling 2d20 +3
//	[14 + 6] +3 = 23
func Format(spec Spec, outcome Outcome) string {
	mod := signed(outcome.Modifier, " ")

	parts := make([]string, len(outcome.Rolls))
	for i, v := range outcome.Rolls {
		parts[i] = strconv.Itoa(v)
	}

	var sb strings.Builder
	if spec.Label != "" {
		sb.WriteString(spec.Label)
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "Rolling %dd%d%s\n", spec.Count, spec.Sides, mod)
	fmt.Fprintf(&sb, "[%s]%s = %d", strings.Join(parts, " + "), mod, outcome.Total)
	return sb.String()
}

// signed renders a non-zero modifier with an explicit sign.
func signed(n int, prefix string) string {
	switch {
	case n > 0:
		return prefix + "+" + strconv.Itoa(n)
	case n < 0:
		return prefix + strconv.Itoa(n)
	default:
		return ""
	}
}
