package dice

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{name: "single d20", spec: Spec{Count: 1, Sides: 20}},
		{name: "coin", spec: Spec{Count: 3, Sides: 2}},
		{name: "negative modifier is fine", spec: Spec{Count: 2, Sides: 6, Modifier: -4}},
		{name: "many dice", spec: Spec{Count: 200, Sides: 6}},
		{name: "large die", spec: Spec{Count: 1, Sides: 1001}},
		{name: "modifier at bound", spec: Spec{Count: 1, Sides: 20, Modifier: -MaxModifier}},
		{name: "zero count", spec: Spec{Count: 0, Sides: 6}, wantErr: true},
		{name: "negative count", spec: Spec{Count: -1, Sides: 6}, wantErr: true},
		{name: "one sided die", spec: Spec{Count: 1, Sides: 1}, wantErr: true},
		{name: "zero sides", spec: Spec{Count: 1, Sides: 0}, wantErr: true},
		{name: "modifier too large", spec: Spec{Count: 2, Sides: 6, Modifier: math.MaxInt}, wantErr: true},
		{name: "modifier too small", spec: Spec{Count: 2, Sides: 6, Modifier: -MaxModifier - 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSpec))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolve_Properties(t *testing.T) {
	roller := NewSeededRoller(42)

	for count := 1; count <= 12; count++ {
		for _, sides := range []int{2, 3, 4, 6, 8, 10, 12, 20, 100} {
			for _, mod := range []int{-5, 0, 7} {
				spec := Spec{Count: count, Sides: sides, Modifier: mod}
				out, err := Resolve(roller, spec)
				require.NoError(t, err)

				require.Len(t, out.Rolls, count)
				sum := 0
				for _, v := range out.Rolls {
					assert.GreaterOrEqual(t, v, 1)
					assert.LessOrEqual(t, v, sides)
					sum += v
				}
				assert.Equal(t, mod, out.Modifier)
				assert.Equal(t, sum+mod, out.Total)
			}
		}
	}
}

func TestResolve_UsesInjectedRoller(t *testing.T) {
	roller := NewSequenceRoller(17, 4)

	out, err := Resolve(roller, Spec{Count: 2, Sides: 20, Modifier: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{17, 4}, out.Rolls)
	assert.Equal(t, 24, out.Total)
	assert.Equal(t, []int{20, 20}, roller.Calls)
}

func TestResolve_InvalidSpec(t *testing.T) {
	roller := NewSequenceRoller()

	_, err := Resolve(roller, Spec{Count: 0, Sides: 6})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Empty(t, roller.Calls, "no entropy should be consumed for an invalid spec")
}

func TestResolve_ManyDice(t *testing.T) {
	out, err := Resolve(NewSeededRoller(3), Spec{Count: 200, Sides: 6})
	require.NoError(t, err)
	assert.Len(t, out.Rolls, 200)
}

func TestResolve_OverflowingTotal(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		rolls []int
	}{
		{
			name:  "huge modifier",
			spec:  Spec{Count: 2, Sides: 6, Modifier: math.MaxInt},
			rolls: []int{6, 6},
		},
		{
			name:  "huge dice",
			spec:  Spec{Count: 2, Sides: math.MaxInt},
			rolls: []int{math.MaxInt, math.MaxInt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Resolve(NewSequenceRoller(tt.rolls...), tt.spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSpec)
			assert.Zero(t, out.Total)
		})
	}
}

func TestResolve_RejectsOutOfRangeRoller(t *testing.T) {
	_, err := Resolve(NewSequenceRoller(7), Spec{Count: 1, Sides: 6})
	assert.Error(t, err)
}

func TestResolve_NilRollerUsesDefault(t *testing.T) {
	out, err := Resolve(nil, Spec{Count: 4, Sides: 6})
	require.NoError(t, err)
	assert.Len(t, out.Rolls, 4)
}

func TestSeededRoller_Deterministic(t *testing.T) {
	a := NewSeededRoller(7)
	b := NewSeededRoller(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Roll(20), b.Roll(20))
	}
}

func TestSeededRoller_CoversEveryFace(t *testing.T) {
	r := NewSeededRoller(99)
	seen := make(map[int]int)
	for i := 0; i < 6000; i++ {
		seen[r.Roll(6)]++
	}
	require.Len(t, seen, 6)
	for face := 1; face <= 6; face++ {
		// Loose bound; a uniform d6 lands near 1000 per face.
		assert.Greater(t, seen[face], 800, "face %d", face)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		spec     Spec
		outcome  Outcome
		expected string
	}{
		{
			name:     "positive modifier",
			spec:     Spec{Count: 2, Sides: 20, Modifier: 3},
			outcome:  Outcome{Rolls: []int{14, 6}, Modifier: 3, Total: 23},
			expected: "Rolling 2d20 +3\n[14 + 6] +3 = 23",
		},
		{
			name:     "label and no modifier",
			spec:     Spec{Count: 1, Sides: 6, Label: "perception"},
			outcome:  Outcome{Rolls: []int{5}, Total: 5},
			expected: "perception: Rolling 1d6\n[5] = 5",
		},
		{
			name:     "negative modifier",
			spec:     Spec{Count: 3, Sides: 4, Modifier: -2, Label: "damage"},
			outcome:  Outcome{Rolls: []int{1, 4, 2}, Modifier: -2, Total: 5},
			expected: "damage: Rolling 3d4 -2\n[1 + 4 + 2] -2 = 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.spec, tt.outcome))
		})
	}
}

var (
	headerPattern    = regexp.MustCompile(`^(?:(.+): )?Rolling (\d+)d(\d+)(?: ([+-]\d+))?$`)
	breakdownPattern = regexp.MustCompile(`^\[([\d + ]+)\](?: ([+-]\d+))? = (-?\d+)$`)
)

// Formatted output must be readable back into the same numbers.
func TestFormat_RoundTrip(t *testing.T) {
	roller := NewSeededRoller(2024)
	specs := []Spec{
		{Count: 1, Sides: 20},
		{Count: 2, Sides: 20, Modifier: 3},
		{Count: 4, Sides: 6, Modifier: -1, Label: "stealth"},
		{Count: 10, Sides: 100, Modifier: 12, Label: "loot table"},
	}

	for _, spec := range specs {
		t.Run(spec.Notation(), func(t *testing.T) {
			out, err := Resolve(roller, spec)
			require.NoError(t, err)

			lines := strings.Split(Format(spec, out), "\n")
			require.Len(t, lines, 2)

			header := headerPattern.FindStringSubmatch(lines[0])
			require.NotNil(t, header, "header %q", lines[0])
			assert.Equal(t, spec.Label, header[1])
			assert.Equal(t, strconv.Itoa(spec.Count), header[2])
			assert.Equal(t, strconv.Itoa(spec.Sides), header[3])

			breakdown := breakdownPattern.FindStringSubmatch(lines[1])
			require.NotNil(t, breakdown, "breakdown %q", lines[1])
			assert.Equal(t, header[4], breakdown[2], "modifier must match on both lines")

			sum := 0
			faces := strings.Split(breakdown[1], " + ")
			assert.Len(t, faces, spec.Count)
			for _, f := range faces {
				v, err := strconv.Atoi(f)
				require.NoError(t, err)
				sum += v
			}
			mod := 0
			if breakdown[2] != "" {
				mod, err = strconv.Atoi(breakdown[2])
				require.NoError(t, err)
			}
			assert.Equal(t, spec.Modifier, mod)

			total, err := strconv.Atoi(breakdown[3])
			require.NoError(t, err)
			assert.Equal(t, sum+mod, total)
		})
	}
}

func TestSpec_Notation(t *testing.T) {
	assert.Equal(t, "2d20+3", Spec{Count: 2, Sides: 20, Modifier: 3}.Notation())
	assert.Equal(t, "1d6", Spec{Count: 1, Sides: 6, Label: "ignored"}.Notation())
	assert.Equal(t, "3d8-1", Spec{Count: 3, Sides: 8, Modifier: -1}.Notation())
}

func TestIsQuickDie(t *testing.T) {
	for _, sides := range QuickDice {
		assert.True(t, IsQuickDie(sides))
	}
	assert.False(t, IsQuickDie(7))
	assert.False(t, IsQuickDie(0))
}
