package opponent_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/dice"
	"github.com/cory-johannsen/arena/internal/game/opponent"
)

func defaultRoster(t *testing.T) *opponent.Roster {
	t.Helper()
	r, err := opponent.NewRoster(opponent.DefaultTemplates())
	require.NoError(t, err)
	return r
}

func TestDefaultTemplates_Valid(t *testing.T) {
	templates := opponent.DefaultTemplates()
	require.Len(t, templates, 15)
	for _, tmpl := range templates {
		assert.NoError(t, tmpl.Validate())
		assert.Equal(t, 15, tmpl.CriticalDamage)
	}
}

func TestEligible_LevelBracket(t *testing.T) {
	r := defaultRoster(t)

	names := func(templates []*opponent.Template) []string {
		out := make([]string, 0, len(templates))
		for _, tmpl := range templates {
			out = append(out, tmpl.Name)
		}
		return out
	}

	// Level 1 reaches templates at levels 1 through 4.
	assert.Equal(t, []string{
		"Кибер-гангстер", "Нейрон-хакер", "Плазменный наемник", "Квантовый страж",
	}, names(r.Eligible(1)))

	// Level 12 straddles the tiers: it reaches down to level 9 in the street
	// tier and up to the level-15 elite.
	assert.Equal(t, []string{
		"Квантовый демон", "Хроно-властелин", "Кибер-легенда",
	}, names(r.Eligible(12)))
}

func TestFindOpponent_NoneEligible(t *testing.T) {
	r := defaultRoster(t)
	tmpl, ok := r.FindOpponent(50, dice.NewSeededSource(1))
	assert.False(t, ok)
	assert.Nil(t, tmpl)
}

func TestFindOpponent_Deterministic(t *testing.T) {
	r := defaultRoster(t)
	a, ok := r.FindOpponent(5, dice.NewSeededSource(42))
	require.True(t, ok)
	b, ok := r.FindOpponent(5, dice.NewSeededSource(42))
	require.True(t, ok)
	assert.Equal(t, a.Name, b.Name)
}

func TestNewRoster_RejectsInvalid(t *testing.T) {
	_, err := opponent.NewRoster([]*opponent.Template{{Name: "", Level: 1, MaxHP: 10}})
	assert.Error(t, err)
}

func TestLoadTemplates_YAML(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`name: "Тестовый дрон"
level: 2
max_hp: 60
attack: 9
defense: 4
speed: 6
critical_damage: 10
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drone.yaml"), data, 0o644))

	templates, err := opponent.LoadTemplates(dir)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Тестовый дрон", templates[0].Name)
	assert.Equal(t, 60, templates[0].MaxHP)
	assert.Equal(t, 10, templates[0].CriticalDamage)
}

func TestLoadTemplateFromBytes_InvalidYAML(t *testing.T) {
	_, err := opponent.LoadTemplateFromBytes([]byte("{not yaml"))
	assert.Error(t, err)
}

// TestPropertyFindOpponent_WithinGap checks that every match stays inside the
// level bracket no matter the player level or dice seed.
func TestPropertyFindOpponent_WithinGap(t *testing.T) {
	r := defaultRoster(t)
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 40).Draw(rt, "level")
		seed := rapid.Int64().Draw(rt, "seed")

		tmpl, ok := r.FindOpponent(level, dice.NewSeededSource(seed))
		if !ok {
			for _, candidate := range r.Templates() {
				diff := candidate.Level - level
				if diff < 0 {
					diff = -diff
				}
				if diff <= opponent.MaxLevelGap {
					rt.Fatalf("no match at level %d despite eligible %q", level, candidate.Name)
				}
			}
			return
		}
		diff := tmpl.Level - level
		if diff < 0 {
			diff = -diff
		}
		if diff > opponent.MaxLevelGap {
			rt.Fatalf("matched %q at level %d for player level %d", tmpl.Name, tmpl.Level, level)
		}
	})
}
