package opponent

import (
	"fmt"

	"github.com/cory-johannsen/arena/internal/game/dice"
)

// MaxLevelGap is the largest absolute level difference allowed between a
// player and a matched opponent.
const MaxLevelGap = 3

// Roster holds the opponent templates available for matchmaking. It is
// read-only after construction and safe for concurrent use.
type Roster struct {
	templates []*Template
}

// NewRoster builds a roster from validated templates.
//
// Precondition: every template must pass Validate.
// Postcondition: Returns a roster over a private copy of templates, or an
// error naming the first invalid one.
func NewRoster(templates []*Template) (*Roster, error) {
	for _, tmpl := range templates {
		if err := tmpl.Validate(); err != nil {
			return nil, fmt.Errorf("building roster: %w", err)
		}
	}
	return &Roster{templates: append([]*Template(nil), templates...)}, nil
}

// Templates returns all templates in the roster.
func (r *Roster) Templates() []*Template {
	return append([]*Template(nil), r.templates...)
}

// Eligible returns every template within MaxLevelGap levels of playerLevel.
func (r *Roster) Eligible(playerLevel int) []*Template {
	var eligible []*Template
	for _, tmpl := range r.templates {
		diff := tmpl.Level - playerLevel
		if diff < 0 {
			diff = -diff
		}
		if diff <= MaxLevelGap {
			eligible = append(eligible, tmpl)
		}
	}
	return eligible
}

// FindOpponent picks a uniformly random template whose level is within
// MaxLevelGap of playerLevel.
//
// Precondition: src must not be nil.
// Postcondition: Returns (template, true) with |template.Level - playerLevel|
// <= MaxLevelGap, or (nil, false) when no template qualifies.
func (r *Roster) FindOpponent(playerLevel int, src dice.Source) (*Template, bool) {
	eligible := r.Eligible(playerLevel)
	if len(eligible) == 0 {
		return nil, false
	}
	return eligible[src.Intn(len(eligible))], true
}
