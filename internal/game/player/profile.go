package player

import "github.com/cory-johannsen/arena/internal/game/item"

// CombatProfile is the aggregated view of a player's combat stats: base values
// plus the summed bonuses of every currently held item. It is computed fresh
// for each use and discarded afterwards, never cached, so inventory changes
// can't drift out of sync with it.
type CombatProfile struct {
	Attack         int
	Defense        int
	Speed          int
	CriticalDamage int
}

// Profile aggregates base stats with item bonuses: weapons add attack, armor
// adds defense, implants add speed and critical damage. Utility items carry
// no passive bonuses.
//
// Postcondition: Each field equals the base stat plus the sum of the matching
// bonus across the whole inventory.
func (p *Player) Profile() CombatProfile {
	prof := CombatProfile{
		Attack:         p.Attack,
		Defense:        p.Defense,
		Speed:          p.Speed,
		CriticalDamage: p.CriticalDamage,
	}
	for _, it := range p.Inventory {
		switch it.Type {
		case item.TypeWeapon:
			prof.Attack += it.AttackBonus
		case item.TypeArmor:
			prof.Defense += it.DefenseBonus
		case item.TypeImplant:
			prof.Speed += it.SpeedBonus
			prof.CriticalDamage += it.CriticalBonus
		}
	}
	return prof
}
