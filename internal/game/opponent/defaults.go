package opponent

// defaultCritical is the critical hit chance shared by every built-in
// opponent.
const defaultCritical = 15

// DefaultTemplates returns the built-in opponent roster used when no content
// directory is configured. It spans the street tier (levels 1-10) and the
// elite tier (levels 15-35).
func DefaultTemplates() []*Template {
	tiers := []struct {
		name                     string
		level, hp, atk, def, spd int
	}{
		{"Кибер-гангстер", 1, 80, 12, 6, 7},
		{"Нейрон-хакер", 2, 90, 15, 8, 9},
		{"Плазменный наемник", 3, 100, 18, 10, 8},
		{"Квантовый страж", 4, 120, 22, 15, 10},
		{"Хроно-охотник", 5, 140, 25, 18, 12},
		{"Нанобот-убийца", 6, 160, 28, 20, 14},
		{"Гравитационный воин", 7, 180, 32, 25, 16},
		{"Нейронный титан", 8, 200, 35, 28, 18},
		{"Квантовый демон", 9, 220, 38, 30, 20},
		{"Хроно-властелин", 10, 250, 42, 35, 22},

		{"Кибер-легенда", 15, 300, 50, 40, 25},
		{"Нейронный бог", 20, 400, 60, 50, 30},
		{"Плазменный тиран", 25, 500, 70, 60, 35},
		{"Квантовый император", 30, 600, 80, 70, 40},
		{"Хроно-создатель", 35, 700, 90, 80, 45},
	}

	templates := make([]*Template, 0, len(tiers))
	for _, t := range tiers {
		templates = append(templates, &Template{
			Name:           t.name,
			Level:          t.level,
			MaxHP:          t.hp,
			Attack:         t.atk,
			Defense:        t.def,
			Speed:          t.spd,
			CriticalDamage: defaultCritical,
		})
	}
	return templates
}
