package item

// defaultItems is the built-in catalog table.
func defaultItems() []Item {
	return []Item{
		// Weapons
		{Name: "Кибер-меч", Type: TypeWeapon, Rarity: RarityCommon, Description: "Базовый кибер-меч с энергетическим лезвием", Cost: 100, AttackBonus: 5},
		{Name: "Плазменный пистолет", Type: TypeWeapon, Rarity: RarityRare, Description: "Мощный плазменный пистолет", Cost: 300, AttackBonus: 12},
		{Name: "Квантовый лазер", Type: TypeWeapon, Rarity: RarityEpic, Description: "Продвинутый квантовый лазер", Cost: 800, AttackBonus: 20},
		{Name: "Нейронный деструктор", Type: TypeWeapon, Rarity: RarityLegendary, Description: "Легендарное оружие будущего", Cost: 2000, AttackBonus: 35},
		{Name: "Нанобот-кастет", Type: TypeWeapon, Rarity: RarityCommon, Description: "Кастет с наноботами", Cost: 80, AttackBonus: 4},
		{Name: "Гравитационная пушка", Type: TypeWeapon, Rarity: RarityEpic, Description: "Оружие, использующее гравитацию", Cost: 1200, AttackBonus: 25},
		{Name: "Хроно-бластер", Type: TypeWeapon, Rarity: RarityLegendary, Description: "Оружие, замедляющее время", Cost: 2500, AttackBonus: 40},

		// Armor
		{Name: "Кибер-жилет", Type: TypeArmor, Rarity: RarityCommon, Description: "Легкая кибер-броня", Cost: 120, DefenseBonus: 8},
		{Name: "Нейронный костюм", Type: TypeArmor, Rarity: RarityRare, Description: "Броня с нейронной защитой", Cost: 400, DefenseBonus: 15},
		{Name: "Квантовая броня", Type: TypeArmor, Rarity: RarityEpic, Description: "Продвинутая квантовая защита", Cost: 1000, DefenseBonus: 25},
		{Name: "Хроно-щит", Type: TypeArmor, Rarity: RarityLegendary, Description: "Легендарная броня времени", Cost: 2500, DefenseBonus: 40},
		{Name: "Нанобот-панцирь", Type: TypeArmor, Rarity: RarityRare, Description: "Броня из наноботов", Cost: 350, DefenseBonus: 12},
		{Name: "Плазменный щит", Type: TypeArmor, Rarity: RarityEpic, Description: "Энергетический щит", Cost: 900, DefenseBonus: 22},

		// Implants
		{Name: "Нейронный ускоритель", Type: TypeImplant, Rarity: RarityCommon, Description: "Базовый имплант для ускорения", Cost: 150, SpeedBonus: 3},
		{Name: "Кибер-глаз", Type: TypeImplant, Rarity: RarityRare, Description: "Имплант с улучшенным зрением", Cost: 500, CriticalBonus: 8},
		{Name: "Квантовый процессор", Type: TypeImplant, Rarity: RarityEpic, Description: "Продвинутый мозговой имплант", Cost: 1200, SpeedBonus: 8, CriticalBonus: 12},
		{Name: "Хроно-имплант", Type: TypeImplant, Rarity: RarityLegendary, Description: "Легендарный имплант времени", Cost: 3000, SpeedBonus: 15, CriticalBonus: 20},
		{Name: "Нанобот-стимулятор", Type: TypeImplant, Rarity: RarityRare, Description: "Имплант для стимуляции", Cost: 400, SpeedBonus: 5},
		{Name: "Плазменный активатор", Type: TypeImplant, Rarity: RarityEpic, Description: "Имплант плазменной энергии", Cost: 1000, CriticalBonus: 15},

		// Utilities
		{Name: "Меди-гель", Type: TypeUtility, Rarity: RarityCommon, Description: "Восстанавливает здоровье", Cost: 50},
		{Name: "Энергетический стимулятор", Type: TypeUtility, Rarity: RarityRare, Description: "Временно увеличивает характеристики", Cost: 200},
		{Name: "Квантовый регенератор", Type: TypeUtility, Rarity: RarityEpic, Description: "Быстрое восстановление", Cost: 600},
		{Name: "Хроно-ревертер", Type: TypeUtility, Rarity: RarityLegendary, Description: "Полное восстановление", Cost: 1500},
		{Name: "Нанобот-ремонтник", Type: TypeUtility, Rarity: RarityRare, Description: "Автоматический ремонт", Cost: 300},
		{Name: "Плазменный аккумулятор", Type: TypeUtility, Rarity: RarityEpic, Description: "Увеличивает максимальное здоровье", Cost: 800},
	}
}
