package location

// DefaultLocations returns the built-in city map: the center, the industrial
// zone, the underground, and the wasteland.
func DefaultLocations() []*Location {
	return []*Location{
		{Name: "Неоновый проспект", Type: TypeCityCenter, Latitude: 55.7558, Longitude: 37.6176,
			Description: "Главная улица города с яркими неоновыми вывесками", SpawnRate: 0.8},
		{Name: "Кибер-плаза", Type: TypeCityCenter, Latitude: 55.7560, Longitude: 37.6178,
			Description: "Центральная площадь с торговыми центрами", SpawnRate: 0.9},
		{Name: "Нейрон-башня", Type: TypeCityCenter, Latitude: 55.7562, Longitude: 37.6180,
			Description: "Высокотехнологичный небоскреб", SpawnRate: 0.7},
		{Name: "Плазменный рынок", Type: TypeCyberMarket, Latitude: 55.7564, Longitude: 37.6182,
			Description: "Рынок с редкими технологиями", SpawnRate: 0.95},
		{Name: "Квантовый банк", Type: TypeCityCenter, Latitude: 55.7566, Longitude: 37.6184,
			Description: "Банк с квантовой защитой", SpawnRate: 0.6},

		{Name: "Нанобот-завод", Type: TypeIndustrialZone, Latitude: 55.7570, Longitude: 37.6186,
			Description: "Завод по производству наноботов", SpawnRate: 0.7},
		{Name: "Плазменная фабрика", Type: TypeIndustrialZone, Latitude: 55.7572, Longitude: 37.6188,
			Description: "Фабрика плазменного оружия", SpawnRate: 0.8},
		{Name: "Квантовая лаборатория", Type: TypeIndustrialZone, Latitude: 55.7574, Longitude: 37.6190,
			Description: "Секретная лаборатория", SpawnRate: 0.6},
		{Name: "Кибер-верфь", Type: TypeIndustrialZone, Latitude: 55.7576, Longitude: 37.6192,
			Description: "Верфь для кибер-кораблей", SpawnRate: 0.5},

		{Name: "Нейронные катакомбы", Type: TypeUnderground, Latitude: 55.7580, Longitude: 37.6194,
			Description: "Подземные туннели с нейронными сетями", SpawnRate: 0.8},
		{Name: "Плазменные пещеры", Type: TypeUnderground, Latitude: 55.7582, Longitude: 37.6196,
			Description: "Пещеры с плазменными кристаллами", SpawnRate: 0.9},
		{Name: "Квантовый бункер", Type: TypeUnderground, Latitude: 55.7584, Longitude: 37.6198,
			Description: "Секретный бункер", SpawnRate: 0.7},
		{Name: "Хроно-шахта", Type: TypeUnderground, Latitude: 55.7586, Longitude: 37.6200,
			Description: "Шахта с временными аномалиями", SpawnRate: 0.6},

		{Name: "Нейронная пустошь", Type: TypeWasteland, Latitude: 55.7590, Longitude: 37.6202,
			Description: "Пустошь с нейронными остатками", SpawnRate: 0.5},
		{Name: "Плазменная пустыня", Type: TypeWasteland, Latitude: 55.7592, Longitude: 37.6204,
			Description: "Пустыня с плазменными бурями", SpawnRate: 0.6},
		{Name: "Квантовые руины", Type: TypeWasteland, Latitude: 55.7594, Longitude: 37.6206,
			Description: "Руины древней цивилизации", SpawnRate: 0.8},
		{Name: "Хроно-кратер", Type: TypeWasteland, Latitude: 55.7596, Longitude: 37.6208,
			Description: "Кратер с временными искажениями", SpawnRate: 0.7},
	}
}
