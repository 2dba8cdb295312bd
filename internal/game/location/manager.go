package location

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/dice"
	"github.com/cory-johannsen/arena/internal/game/item"
	"github.com/cory-johannsen/arena/internal/game/player"
)

// Search tuning constants.
const (
	searchRadiusMeters = 1000
	infoRadiusMeters   = 500
	findChancePercent  = 70
	historyLimit       = 10
	eventChancePercent = 10
)

// Coordinate is a player-reported position.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SearchRecord is one entry in a player's search history.
type SearchRecord struct {
	Timestamp  time.Time  `json:"timestamp"`
	Position   Coordinate `json:"position"`
	ItemsFound []string   `json:"items_found"`
}

// SearchStats summarizes a player's search history window.
type SearchStats struct {
	TotalSearches   int        `json:"total_searches"`
	TotalItemsFound int        `json:"total_items_found"`
	LastSearch      *time.Time `json:"last_search,omitempty"`
}

// NearbyLocation is one entry of a location info response.
type NearbyLocation struct {
	Name        string `json:"name"`
	Distance    int    `json:"distance"` // meters
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Info describes the surroundings of a coordinate.
type Info struct {
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Nearby      []NearbyLocation `json:"nearby_locations"`
}

// Event is a random street encounter. Rewards and the health risk are already
// applied to the player when an Event is returned.
type Event struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Credits     int    `json:"credits"`
	Experience  int    `json:"experience"`
	HealthLoss  int    `json:"health_loss"`
}

var eventTable = []Event{
	{Type: "cyber_gang", Name: "Кибер-банда", Description: "Ты столкнулся с кибер-бандой!",
		Credits: 50, Experience: 20, HealthLoss: 10},
	{Type: "tech_scrap", Name: "Технологический мусор", Description: "Нашел кучу технологического мусора!",
		Credits: 30, Experience: 15, HealthLoss: 0},
	{Type: "neural_anomaly", Name: "Нейронная аномалия", Description: "Странная нейронная аномалия!",
		Credits: 100, Experience: 50, HealthLoss: 25},
	{Type: "quantum_storm", Name: "Квантовая буря", Description: "Начинается квантовая буря!",
		Credits: 80, Experience: 40, HealthLoss: 20},
}

var typeDescriptions = map[string]string{
	TypeCityCenter:     "Центр киберпанк-города с неоновыми огнями и высокими зданиями.",
	TypeIndustrialZone: "Промышленная зона с заводами и фабриками будущего.",
	TypeUnderground:    "Подземные туннели и катакомбы с секретными технологиями.",
	TypeCyberMarket:    "Рынок с редкими кибер-товарами и имплантами.",
	TypeWasteland:      "Пустошь на окраине города с опасными аномалиями.",
}

// Manager owns the location map, its item stocks, and per-player search
// history. Safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	locations []*Location
	catalog   *item.Catalog
	src       dice.Source
	logger    *zap.Logger
	history   map[string][]SearchRecord
}

// NewManager builds a manager over the given locations.
//
// Precondition: catalog, src, and logger must not be nil.
func NewManager(locations []*Location, catalog *item.Catalog, src dice.Source, logger *zap.Logger) *Manager {
	return &Manager{
		locations: locations,
		catalog:   catalog,
		src:       src,
		logger:    logger,
		history:   make(map[string][]SearchRecord),
	}
}

// SearchItems performs an item search around pos for the player. The search
// cooldown is stamped at the start regardless of yield. Each nearby location
// refreshes its stock when stale and then yields up to two of its items with
// a 70% chance. An empty result is an expected outcome, not an error.
//
// Precondition: m assumes exclusive access to p for the duration of the call.
func (m *Manager) SearchItems(p *player.Player, pos Coordinate, now time.Time) []item.Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.StartSearch(now)

	nearby := m.nearbyLocked(pos.Latitude, pos.Longitude, searchRadiusMeters)

	var found []item.Item
	for _, loc := range nearby {
		if loc.needsRefresh(now) {
			m.refreshLocked(loc, p.Level, now)
		}
		if len(loc.items) == 0 {
			continue
		}
		if !dice.Chance(m.src, findChancePercent) {
			continue
		}

		avail := len(loc.items)
		if avail > 2 {
			avail = 2
		}
		take := dice.Between(m.src, 1, avail)
		for i := 0; i < take; i++ {
			idx := m.src.Intn(len(loc.items))
			found = append(found, loc.items[idx])
			loc.items = append(loc.items[:idx], loc.items[idx+1:]...)
		}
	}

	m.recordLocked(p.ID, pos, found, now)

	m.logger.Debug("item search resolved",
		zap.String("player_id", p.ID),
		zap.Int("locations", len(nearby)),
		zap.Int("items_found", len(found)),
	)
	return found
}

// refreshLocked restocks one location: with probability SpawnRate it draws 1-3
// items scaled to the player's level.
func (m *Manager) refreshLocked(loc *Location, playerLevel int, now time.Time) {
	loc.items = nil
	loc.lastRefresh = now

	if dice.Fraction(m.src) < loc.SpawnRate {
		loc.items = m.catalog.LocationDrops(loc.Type, playerLevel, m.src)
	}
}

// nearbyLocked returns locations within maxDistance meters, closest first.
func (m *Manager) nearbyLocked(lat, lon, maxDistance float64) []*Location {
	var nearby []*Location
	for _, loc := range m.locations {
		if loc.Distance(lat, lon) <= maxDistance {
			nearby = append(nearby, loc)
		}
	}
	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].Distance(lat, lon) < nearby[j].Distance(lat, lon)
	})
	return nearby
}

func (m *Manager) recordLocked(playerID string, pos Coordinate, found []item.Item, now time.Time) {
	names := make([]string, 0, len(found))
	for _, it := range found {
		names = append(names, it.Name)
	}

	records := append(m.history[playerID], SearchRecord{
		Timestamp:  now,
		Position:   pos,
		ItemsFound: names,
	})
	if len(records) > historyLimit {
		records = records[len(records)-historyLimit:]
	}
	m.history[playerID] = records
}

// History returns the player's retained search records, oldest first.
func (m *Manager) History(playerID string) []SearchRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SearchRecord(nil), m.history[playerID]...)
}

// Stats summarizes the player's retained search history.
func (m *Manager) Stats(playerID string) SearchStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := m.history[playerID]
	stats := SearchStats{TotalSearches: len(records)}
	for _, rec := range records {
		stats.TotalItemsFound += len(rec.ItemsFound)
	}
	if len(records) > 0 {
		last := records[len(records)-1].Timestamp
		stats.LastSearch = &last
	}
	return stats
}

// Info describes the surroundings of pos: the closest known location within
// 500 meters and up to three nearby search targets. Outside known territory
// it returns the unknown-area placeholder.
func (m *Manager) Info(pos Coordinate) Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	nearby := m.nearbyLocked(pos.Latitude, pos.Longitude, infoRadiusMeters)
	if len(nearby) == 0 {
		return Info{
			Type:        "unknown",
			Name:        "Неизвестная территория",
			Description: "Ты находишься в неизвестной местности.",
		}
	}

	closest := nearby[0]
	info := Info{
		Type:        closest.Type,
		Name:        closest.Name,
		Description: typeDescriptions[closest.Type],
	}

	limit := len(nearby)
	if limit > 3 {
		limit = 3
	}
	for _, loc := range nearby[:limit] {
		info.Nearby = append(info.Nearby, NearbyLocation{
			Name:        loc.Name,
			Distance:    int(loc.Distance(pos.Latitude, pos.Longitude)),
			Type:        loc.Type,
			Description: loc.Description,
		})
	}
	return info
}

// RandomEvent rolls the 10% street encounter. When one fires its rewards are
// granted through the leveling-aware experience grant and the health risk is
// applied immediately; the returned event describes what happened. Returns
// nil when nothing happens.
//
// Precondition: m assumes exclusive access to p for the duration of the call.
func (m *Manager) RandomEvent(p *player.Player) *Event {
	if !dice.Chance(m.src, eventChancePercent) {
		return nil
	}

	event := eventTable[m.src.Intn(len(eventTable))]
	p.AddCredits(event.Credits)
	p.AddExperience(event.Experience)
	p.TakeDamage(event.HealthLoss)

	m.logger.Info("street event triggered",
		zap.String("player_id", p.ID),
		zap.String("event", event.Type),
	)
	return &event
}
