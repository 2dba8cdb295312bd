// Package location implements the geo-based item search: a fixed map of named
// locations, haversine proximity queries, hourly item respawns, and random
// street events.
package location

import (
	"math"
	"time"

	"github.com/cory-johannsen/arena/internal/game/item"
)

// Location type labels.
const (
	TypeCityCenter     = "city_center"
	TypeIndustrialZone = "industrial_zone"
	TypeUnderground    = "underground"
	TypeCyberMarket    = "cyber_market"
	TypeWasteland      = "wasteland"
)

// refreshInterval is how long a location's item stock lasts before it is
// regenerated.
const refreshInterval = time.Hour

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// Location is one searchable spot on the map. Its immutable identity (name,
// type, coordinates, spawn rate) is set at construction; the current item
// stock and refresh timestamp mutate under the Manager's lock.
type Location struct {
	Name        string
	Type        string
	Latitude    float64
	Longitude   float64
	Description string
	// SpawnRate is the probability in [0, 1] that a refresh stocks any items.
	SpawnRate float64

	lastRefresh time.Time
	items       []item.Item
}

// Distance returns the great-circle distance in meters from the location to
// the given coordinate.
func (l *Location) Distance(lat, lon float64) float64 {
	lat1 := radians(l.Latitude)
	lon1 := radians(l.Longitude)
	lat2 := radians(lat)
	lon2 := radians(lon)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// needsRefresh reports whether the item stock has expired.
func (l *Location) needsRefresh(now time.Time) bool {
	return now.Sub(l.lastRefresh) > refreshInterval
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
