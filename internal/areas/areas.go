// Package areas holds the fixed table of named fishing areas and their coordinates.
package areas

import (
	"fmt"
	"math"
	"sort"

	"github.com/ngmaloney/poseidon/internal/models"
)

// defaultAreas covers the Boso and Shonan coasts
var defaultAreas = []models.Area{
	{Name: "九十九里", Latitude: 35.5500, Longitude: 140.4500, Region: "千葉"},
	{Name: "銚子", Latitude: 35.7350, Longitude: 140.8600, Region: "千葉"},
	{Name: "大洗", Latitude: 36.3100, Longitude: 140.5800, Region: "茨城"},
	{Name: "館山", Latitude: 34.9900, Longitude: 139.8500, Region: "千葉"},
	{Name: "茅ヶ崎", Latitude: 35.3100, Longitude: 139.4000, Region: "神奈川"},
	{Name: "江の島", Latitude: 35.2990, Longitude: 139.4800, Region: "神奈川"},
}

// Table is a read-only mapping from area name to coordinates
type Table struct {
	byName map[string]models.Area
	order  []string
}

// Default returns the built-in area table
func Default() *Table {
	t, err := NewTable(defaultAreas)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTable validates list and builds a table preserving its order
func NewTable(list []models.Area) (*Table, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("area list is empty")
	}

	t := &Table{
		byName: make(map[string]models.Area, len(list)),
		order:  make([]string, 0, len(list)),
	}
	for i, a := range list {
		if a.Name == "" {
			return nil, fmt.Errorf("missing name at index %d", i)
		}
		if _, dup := t.byName[a.Name]; dup {
			return nil, fmt.Errorf("duplicate area %q", a.Name)
		}
		if a.Latitude < -90 || a.Latitude > 90 || a.Longitude < -180 || a.Longitude > 180 {
			return nil, fmt.Errorf("area %q has invalid coordinates %.4f, %.4f", a.Name, a.Latitude, a.Longitude)
		}
		t.byName[a.Name] = a
		t.order = append(t.order, a.Name)
	}
	return t, nil
}

// Lookup returns the area called name
func (t *Table) Lookup(name string) (models.Area, bool) {
	a, ok := t.byName[name]
	return a, ok
}

// Has reports whether name is a known area
func (t *Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Names returns area names in table order
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// All returns the areas in table order
func (t *Table) All() []models.Area {
	out := make([]models.Area, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// Len returns the number of areas
func (t *Table) Len() int { return len(t.order) }

// Nearby is an area with its distance from a query point
type Nearby struct {
	models.Area
	DistanceKm float64
}

// Nearest returns areas within maxKm of (lat, lon), closest first
func (t *Table) Nearest(lat, lon, maxKm float64) []Nearby {
	var out []Nearby
	for _, a := range t.All() {
		d := HaversineDistance(lat, lon, a.Latitude, a.Longitude)
		if d <= maxKm {
			out = append(out, Nearby{Area: a, DistanceKm: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out
}

// HaversineDistance calculates distance in kilometres between two lat/lon points
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
