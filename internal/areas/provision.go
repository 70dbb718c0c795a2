package areas

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"go.uber.org/zap"

	"github.com/ngmaloney/poseidon/internal/models"
)

// ImportShapefile reads a point shapefile whose DBF carries a NAME field and
// optionally REGION, LAT and LON. Point geometry is used when LAT/LON are absent.
func ImportShapefile(path string, logger *zap.Logger) ([]models.Area, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	nameIdx, regionIdx, latIdx, lonIdx := -1, -1, -1, -1
	for i, f := range shape.Fields() {
		switch strings.ToUpper(strings.TrimRight(f.String(), "\x00 ")) {
		case "NAME":
			nameIdx = i
		case "REGION":
			regionIdx = i
		case "LAT":
			latIdx = i
		case "LON":
			lonIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("shapefile %s has no NAME field", path)
	}

	var out []models.Area
	for shape.Next() {
		n, p := shape.Shape()

		point, ok := p.(*shp.Point)
		if !ok {
			logger.Warn("Skipping non-point shape", zap.Int("row", n))
			continue
		}

		area := models.Area{
			Name:      attr(shape, n, nameIdx),
			Region:    attr(shape, n, regionIdx),
			Latitude:  point.Y,
			Longitude: point.X,
		}
		if lat, err := strconv.ParseFloat(attr(shape, n, latIdx), 64); err == nil {
			area.Latitude = lat
		}
		if lon, err := strconv.ParseFloat(attr(shape, n, lonIdx), 64); err == nil {
			area.Longitude = lon
		}
		if area.Name == "" {
			logger.Warn("Skipping unnamed area", zap.Int("row", n))
			continue
		}
		out = append(out, area)
	}

	logger.Info("Imported areas from shapefile", zap.String("path", path), zap.Int("count", len(out)))
	return out, nil
}

func attr(r *shp.Reader, row, field int) string {
	if field < 0 {
		return ""
	}
	return strings.TrimSpace(strings.Trim(r.ReadAttribute(row, field), "\x00"))
}

// SaveToDB replaces the fishing_areas table contents with list
func SaveToDB(db *sql.DB, list []models.Area) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM fishing_areas"); err != nil {
		return fmt.Errorf("clearing areas: %w", err)
	}
	for _, a := range list {
		_, err := tx.Exec(
			"INSERT INTO fishing_areas (name, region, latitude, longitude) VALUES (?, ?, ?, ?)",
			a.Name, a.Region, a.Latitude, a.Longitude,
		)
		if err != nil {
			return fmt.Errorf("inserting area %s: %w", a.Name, err)
		}
	}
	return tx.Commit()
}

// LoadFromDB returns the provisioned areas ordered by name, or nil if none
func LoadFromDB(db *sql.DB) ([]models.Area, error) {
	rows, err := db.Query("SELECT name, region, latitude, longitude FROM fishing_areas ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying areas: %w", err)
	}
	defer rows.Close()

	var out []models.Area
	for rows.Next() {
		var a models.Area
		var region sql.NullString
		if err := rows.Scan(&a.Name, &region, &a.Latitude, &a.Longitude); err != nil {
			return nil, fmt.Errorf("scanning area: %w", err)
		}
		a.Region = region.String
		out = append(out, a)
	}
	return out, rows.Err()
}
