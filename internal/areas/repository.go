package areas

import (
	"database/sql"
	"fmt"

	"github.com/ngmaloney/poseidon/internal/models"
)

// SaveArea adds or updates a single custom area
func SaveArea(db *sql.DB, a models.Area) error {
	if _, err := NewTable([]models.Area{a}); err != nil {
		return err
	}

	query := `
		INSERT INTO fishing_areas (name, region, latitude, longitude)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			region = excluded.region,
			latitude = excluded.latitude,
			longitude = excluded.longitude
	`
	if _, err := db.Exec(query, a.Name, a.Region, a.Latitude, a.Longitude); err != nil {
		return fmt.Errorf("saving area: %w", err)
	}
	return nil
}

// DeleteArea removes an area by name
func DeleteArea(db *sql.DB, name string) error {
	res, err := db.Exec("DELETE FROM fishing_areas WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting area: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("area not found: %s", name)
	}
	return nil
}
