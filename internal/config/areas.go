package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/ngmaloney/poseidon/internal/areas"
	"github.com/ngmaloney/poseidon/internal/database"
)

// AreaTable builds the area table from the first configured source:
// the inline list, the shapefile, areas imported into the database, and
// finally the built-in table.
func (c *Config) AreaTable(logger *zap.Logger) (*areas.Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(c.Areas.List) > 0 {
		return areas.NewTable(c.Areas.List)
	}

	if c.Areas.Shapefile != "" {
		list, err := areas.ImportShapefile(c.Areas.Shapefile, logger)
		if err != nil {
			return nil, err
		}
		return areas.NewTable(list)
	}

	if _, err := os.Stat(c.Database.Path); err == nil {
		db, err := database.Open(c.Database.Path)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		list, err := areas.LoadFromDB(db)
		if err != nil {
			return nil, fmt.Errorf("loading imported areas: %w", err)
		}
		if len(list) > 0 {
			logger.Debug("Using imported areas", zap.Int("count", len(list)))
			return areas.NewTable(list)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking database: %w", err)
	}

	return areas.Default(), nil
}
