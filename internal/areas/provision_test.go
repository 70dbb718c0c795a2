package areas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/poseidon/internal/database"
	"github.com/ngmaloney/poseidon/internal/models"
)

func writePointShapefile(t *testing.T, path string, areas []models.Area) {
	t.Helper()

	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("NAME", 40),
		shp.StringField("REGION", 20),
	}))

	for _, a := range areas {
		n := w.Write(&shp.Point{X: a.Longitude, Y: a.Latitude})
		require.NoError(t, w.WriteAttribute(int(n), 0, a.Name))
		require.NoError(t, w.WriteAttribute(int(n), 1, a.Region))
	}
	w.Close()

	// go-shp v0.1.1 writes the attribute table as "<base>dbf"
	base := strings.TrimSuffix(path, ".shp")
	require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
}

func TestImportShapefile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "areas.shp")
	want := []models.Area{
		{Name: "Hasaki", Region: "Ibaraki", Latitude: 35.75, Longitude: 140.83},
		{Name: "Onjuku", Region: "Chiba", Latitude: 35.18, Longitude: 140.36},
	}
	writePointShapefile(t, path, want)

	got, err := ImportShapefile(path, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Region, got[i].Region)
		assert.InDelta(t, want[i].Latitude, got[i].Latitude, 1e-9)
		assert.InDelta(t, want[i].Longitude, got[i].Longitude, 1e-9)
	}
}

func TestImportShapefile_Missing(t *testing.T) {
	_, err := ImportShapefile(filepath.Join(t.TempDir(), "none.shp"), nil)
	assert.Error(t, err)
}

func TestSaveAndLoadFromDB(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	empty, err := LoadFromDB(db)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, SaveToDB(db, Default().All()))
	require.NoError(t, SaveToDB(db, Default().All()), "saving twice replaces rows")

	got, err := LoadFromDB(db)
	require.NoError(t, err)
	assert.Len(t, got, Default().Len())

	table, err := NewTable(got)
	require.NoError(t, err)
	a, ok := table.Lookup("館山")
	require.True(t, ok)
	assert.Equal(t, "千葉", a.Region)
}
