package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/poseidon/internal/models"
)

func sampleRecords() []models.CatchRecord {
	return []models.CatchRecord{
		{Date: "2025-06-01", Area: "九十九里", Weather: models.WeatherCloudy, Tide: models.SpringTide, TimeOfDay: models.Morning, Species: "ヒラメ", SizeCM: 52.5, Count: 1},
		{Date: "2025-06-08", Area: "九十九里", Weather: models.WeatherSunny, Tide: models.NeapTide, TimeOfDay: models.Midday, Species: "ヒラメ", Count: 0},
		{Date: "2025-06-15", Area: "大洗", Weather: models.WeatherRain, Tide: models.MiddleTide, TimeOfDay: models.Evening, Species: "シーバス", SizeCM: 61, Count: 3},
	}
}

func TestCSVStoreMissingFileIsEmpty(t *testing.T) {
	store := NewCSVStore(filepath.Join(t.TempDir(), "catches.csv"), nil)

	recs, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCSVStoreAppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "catches.csv")
	store := NewCSVStore(path, nil)

	want := sampleRecords()
	for _, r := range want {
		require.NoError(t, store.Append(ctx, r))
	}

	// a fresh store sees the same table
	got, err := NewCSVStore(path, nil).Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("reloaded table mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "date,area,weather,tide,time_of_day,species,size_cm,count\n")
}

func TestCSVStoreQuery(t *testing.T) {
	ctx := context.Background()
	store := NewCSVStore(filepath.Join(t.TempDir(), "catches.csv"), nil)
	for _, r := range sampleRecords() {
		require.NoError(t, store.Append(ctx, r))
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"everything", Filter{}, 3},
		{"by area", Filter{Area: "九十九里"}, 2},
		{"by species", Filter{Species: "シーバス"}, 1},
		{"area and species", Filter{Area: "大洗", Species: "ヒラメ"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestCSVStoreCorruptTable(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing count column", "date,area,species\n2025-06-01,大洗,ヒラメ\n"},
		{"non-numeric count", "date,area,species,count\n2025-06-01,大洗,ヒラメ,many\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "catches.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			store := NewCSVStore(path, nil)

			recs, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, recs)

			err = store.Append(ctx, sampleRecords()[0])
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorrupt))

			// the corrupt file is left untouched
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(data))
		})
	}
}

func TestCSVStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catches.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	recs, err := NewCSVStore(path, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCSVStoreReadsNarrowVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catches.csv")
	content := "date,area,species,count\n2025-06-01,大洗,ヒラメ,2\n2025-06-02,大洗,ヒラメ,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	recs, err := NewCSVStore(path, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 2, recs[0].Count)
	assert.Equal(t, models.Weather(""), recs[0].Weather)
}
