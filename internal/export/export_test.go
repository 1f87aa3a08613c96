package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/region-service/internal/model"
)

type staticUsers []model.User

func (s staticUsers) List(context.Context) ([]model.User, error) { return s, nil }

type staticRegions []model.Region

func (s staticRegions) List(context.Context) ([]model.Region, error) { return s, nil }

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportUsersCSV(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	coords := model.NewCoordinates(-0.15, 51.52)
	users := staticUsers{
		{
			ID: "u1", Name: "Ada", Email: "ada@example.com", Address: "221B Baker St",
			Coordinates: &coords, Regions: []string{"r1", "r2"},
			CreatedAt: created, UpdatedAt: created,
		},
		{ID: "u2", Name: "Brin", Email: "brin@example.com", Regions: []string{}},
	}

	outPath := filepath.Join(t.TempDir(), "users.csv")
	require.NoError(t, ExportUsersCSV(context.Background(), users, outPath))

	rows := readCSV(t, outPath)
	require.Len(t, rows, 3)
	assert.Equal(t, userColumns, rows[0])
	assert.Equal(t, []string{
		"u1", "Ada", "ada@example.com", "221B Baker St",
		"-0.15", "51.52", "r1;r2",
		"2026-03-01T12:00:00Z", "2026-03-01T12:00:00Z",
	}, rows[1])
	// No coordinates and no timestamps leave those cells empty.
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "", rows[2][5])
	assert.Equal(t, "", rows[2][7])
}

func TestExportRegionsCSV(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	regions := staticRegions{
		{
			ID: "r1", Name: "Downtown",
			Coordinates: model.NewCoordinates(20, 10), UserID: "u1",
			User:      &model.User{ID: "u1", Name: "Ada"},
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "r2", Name: "Orphaned",
			Coordinates: model.NewCoordinates(1, 2), UserID: "ghost",
		},
	}

	outPath := filepath.Join(t.TempDir(), "regions.csv")
	require.NoError(t, ExportRegionsCSV(context.Background(), regions, outPath))

	rows := readCSV(t, outPath)
	require.Len(t, rows, 3)
	assert.Equal(t, regionColumns, rows[0])
	assert.Equal(t, []string{
		"r1", "Downtown", "20", "10", "u1", "Ada",
		"2026-03-01T12:00:00Z", "2026-03-01T12:00:00Z",
	}, rows[1])
	assert.Equal(t, "ghost", rows[2][4])
	assert.Equal(t, "", rows[2][5], "orphaned region exports without an owner name")
}
