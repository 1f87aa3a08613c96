package region

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/region-service/internal/fault"
	"github.com/sells-group/region-service/internal/model"
)

var regionRowColumns = []string{
	"id", "name", "longitude", "latitude", "user_id", "created_at", "updated_at",
	"owner_id", "owner_name", "owner_email", "owner_address",
	"owner_longitude", "owner_latitude", "owner_regions",
	"owner_created_at", "owner_updated_at",
}

func regionRow(now time.Time) *pgxmock.Rows {
	ownerID, ownerName, ownerEmail, ownerAddress := "u1", "A", "a@example.com", "221B Baker St"
	ownerLng, ownerLat := -0.15, 51.52
	return pgxmock.NewRows(regionRowColumns).AddRow(
		"r1", "R1", 20.0, 10.0, "u1", now, now,
		&ownerID, &ownerName, &ownerEmail, &ownerAddress,
		&ownerLng, &ownerLat, []string{"r1"}, &now, &now,
	)
}

func TestGet_PopulatesOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	now := time.Now()

	mock.ExpectQuery(`(?s)SELECT.+FROM regions r LEFT JOIN users u.+WHERE r\.id = \$1`).
		WithArgs("r1").
		WillReturnRows(regionRow(now))

	r, err := store.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "R1", r.Name)
	assert.Equal(t, model.NewCoordinates(20, 10), r.Coordinates)
	require.NotNil(t, r.User)
	assert.Equal(t, "A", r.User.Name)
	assert.Equal(t, []string{"r1"}, r.User.Regions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_OrphanedOwnerStillReads(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	now := time.Now()

	mock.ExpectQuery(`(?s)SELECT.+FROM regions r LEFT JOIN users u`).
		WithArgs("r1").
		WillReturnRows(pgxmock.NewRows(regionRowColumns).AddRow(
			"r1", "R1", 20.0, 10.0, "ghost", now, now,
			nil, nil, nil, nil, nil, nil, nil, nil, nil,
		))

	r, err := store.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "ghost", r.UserID)
	assert.Nil(t, r.User)
}

func TestGet_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	mock.ExpectQuery(`(?s)SELECT.+FROM regions r LEFT JOIN users u`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(regionRowColumns))

	_, err = store.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.CodeNotFound))
}

func TestInsert_StoresLonLatOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	now := time.Now()
	r := &model.Region{
		ID:          "r1",
		Name:        "R1",
		Coordinates: model.NewCoordinates(20, 10),
		UserID:      "u1",
	}

	mock.ExpectQuery("INSERT INTO regions").
		WithArgs("r1", "R1", 20.0, 10.0, "u1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	require.NoError(t, store.Insert(context.Background(), r))
	assert.Equal(t, now, r.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdate_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	mock.ExpectQuery("UPDATE regions").
		WithArgs("missing", "R1", 20.0, 10.0).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))

	err = store.Update(context.Background(), &model.Region{
		ID: "missing", Name: "R1", Coordinates: model.NewCoordinates(20, 10),
	})
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.CodeNotFound))
}

func TestDelete_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	mock.ExpectExec("DELETE FROM regions WHERE id").
		WithArgs("r1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, store.Delete(context.Background(), "r1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchNearby_DistanceQuery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	now := time.Now()
	dist := 5000.0

	// Distance-bounded: ST_DWithin with nearest-first ordering, owner u2
	// excluded, args in (lon, lat, meters, owner) order.
	mock.ExpectQuery(`(?s)SELECT.+WHERE ST_DWithin.+r\.user_id <> \$4.+ORDER BY r\.geom <->`).
		WithArgs(20.0, 10.0, 5000.0, "u2").
		WillReturnRows(regionRow(now))

	got, err := store.SearchNearby(context.Background(), NearbyFilter{
		Latitude: 10, Longitude: 20, MaxDistance: &dist, ExcludeUserID: "u2",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchNearby_IntersectsQuery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	mock.ExpectQuery(`(?s)SELECT.+WHERE ST_Intersects`).
		WithArgs(20.0, 10.0).
		WillReturnRows(pgxmock.NewRows(regionRowColumns))

	got, err := store.SearchNearby(context.Background(), NearbyFilter{Latitude: 10, Longitude: 20})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	mock.ExpectQuery(`(?s)SELECT.+FROM regions`).
		WillReturnError(fmt.Errorf("connection refused"))

	_, err = store.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "region: list")
}
