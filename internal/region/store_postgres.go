package region

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/region-service/internal/db"
	"github.com/sells-group/region-service/internal/fault"
	"github.com/sells-group/region-service/internal/model"
)

// PostgresStore implements Store using a Postgres connection pool with PostGIS.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// regionJoinColumns selects a region row joined with its owner. The owner
// columns are nullable: an orphaned region (owner deleted) still reads.
const regionJoinColumns = `
	r.id, r.name, r.longitude, r.latitude, r.user_id, r.created_at, r.updated_at,
	u.id, u.name, u.email, u.address, u.longitude, u.latitude, u.regions, u.created_at, u.updated_at`

const regionJoin = ` FROM regions r LEFT JOIN users u ON u.id = r.user_id`

func scanRegionWithOwner(row pgx.Row) (*model.Region, error) {
	var r model.Region
	var lng, lat float64
	var ownerID, ownerName, ownerEmail, ownerAddress *string
	var ownerLng, ownerLat *float64
	var ownerRegions []string
	var ownerCreated, ownerUpdated *time.Time

	if err := row.Scan(
		&r.ID, &r.Name, &lng, &lat, &r.UserID, &r.CreatedAt, &r.UpdatedAt,
		&ownerID, &ownerName, &ownerEmail, &ownerAddress, &ownerLng, &ownerLat,
		&ownerRegions, &ownerCreated, &ownerUpdated,
	); err != nil {
		return nil, err
	}
	r.Coordinates = model.NewCoordinates(lng, lat)

	if ownerID != nil {
		owner := &model.User{
			ID:      *ownerID,
			Name:    derefString(ownerName),
			Email:   derefString(ownerEmail),
			Address: derefString(ownerAddress),
			Regions: ownerRegions,
		}
		if ownerLng != nil && ownerLat != nil {
			c := model.NewCoordinates(*ownerLng, *ownerLat)
			owner.Coordinates = &c
		}
		if owner.Regions == nil {
			owner.Regions = []string{}
		}
		if ownerCreated != nil {
			owner.CreatedAt = *ownerCreated
		}
		if ownerUpdated != nil {
			owner.UpdatedAt = *ownerUpdated
		}
		r.User = owner
	}

	return &r, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context) ([]model.Region, error) {
	rows, err := s.pool.Query(ctx, `SELECT`+regionJoinColumns+regionJoin+` ORDER BY r.created_at`)
	if err != nil {
		return nil, eris.Wrap(err, "region: list")
	}
	defer rows.Close()

	return collectRegions(rows)
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Region, error) {
	row := s.pool.QueryRow(ctx, `SELECT`+regionJoinColumns+regionJoin+` WHERE r.id = $1`, id)
	r, err := scanRegionWithOwner(row)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, fault.Newf(fault.CodeNotFound, "region %s not found", id)
		}
		return nil, eris.Wrap(err, "region: get")
	}
	return r, nil
}

// Insert implements Store.
func (s *PostgresStore) Insert(ctx context.Context, r *model.Region) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO regions (id, name, longitude, latitude, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		r.ID, r.Name, r.Coordinates.Longitude(), r.Coordinates.Latitude(), r.UserID,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	return eris.Wrap(err, "region: insert")
}

// Update implements Store.
func (s *PostgresStore) Update(ctx context.Context, r *model.Region) error {
	err := s.pool.QueryRow(ctx, `
		UPDATE regions
		SET name = $2, longitude = $3, latitude = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		r.ID, r.Name, r.Coordinates.Longitude(), r.Coordinates.Latitude(),
	).Scan(&r.UpdatedAt)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return fault.Newf(fault.CodeNotFound, "region %s not found", r.ID)
		}
		return eris.Wrap(err, "region: update")
	}
	return nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM regions WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "region: delete")
	}
	if tag.RowsAffected() == 0 {
		return fault.Newf(fault.CodeNotFound, "region %s not found", id)
	}
	return nil
}

// SearchNearby implements Store.
func (s *PostgresStore) SearchNearby(ctx context.Context, f NearbyFilter) ([]model.Region, error) {
	where, orderBy, args := f.SQL()

	sql := `SELECT` + regionJoinColumns + regionJoin + ` WHERE ` + where
	if orderBy != "" {
		sql += ` ORDER BY ` + orderBy
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, eris.Wrap(err, "region: search nearby")
	}
	defer rows.Close()

	return collectRegions(rows)
}

func collectRegions(rows pgx.Rows) ([]model.Region, error) {
	var regions []model.Region
	for rows.Next() {
		r, err := scanRegionWithOwner(rows)
		if err != nil {
			return nil, eris.Wrap(err, "region: scan row")
		}
		regions = append(regions, *r)
	}
	return regions, rows.Err()
}
