package user

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/region-service/internal/db"
	"github.com/sells-group/region-service/internal/fault"
	"github.com/sells-group/region-service/internal/model"
)

// PostgresStore implements Store using a Postgres connection pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const userColumns = `id, name, email, address, longitude, latitude, regions, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var lng, lat *float64
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Address, &lng, &lat, &u.Regions,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lng != nil && lat != nil {
		c := model.NewCoordinates(*lng, *lat)
		u.Coordinates = &c
	}
	if u.Regions == nil {
		u.Regions = []string{}
	}
	return &u, nil
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, eris.Wrap(err, "user: list")
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, eris.Wrap(err, "user: scan row")
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, fault.Newf(fault.CodeNotFound, "user %s not found", id)
		}
		return nil, eris.Wrap(err, "user: get")
	}
	return u, nil
}

// Insert implements Store.
func (s *PostgresStore) Insert(ctx context.Context, u *model.User) error {
	var lng, lat *float64
	if u.Coordinates != nil {
		l, a := u.Coordinates.Longitude(), u.Coordinates.Latitude()
		lng, lat = &l, &a
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, address, longitude, latitude, regions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Email, u.Address, lng, lat, u.Regions,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	return eris.Wrap(err, "user: insert")
}

// Update implements Store. The region set is managed separately through
// AddRegion and RemoveRegionFromAll.
func (s *PostgresStore) Update(ctx context.Context, u *model.User) error {
	var lng, lat *float64
	if u.Coordinates != nil {
		l, a := u.Coordinates.Longitude(), u.Coordinates.Latitude()
		lng, lat = &l, &a
	}
	err := s.pool.QueryRow(ctx, `
		UPDATE users
		SET name = $2, email = $3, address = $4, longitude = $5, latitude = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		u.ID, u.Name, u.Email, u.Address, lng, lat,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return fault.Newf(fault.CodeNotFound, "user %s not found", u.ID)
		}
		return eris.Wrap(err, "user: update")
	}
	return nil
}

// Delete implements Store.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return eris.Wrap(err, "user: delete")
	}
	if tag.RowsAffected() == 0 {
		return fault.Newf(fault.CodeNotFound, "user %s not found", id)
	}
	return nil
}

// Exists implements Store.
func (s *PostgresStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, eris.Wrap(err, "user: exists")
	}
	return exists, nil
}

// AddRegion implements Store. The membership guard makes the union
// idempotent: a second add of the same id matches zero rows.
func (s *PostgresStore) AddRegion(ctx context.Context, userID, regionID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users
		SET regions = array_append(regions, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(regions))`,
		userID, regionID,
	)
	return eris.Wrap(err, "user: add region")
}

// RemoveRegionFromAll implements Store. Every user holding the id is
// touched, not just the nominal owner, so drift self-heals.
func (s *PostgresStore) RemoveRegionFromAll(ctx context.Context, regionID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE users
		SET regions = array_remove(regions, $1), updated_at = now()
		WHERE $1 = ANY(regions)`,
		regionID,
	)
	return eris.Wrap(err, "user: remove region from all")
}
