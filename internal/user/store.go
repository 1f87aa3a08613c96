package user

import (
	"context"

	"github.com/sells-group/region-service/internal/model"
)

// Store defines persistence operations for users, including the denormalized
// region-set updates the reference consistency logic relies on.
type Store interface {
	// List returns all users.
	List(ctx context.Context) ([]model.User, error)

	// Get retrieves a user by id.
	Get(ctx context.Context, id string) (*model.User, error)

	// Insert persists a new user and fills in its timestamps.
	Insert(ctx context.Context, u *model.User) error

	// Update rewrites a user's mutable fields (not its region set).
	Update(ctx context.Context, u *model.User) error

	// Delete removes a user by id.
	Delete(ctx context.Context, id string) error

	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, id string) (bool, error)

	// AddRegion adds a region id to a user's region set. Adding an id that
	// is already present is a no-op, not an error.
	AddRegion(ctx context.Context, userID, regionID string) error

	// RemoveRegionFromAll removes a region id from every user's region set
	// that contains it, repairing any drift beyond the nominal owner.
	RemoveRegionFromAll(ctx context.Context, regionID string) error
}
