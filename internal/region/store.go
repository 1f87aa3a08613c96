package region

import (
	"context"

	"github.com/sells-group/region-service/internal/model"
)

// Store defines persistence operations for regions. Reads join the owning
// user so responses can embed it.
type Store interface {
	// List returns all regions with owners populated.
	List(ctx context.Context) ([]model.Region, error)

	// Get retrieves a region by id with its owner populated.
	Get(ctx context.Context, id string) (*model.Region, error)

	// Insert persists a new region and fills in its timestamps.
	Insert(ctx context.Context, r *model.Region) error

	// Update rewrites a region's name and coordinates. Ownership never
	// changes after creation.
	Update(ctx context.Context, r *model.Region) error

	// Delete removes a region by id.
	Delete(ctx context.Context, id string) error

	// SearchNearby returns regions matching the spatial filter.
	SearchNearby(ctx context.Context, f NearbyFilter) ([]model.Region, error)
}
