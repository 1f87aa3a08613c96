// Package refs keeps the denormalized user.regions sets aligned with
// region.user ownership pointers. The two collections share no transaction:
// each change is a pair of independent writes issued concurrently, and a
// partial failure leaves detectable drift that later deletions repair.
package refs

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/region-service/internal/fault"
	"github.com/sells-group/region-service/internal/model"
)

// RegionWriter is the region-side half of the dual write.
type RegionWriter interface {
	Insert(ctx context.Context, r *model.Region) error
	Delete(ctx context.Context, id string) error
}

// UserSetWriter is the user-side half: existence checks and region-set
// membership updates.
type UserSetWriter interface {
	Exists(ctx context.Context, id string) (bool, error)
	AddRegion(ctx context.Context, userID, regionID string) error
	RemoveRegionFromAll(ctx context.Context, regionID string) error
}

// Manager coordinates the dual writes for region create and delete.
type Manager struct {
	regions RegionWriter
	users   UserSetWriter
}

// NewManager creates a Manager.
func NewManager(regions RegionWriter, users UserSetWriter) *Manager {
	return &Manager{regions: regions, users: users}
}

// CreateRegion verifies the owner exists, then concurrently inserts the
// region and adds its id to the owner's region set. Nothing is written when
// the owner is missing. The two writes complete in no particular order; if
// one fails after the other succeeded, no rollback is attempted.
func (m *Manager) CreateRegion(ctx context.Context, r *model.Region) error {
	exists, err := m.users.Exists(ctx, r.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return fault.Newf(fault.CodeNotFound, "user %s not found", r.UserID)
	}

	// Plain group, not WithContext: the writes are independent and a
	// failure of one must not cancel the other.
	var g errgroup.Group
	g.Go(func() error {
		return m.regions.Insert(ctx, r)
	})
	g.Go(func() error {
		return m.users.AddRegion(ctx, r.UserID, r.ID)
	})
	if err := g.Wait(); err != nil {
		zap.L().Warn("region create dual write failed, state may have drifted",
			zap.String("region_id", r.ID),
			zap.String("user_id", r.UserID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// DeleteRegion concurrently deletes the region and strips its id from every
// user's region set, healing any drift beyond the nominal owner.
func (m *Manager) DeleteRegion(ctx context.Context, regionID string) error {
	var g errgroup.Group
	g.Go(func() error {
		return m.regions.Delete(ctx, regionID)
	})
	g.Go(func() error {
		return m.users.RemoveRegionFromAll(ctx, regionID)
	})
	if err := g.Wait(); err != nil {
		zap.L().Warn("region delete dual write failed, state may have drifted",
			zap.String("region_id", regionID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
