// Package region implements geofenced-region CRUD and spatial search.
// Create and delete go through the reference consistency manager so the
// owner's denormalized region set stays aligned.
package region

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/region-service/internal/model"
	"github.com/sells-group/region-service/internal/refs"
)

// CreateInput is a validated create payload. UserID is the owner and must
// reference an existing user.
type CreateInput struct {
	Name        string
	Coordinates model.Coordinates
	UserID      string
}

// UpdateInput is a validated partial-update payload. The owner is not
// updatable.
type UpdateInput struct {
	Name        *string
	Coordinates *model.Coordinates
}

// Service orchestrates region operations.
type Service struct {
	store Store
	refs  *refs.Manager
}

// NewService creates a region Service.
func NewService(store Store, refs *refs.Manager) *Service {
	return &Service{store: store, refs: refs}
}

// List returns all regions with owners populated.
func (s *Service) List(ctx context.Context) ([]model.Region, error) {
	return s.store.List(ctx)
}

// Get returns one region by id with its owner populated.
func (s *Service) Get(ctx context.Context, id string) (*model.Region, error) {
	return s.store.Get(ctx, id)
}

// Create persists a new region and its owner back-reference. Fails with a
// not-found error, writing nothing, when the owner does not exist.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Region, error) {
	r := &model.Region{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Coordinates: in.Coordinates,
		UserID:      in.UserID,
	}
	if err := s.refs.CreateRegion(ctx, r); err != nil {
		return nil, err
	}

	zap.L().Info("region created",
		zap.String("region_id", r.ID),
		zap.String("user_id", r.UserID),
	)
	return s.store.Get(ctx, r.ID)
}

// Update applies a partial update to name and/or coordinates.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*model.Region, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Coordinates != nil {
		r.Coordinates = *in.Coordinates
	}

	if err := s.store.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a region and strips its id from every user's region set.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.refs.DeleteRegion(ctx, id); err != nil {
		return err
	}
	zap.L().Info("region deleted", zap.String("region_id", id))
	return nil
}

// SearchNearby returns regions around a point, optionally distance-bounded
// (nearest-first) and optionally excluding one owner's regions.
func (s *Service) SearchNearby(ctx context.Context, f NearbyFilter) ([]model.Region, error) {
	return s.store.SearchNearby(ctx, f)
}
