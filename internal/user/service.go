// Package user implements user CRUD with geocode reconciliation on writes.
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/region-service/internal/model"
	"github.com/sells-group/region-service/internal/reconcile"
)

// CreateInput is a validated create payload. Exactly one of Address and
// Coordinates must be set; the reconciler enforces it.
type CreateInput struct {
	Name        string
	Email       string
	Address     string
	Coordinates *model.Coordinates
}

// UpdateInput is a validated partial-update payload. Nil fields are left
// untouched. Supplying both Address and Coordinates is rejected.
type UpdateInput struct {
	Name        *string
	Email       *string
	Address     string
	Coordinates *model.Coordinates
}

// Service orchestrates user operations: reconciliation first, then
// persistence. The first failure propagates unmodified.
type Service struct {
	store Store
	rec   *reconcile.Reconciler
}

// NewService creates a user Service.
func NewService(store Store, rec *reconcile.Reconciler) *Service {
	return &Service{store: store, rec: rec}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]model.User, error) {
	return s.store.List(ctx)
}

// Get returns one user by id.
func (s *Service) Get(ctx context.Context, id string) (*model.User, error) {
	return s.store.Get(ctx, id)
}

// Create reconciles the geo fields and persists a new user.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.User, error) {
	geo, err := s.rec.ForCreate(ctx, in.Address, in.Coordinates)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Address:     geo.Address,
		Coordinates: geo.Coordinates,
		Regions:     []string{},
	}
	if err := s.store.Insert(ctx, u); err != nil {
		return nil, err
	}

	zap.L().Info("user created",
		zap.String("user_id", u.ID),
		zap.Bool("geocoded", u.Coordinates != nil),
	)
	return u, nil
}

// Update applies a partial update. A supplied address or coordinate pair
// re-derives the other field before anything is written.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*model.User, error) {
	geo, err := s.rec.ForUpdate(ctx, in.Address, in.Coordinates)
	if err != nil {
		return nil, err
	}

	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if geo != nil {
		u.Address = geo.Address
		u.Coordinates = geo.Coordinates
	}

	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user. Regions owned by the user are left in place with
// their owner reference intact; region deletion repairs the dangling side.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	zap.L().Info("user deleted", zap.String("user_id", id))
	return nil
}
