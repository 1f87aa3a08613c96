// Package reconcile derives the missing geo field of a user write: an
// address produces coordinates via forward geocoding, coordinates produce a
// display address via reverse geocoding. Exactly one side may be supplied.
package reconcile

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/region-service/internal/fault"
	"github.com/sells-group/region-service/internal/model"
	"github.com/sells-group/region-service/pkg/geocode"
)

// GeoFields is the reconciled pair. Coordinates is nil when the forward
// lookup found no match for the address; that condition is non-fatal.
type GeoFields struct {
	Address     string
	Coordinates *model.Coordinates
}

// Reconciler resolves address/coordinate pairs through a geocode client.
type Reconciler struct {
	geo geocode.Client
}

// New creates a Reconciler.
func New(geo geocode.Client) *Reconciler {
	return &Reconciler{geo: geo}
}

// ForCreate reconciles a create payload. Exactly one of address and coords
// must be set; supplying both or neither is a caller error.
func (r *Reconciler) ForCreate(ctx context.Context, address string, coords *model.Coordinates) (*GeoFields, error) {
	if address != "" && coords != nil {
		return nil, fault.New(fault.CodeInvalidInput, "fill only address or coordinates")
	}
	if address == "" && coords == nil {
		return nil, fault.New(fault.CodeInvalidInput, "either address or coordinates is required")
	}
	return r.resolve(ctx, address, coords)
}

// ForUpdate reconciles an update payload. Supplying both sides is rejected
// as ambiguous; supplying neither skips reconciliation and returns nil so
// other fields can update independently.
func (r *Reconciler) ForUpdate(ctx context.Context, address string, coords *model.Coordinates) (*GeoFields, error) {
	if address != "" && coords != nil {
		return nil, fault.New(fault.CodeInvalidInput, "fill only address or coordinates")
	}
	if address == "" && coords == nil {
		return nil, nil
	}
	return r.resolve(ctx, address, coords)
}

func (r *Reconciler) resolve(ctx context.Context, address string, coords *model.Coordinates) (*GeoFields, error) {
	if address != "" {
		res, err := r.geo.Search(ctx, address)
		if err != nil {
			return nil, fault.Wrap(fault.CodeUpstream, err, "reconcile: forward geocode")
		}
		if !res.Matched {
			// Lookup ran and found nothing. Keep the address, leave the
			// coordinates unset.
			zap.L().Debug("forward geocode found no match", zap.String("address", address))
			return &GeoFields{Address: address}, nil
		}
		// API speaks (lat, lon); storage is (lon, lat).
		c := model.NewCoordinates(res.Longitude, res.Latitude)
		return &GeoFields{Address: address, Coordinates: &c}, nil
	}

	addr, err := r.geo.Reverse(ctx, coords.Latitude(), coords.Longitude())
	if err != nil {
		return nil, fault.Wrap(fault.CodeUpstream, err, "reconcile: reverse geocode")
	}
	return &GeoFields{Address: addr, Coordinates: coords}, nil
}
