package region

import "fmt"

// NearbyFilter describes a spatial region search around a query point.
// MaxDistance, when set, switches the predicate from point intersection to
// within-distance and implies nearest-first ordering; the two predicates are
// never combined. ExcludeUserID narrows the search to regions not owned by
// that user ("regions near me, not mine").
type NearbyFilter struct {
	Latitude      float64
	Longitude     float64
	MaxDistance   *float64 // meters
	ExcludeUserID string
}

// SQL renders the filter as a WHERE clause, an optional ORDER BY expression,
// and the positional arguments. Arguments are (lon, lat, ...) to match the
// ST_MakePoint call order.
func (f NearbyFilter) SQL() (where, orderBy string, args []any) {
	args = []any{f.Longitude, f.Latitude}

	if f.MaxDistance != nil {
		where = `ST_DWithin(r.geom::geography, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)`
		orderBy = `r.geom <-> ST_SetSRID(ST_MakePoint($1, $2), 4326)`
		args = append(args, *f.MaxDistance)
	} else {
		where = `ST_Intersects(r.geom, ST_SetSRID(ST_MakePoint($1, $2), 4326))`
	}

	if f.ExcludeUserID != "" {
		where += fmt.Sprintf(" AND r.user_id <> $%d", len(args)+1)
		args = append(args, f.ExcludeUserID)
	}

	return where, orderBy, args
}
