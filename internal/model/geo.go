package model

// Coordinates is a stored coordinate pair in (longitude, latitude) order,
// matching the order the spatial index and queries use. External geocoders
// speak (latitude, longitude); the reconciler is the only place the swap
// happens.
type Coordinates [2]float64

// NewCoordinates builds a pair from longitude and latitude.
func NewCoordinates(lng, lat float64) Coordinates {
	return Coordinates{lng, lat}
}

// Longitude returns the first element of the pair.
func (c Coordinates) Longitude() float64 { return c[0] }

// Latitude returns the second element of the pair.
func (c Coordinates) Latitude() float64 { return c[1] }
