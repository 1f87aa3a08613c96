package httpapi

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/sells-group/region-service/internal/fault"
	"github.com/sells-group/region-service/internal/model"
	"github.com/sells-group/region-service/internal/region"
	"github.com/sells-group/region-service/internal/user"
)

// createUserRequest is the HTTP request body for POST /user.
type createUserRequest struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`

	parsedCoords *model.Coordinates
}

// Validate validates and parses the request.
func (r *createUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fault.New(fault.CodeInvalidInput, "name is required")
	}
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return fault.New(fault.CodeInvalidInput, "email is required")
	}
	r.Address = strings.TrimSpace(r.Address)

	coords, err := parseCoordinatePair(r.Coordinates)
	if err != nil {
		return err
	}
	r.parsedCoords = coords
	return nil
}

func (r *createUserRequest) toInput() user.CreateInput {
	return user.CreateInput{
		Name:        r.Name,
		Email:       r.Email,
		Address:     r.Address,
		Coordinates: r.parsedCoords,
	}
}

// updateUserRequest is the HTTP request body for PUT /user/{id}. Absent
// fields are left untouched.
type updateUserRequest struct {
	Name        *string   `json:"name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`

	parsedCoords *model.Coordinates
}

func (r *updateUserRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fault.New(fault.CodeInvalidInput, "name must not be empty")
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		return fault.New(fault.CodeInvalidInput, "email must not be empty")
	}
	r.Address = strings.TrimSpace(r.Address)

	coords, err := parseCoordinatePair(r.Coordinates)
	if err != nil {
		return err
	}
	r.parsedCoords = coords
	return nil
}

func (r *updateUserRequest) toInput() user.UpdateInput {
	return user.UpdateInput{
		Name:        r.Name,
		Email:       r.Email,
		Address:     r.Address,
		Coordinates: r.parsedCoords,
	}
}

// createRegionRequest is the HTTP request body for POST /region.
type createRegionRequest struct {
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates"`
	User        string    `json:"user"`

	parsedCoords *model.Coordinates
}

func (r *createRegionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fault.New(fault.CodeInvalidInput, "name is required")
	}
	r.User = strings.TrimSpace(r.User)
	if r.User == "" {
		return fault.New(fault.CodeInvalidInput, "user is required")
	}
	coords, err := parseCoordinatePair(r.Coordinates)
	if err != nil {
		return err
	}
	if coords == nil {
		return fault.New(fault.CodeInvalidInput, "coordinates are required")
	}
	r.parsedCoords = coords
	return nil
}

func (r *createRegionRequest) toInput() region.CreateInput {
	return region.CreateInput{
		Name:        r.Name,
		Coordinates: *r.parsedCoords,
		UserID:      r.User,
	}
}

// updateRegionRequest is the HTTP request body for PUT /region/{id}.
type updateRegionRequest struct {
	Name        *string   `json:"name,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`

	parsedCoords *model.Coordinates
}

func (r *updateRegionRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fault.New(fault.CodeInvalidInput, "name must not be empty")
	}
	coords, err := parseCoordinatePair(r.Coordinates)
	if err != nil {
		return err
	}
	r.parsedCoords = coords
	return nil
}

func (r *updateRegionRequest) toInput() region.UpdateInput {
	return region.UpdateInput{
		Name:        r.Name,
		Coordinates: r.parsedCoords,
	}
}

// parseSearchQuery parses GET /region/search query parameters into a spatial
// filter. Latitude and longitude are required; distance (meters) and userId
// are optional.
func parseSearchQuery(q url.Values) (region.NearbyFilter, error) {
	var f region.NearbyFilter

	lat, err := requiredFloat(q, "lat")
	if err != nil {
		return f, err
	}
	lng, err := requiredFloat(q, "lng")
	if err != nil {
		return f, err
	}
	if lat < -90 || lat > 90 {
		return f, fault.New(fault.CodeInvalidInput, "lat must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return f, fault.New(fault.CodeInvalidInput, "lng must be between -180 and 180")
	}
	f.Latitude = lat
	f.Longitude = lng

	if raw := q.Get("distance"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || d <= 0 {
			return f, fault.New(fault.CodeInvalidInput, "distance must be a positive number of meters")
		}
		f.MaxDistance = &d
	}

	f.ExcludeUserID = strings.TrimSpace(q.Get("userId"))
	return f, nil
}

func requiredFloat(q url.Values, key string) (float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, fault.Newf(fault.CodeInvalidInput, "%s is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fault.Newf(fault.CodeInvalidInput, "%s must be a number", key)
	}
	return v, nil
}

// parseCoordinatePair validates an optional [lng, lat] pair. A nil or empty
// slice means the field was not supplied.
func parseCoordinatePair(raw []float64) (*model.Coordinates, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if len(raw) != 2 {
		return nil, fault.New(fault.CodeInvalidInput, "coordinates must be a [longitude, latitude] pair")
	}
	lng, lat := raw[0], raw[1]
	if lng < -180 || lng > 180 {
		return nil, fault.New(fault.CodeInvalidInput, "longitude must be between -180 and 180")
	}
	if lat < -90 || lat > 90 {
		return nil, fault.New(fault.CodeInvalidInput, "latitude must be between -90 and 90")
	}
	c := model.NewCoordinates(lng, lat)
	return &c, nil
}
