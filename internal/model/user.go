// Package model holds the persisted entity shapes shared across stores,
// services, and the HTTP layer.
package model

import "time"

// User is an account holder. Address and Coordinates are reconciled against
// each other on write: the caller supplies one, the geocoder derives the
// other. Coordinates may be nil when a forward lookup found no match.
// Regions is the denormalized set of region ids owned by this user.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Regions     []string     `json:"regions"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// OwnsRegion reports whether the user's region set contains the given id.
func (u *User) OwnsRegion(regionID string) bool {
	for _, id := range u.Regions {
		if id == regionID {
			return true
		}
	}
	return false
}
