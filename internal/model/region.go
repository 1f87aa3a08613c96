package model

import "time"

// Region is a geofenced point owned by exactly one user. The owner reference
// is set at creation and never changes; the update path touches name and
// coordinates only. User is populated on reads that join the owner.
type Region struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	UserID      string      `json:"user"`
	User        *User       `json:"owner,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
