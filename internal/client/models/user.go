// Package models defines client-side data models used by the PocketFarm CLI.
package models

// Location is a structured address with coordinates, as returned by the
// backend after geocoding a signup location.
type Location struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// User is the account record returned by /login and /signup and persisted
// locally as the current session.
type User struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// UserPatch holds optional profile fields for a local merge. Nil fields are
// left untouched.
type UserPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Location *Location
}

// Apply merges the non-nil patch fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Location != nil {
		loc := *p.Location
		u.Location = &loc
	}
}
