// Package models defines the payload types exchanged with the AgriVision
// backend. Endpoints documented as opaque keep their payloads as
// json.RawMessage; everything the client renders or caches gets a type.
package models

// Profile is the user snapshot returned by the auth endpoints and persisted
// locally between runs.
type Profile struct {
	Email       string   `json:"email"`
	Username    string   `json:"username,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// HasPermission reports whether the profile carries the named permission.
func (p *Profile) HasPermission(name string) bool {
	if p == nil {
		return false
	}
	for _, perm := range p.Permissions {
		if perm == name {
			return true
		}
	}
	return false
}
