package auth

import "github.com/google/uuid"

// Identity is the resolved subject of a valid session token. A nil
// *Identity denotes an anonymous request. Only ID is authoritative for
// authorization decisions; the display fields are a convenience copy taken
// at login time and may be stale.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Image string    `json:"image,omitempty"`
}
