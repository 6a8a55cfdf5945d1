package identity

import "github.com/google/uuid"

// Actor identifies the authenticated user performing an operation.
// It is resolved from the access token and passed through application services.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// IsAdmin returns true if the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess reports whether the actor may read or mutate a resource
// owned by ownerID. Admins can access everything; regular users only
// their own resources.
func (a Actor) CanAccess(ownerID uuid.UUID) bool {
	if a.IsAdmin() {
		return true
	}
	return a.ID == ownerID
}
