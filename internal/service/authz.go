package service

import "resonate/internal/models"

// CanMutate is the single ownership predicate for mutating operations:
// an actor may change or delete a record iff they own it or hold the
// admin role. Callers translate a false return to a Forbidden error.
func CanMutate(actorID uint, actorRole models.Role, ownerID uint) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	return actorID == ownerID
}
