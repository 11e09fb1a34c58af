// Package policy centralizes every role and ownership decision so the
// rules live in one place instead of drifting across handlers.
package policy

import (
	"slices"

	"github.com/crewtrack/crewtrack/internal/types"
)

// CanViewProject reports whether a user may read a project's detail,
// including its message stream. Admins and project managers see every
// project; tekkies only the ones they are assigned to.
func CanViewProject(role string, userID uint, team []uint) bool {
	if role == types.RoleAdmin || role == types.RoleProjectManager {
		return true
	}
	return slices.Contains(team, userID)
}

// CanEditRestrictedFields governs the requirements and suggestions
// fields: only the project's creator or an admin may change them.
func CanEditRestrictedFields(role string, userID uint, createdBy uint) bool {
	return role == types.RoleAdmin || userID == createdBy
}

// CanPostMessage allows team members plus admins and project managers
// to append to a project's message log.
func CanPostMessage(role string, userID uint, team []uint) bool {
	if role == types.RoleAdmin || role == types.RoleProjectManager {
		return true
	}
	return slices.Contains(team, userID)
}

// CanEditNote: a tekkie may only touch their own note; managers and
// admins may edit anyone's.
func CanEditNote(role string, userID uint, noteOwnerID uint) bool {
	if role == types.RoleAdmin || role == types.RoleProjectManager {
		return true
	}
	return userID == noteOwnerID
}

// CanManageUsers: user administration is admin-only.
func CanManageUsers(role string) bool {
	return role == types.RoleAdmin
}

// CanManageProjectMeta: project creation, deletion and non-restricted
// field edits are open to admins and project managers.
func CanManageProjectMeta(role string) bool {
	return role == types.RoleAdmin || role == types.RoleProjectManager
}
