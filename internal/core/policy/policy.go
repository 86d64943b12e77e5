// Package policy holds every role rule in the system. Services call these
// guards at the top of each operation instead of comparing roles themselves.
package policy

import "github.com/inkroom/cms/internal/core/domain"

// IsAdmin reports whether u holds the admin role.
func IsAdmin(u *domain.User) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleModerator, domain.RoleWriter, domain.RoleViewer:
		return false
	}
	return false
}

// IsModeratorOrAdmin reports whether u may moderate content.
func IsModeratorOrAdmin(u *domain.User) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case domain.RoleAdmin, domain.RoleModerator:
		return true
	case domain.RoleWriter, domain.RoleViewer:
		return false
	}
	return false
}

// IsWriterOrAbove reports whether u may author content.
func IsWriterOrAbove(u *domain.User) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case domain.RoleAdmin, domain.RoleModerator, domain.RoleWriter:
		return true
	case domain.RoleViewer:
		return false
	}
	return false
}

// IsWriter reports whether u is exactly a writer, the only role whose
// article access is limited to its own work.
func IsWriter(u *domain.User) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case domain.RoleWriter:
		return true
	case domain.RoleAdmin, domain.RoleModerator, domain.RoleViewer:
		return false
	}
	return false
}

// RequireAdmin fails unless u is an authenticated admin.
func RequireAdmin(u *domain.User) error {
	return require(u, IsAdmin)
}

// RequireModeratorOrAdmin fails unless u is an authenticated moderator or admin.
func RequireModeratorOrAdmin(u *domain.User) error {
	return require(u, IsModeratorOrAdmin)
}

// RequireWriterOrAbove fails unless u is an authenticated writer, moderator or admin.
func RequireWriterOrAbove(u *domain.User) error {
	return require(u, IsWriterOrAbove)
}

// RequireAuthenticated fails only for a missing caller.
func RequireAuthenticated(u *domain.User) error {
	if u == nil {
		return domain.ErrUnauthenticated
	}
	return nil
}

func require(u *domain.User, pred func(*domain.User) bool) error {
	if u == nil {
		return domain.ErrUnauthenticated
	}
	if !pred(u) {
		return domain.ErrPermissionDenied
	}
	return nil
}
