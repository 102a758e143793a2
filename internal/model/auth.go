package model

// AuthContext holds the authenticated identity of a request.
// It is injected into the request context by the auth middleware.
type AuthContext struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (a *AuthContext) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
