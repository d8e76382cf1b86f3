package domain

const RoleAdmin = "ADMIN"

// Profile is the authenticated user's identity as returned by the upstream API.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// IsAdmin reports whether the profile grants admin capability.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Credentials is what the storefront persists between runs: the bearer token
// plus the last-known profile. Both are best-effort caches, not sources of truth.
type Credentials struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}
