package domain

// RoleAdmin is the only role the client treats specially. Role is an open
// string owned by the backend; everything that is not ADMIN is an ordinary
// member.
const RoleAdmin = "ADMIN"

// User is the cached account record the backend returns on authentication.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Gender    string `json:"gender,omitempty"`
	Role      string `json:"role"`
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up request body.
type Registration struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Gender    string `json:"gender,omitempty"`
}

// AuthResult is the backend's answer to both register and authenticate.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
