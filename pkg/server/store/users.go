package store

// User is a user with the names of the roles granted to them.
type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles,omitempty"`
}

// Credentials is the login view of a user.
type Credentials struct {
	UserID       int
	Username     string
	Email        string
	PasswordHash string
}

// Profile is a user together with their roles and the distinct
// permissions those roles grant.
type Profile struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// UsersStore abstracts user administration and lookup.
type UsersStore interface {
	// CreateUser registers a user. A duplicate email returns
	// ErrDuplicateEmail.
	CreateUser(username, email, passwordHash string) (*User, error)

	// FetchCredentials returns the login view for an email, or
	// ErrNotFound.
	FetchCredentials(email string) (*Credentials, error)

	// FetchProfile returns a user with roles and distinct permissions,
	// or ErrNotFound.
	FetchProfile(userID int) (*Profile, error)

	// ListUsers returns all users with their role names.
	ListUsers() ([]User, error)

	// GrantRole grants a role to a user; an existing grant is a no-op.
	GrantRole(userID, roleID int) error

	// RevokeRole removes a user-role grant by role name. Returns
	// ErrNotFound when no such grant exists.
	RevokeRole(userID int, roleName string) error
}
