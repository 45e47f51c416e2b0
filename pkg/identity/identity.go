package identity

import "context"

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request.
// The gate extracts it from the bearer token exactly once; handlers read
// it from the context instead of re-parsing the token.
type Identity struct {
	// UserID is the integer user identifier from the userId claim.
	UserID int

	// Email and Username are informational claims carried by the token.
	Email    string
	Username string
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
