package routemeta

// Meta is the declarative metadata attached to a route at registration.
type Meta struct {
	// Group is the handler group name, e.g. "Products". A generic
	// "Controller" or "Handler" suffix is stripped when deriving the
	// permission module.
	Group string

	// Method is the handler method name, e.g. "GetAll". An "Async"
	// suffix is stripped when deriving the permission action.
	Method string

	// ActionName overrides Method as the action-name input when set.
	ActionName string

	// Permission is an explicit required-permission override. When set
	// it beats the convention-derived name.
	Permission string

	// Skip disables permission enforcement for the route entirely.
	Skip bool

	// Anonymous marks routes that never see a credential (e.g. health).
	Anonymous bool

	// NonActionable excludes the route from catalog discovery.
	NonActionable bool
}
