package middleware

//go:generate go run github.com/dmarkham/enumer -type Decision -trimprefix Decision -transform lower -output decision.gen.go

// Decision is the terminal outcome of the permission gate for one
// request.
type Decision int

const (
	// DecisionBypass means enforcement was skipped for the route.
	DecisionBypass Decision = iota
	// DecisionUnauthenticated means no verifiable identity was presented.
	DecisionUnauthenticated
	// DecisionDenied means the identity lacks the required permission.
	DecisionDenied
	// DecisionAllowed means the request was forwarded.
	DecisionAllowed
)
