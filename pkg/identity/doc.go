// Package identity carries the authenticated request identity through
// the request context as an explicit value set once by the gate.
package identity
