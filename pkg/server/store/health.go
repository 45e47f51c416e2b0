package store

// HealthStore abstracts the storage liveness probe.
type HealthStore interface {
	// Ping verifies the storage backend is reachable.
	Ping() error
}
