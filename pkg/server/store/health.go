package store

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies the backing store is reachable
	CheckConnectivity() error
}

// HealthFunc adapts a function to HealthStore
type HealthFunc func() error

func (f HealthFunc) CheckConnectivity() error {
	return f()
}
