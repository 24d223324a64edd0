package cache

// Backend defines the port interface for durable cache storage.
// The Store keeps the working mapping in memory and hands the whole mapping
// to the backend on every save; backends never see partial updates.
type Backend interface {
	// Load returns every persisted entry. A backend with nothing persisted
	// yet returns an empty map and no error.
	Load() (map[string]Value, error)

	// Save replaces everything persisted with entries.
	Save(entries map[string]Value) error

	// Location names where entries live, for logs.
	Location() string
}
