package cache

// MemoryBackend keeps entries for the lifetime of the process only.
type MemoryBackend struct {
	data map[string]Value
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		data: make(map[string]Value),
	}
}

func (m *MemoryBackend) Load() (map[string]Value, error) {
	return cloneEntries(m.data), nil
}

func (m *MemoryBackend) Save(entries map[string]Value) error {
	m.data = cloneEntries(entries)
	return nil
}

func (m *MemoryBackend) Location() string {
	return "memory"
}

func cloneEntries(entries map[string]Value) map[string]Value {
	cloned := make(map[string]Value, len(entries))
	for k, v := range entries {
		cloned[k] = v
	}
	return cloned
}
