package apps

import "sync"

// MemoryHandlers is an in-memory Handlers implementation for tests
type MemoryHandlers struct {
	mu sync.Mutex

	// Installed mirrors duti availability
	Installed bool

	// Extensions and URLs hold the current registry state
	Extensions map[string]string
	URLs       map[string]string

	// Sets records every Set call as "ext:.py=bundle" / "url:http=bundle"
	Sets []string

	// SetErr maps an extension or scheme to an error its Set returns
	SetErr map[string]error
}

// NewMemoryHandlers creates an empty registry with duti installed
func NewMemoryHandlers() *MemoryHandlers {
	return &MemoryHandlers{
		Installed:  true,
		Extensions: make(map[string]string),
		URLs:       make(map[string]string),
		SetErr:     make(map[string]error),
	}
}

// Available implements Handlers
func (m *MemoryHandlers) Available() bool {
	return m.Installed
}

// ExtensionHandler implements Handlers
func (m *MemoryHandlers) ExtensionHandler(ext string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Extensions[ext], nil
}

// URLHandler implements Handlers
func (m *MemoryHandlers) URLHandler(scheme string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.URLs[scheme], nil
}

// SetExtensionHandler implements Handlers
func (m *MemoryHandlers) SetExtensionHandler(ext, bundleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.SetErr[ext]; err != nil {
		return err
	}
	m.Extensions[ext] = bundleID
	m.Sets = append(m.Sets, "ext:."+ext+"="+bundleID)
	return nil
}

// SetURLHandler implements Handlers
func (m *MemoryHandlers) SetURLHandler(scheme, bundleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.SetErr[scheme]; err != nil {
		return err
	}
	m.URLs[scheme] = bundleID
	m.Sets = append(m.Sets, "url:"+scheme+"="+bundleID)
	return nil
}
