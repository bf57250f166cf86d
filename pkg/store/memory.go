package store

import (
	"sync"

	"github.com/arthur-debert/macprefs/pkg/errors"
)

// WriteOp records one Write call against a MemoryDefaults store
type WriteOp struct {
	Domain Domain
	Key    string
	Value  any
}

// MemoryDefaults is an in-memory Defaults implementation for tests.
// It records every write so idempotence and dry-run assertions can
// count OS calls instead of diffing state.
type MemoryDefaults struct {
	mu      sync.Mutex
	domains map[string]map[string]any

	// Writes holds every Write call in order
	Writes []WriteOp

	// ReadErr, when set, is returned by every Read
	ReadErr error

	// WriteErr maps "domain/key" to an error returned by Write
	WriteErr map[string]error
}

// NewMemoryDefaults creates an empty in-memory store
func NewMemoryDefaults() *MemoryDefaults {
	return &MemoryDefaults{
		domains:  make(map[string]map[string]any),
		WriteErr: make(map[string]error),
	}
}

// Seed sets the stored value of a key without recording a write
func (m *MemoryDefaults) Seed(domain Domain, key string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.domains[domainKey(domain)]
	if d == nil {
		d = make(map[string]any)
		m.domains[domainKey(domain)] = d
	}
	d[key] = value
}

// Get returns the stored value of a key, if any
func (m *MemoryDefaults) Get(domain Domain, key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.domains[domainKey(domain)]
	if !ok {
		return nil, false
	}
	v, ok := d[key]
	return v, ok
}

// Read implements Defaults
func (m *MemoryDefaults) Read(domain Domain) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	out := make(map[string]any)
	for k, v := range m.domains[domainKey(domain)] {
		out[k] = v
	}
	return out, nil
}

// Write implements Defaults
func (m *MemoryDefaults) Write(domain Domain, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.WriteErr[domain.Name+"/"+key]; err != nil {
		return errors.Wrap(err, errors.ErrDefaultsWrite, "defaults write failed").
			WithDetail("domain", domain.Name).
			WithDetail("key", key)
	}

	d := m.domains[domainKey(domain)]
	if d == nil {
		d = make(map[string]any)
		m.domains[domainKey(domain)] = d
	}
	d[key] = value
	m.Writes = append(m.Writes, WriteOp{Domain: domain, Key: key, Value: value})
	return nil
}

func domainKey(domain Domain) string {
	if domain.CurrentHost {
		return "byhost:" + domain.Name
	}
	return domain.Name
}

// MemoryProcesses is an in-memory Processes implementation for tests
type MemoryProcesses struct {
	mu sync.Mutex

	// Running names processes the fake considers alive; a Terminate on
	// anything else returns ErrNotRunning.
	Running map[string]bool

	// Terminated records every successful Terminate in order
	Terminated []string

	// TerminateErr, when set, is returned for running processes
	TerminateErr error
}

// NewMemoryProcesses creates a fake with the given running processes
func NewMemoryProcesses(running ...string) *MemoryProcesses {
	m := &MemoryProcesses{Running: make(map[string]bool)}
	for _, name := range running {
		m.Running[name] = true
	}
	return m
}

// Terminate implements Processes
func (m *MemoryProcesses) Terminate(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.Running[name] {
		return ErrNotRunning
	}
	if m.TerminateErr != nil {
		return m.TerminateErr
	}
	m.Terminated = append(m.Terminated, name)
	return nil
}
