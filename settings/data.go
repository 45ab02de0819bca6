package settings

import "sync"

// Data is a string-valued settings store with defaults.
// The zero value is not usable; create one with New.
//
// Data is safe for concurrent use.
type Data struct {
	mu       sync.RWMutex
	values   map[string]string
	defaults map[string]string
}

// New creates an empty settings store.
func New() *Data {
	return &Data{
		values:   make(map[string]string),
		defaults: make(map[string]string),
	}
}

// FromMap creates a settings store holding a copy of values.
func FromMap(values map[string]string) *Data {
	d := New()
	for k, v := range values {
		d.values[k] = v
	}
	return d
}

// SetString sets a user value.
func (d *Data) SetString(key, value string) {
	d.mu.Lock()
	d.values[key] = value
	d.mu.Unlock()
}

// SetDefaultString sets the value returned when no user value is set.
func (d *Data) SetDefaultString(key, value string) {
	d.mu.Lock()
	d.defaults[key] = value
	d.mu.Unlock()
}

// Unset removes the user value, restoring the default.
func (d *Data) Unset(key string) {
	d.mu.Lock()
	delete(d.values, key)
	d.mu.Unlock()
}

// String returns the user value for key, the default if none is set, or
// the empty string. A nil store has no values.
func (d *Data) String(key string) string {
	if d == nil {
		return ""
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if v, ok := d.values[key]; ok {
		return v
	}
	return d.defaults[key]
}

// Has reports whether a user value is set for key.
func (d *Data) Has(key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.values[key]
	return ok
}
