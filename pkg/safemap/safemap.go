// Package safemap provides strict uuid-keyed lookups over a resolved set of
// documents. It is the single place where a dangling reference coming back
// from the store turns into a typed error instead of a zero value leaking
// into business logic.
package safemap

import (
	"fmt"
)

// DanglingReferenceError reports a stored uuid that resolved to nothing.
// Callers may treat it as fatal (required referent, e.g. a way's owner) or
// drop the reference and continue (list rendering).
type DanglingReferenceError struct {
	UUID    string
	Context string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference %q while resolving %s", e.UUID, e.Context)
}

// SafeMap wraps one hydration pass's uuid-keyed results. Build it, resolve
// the references you need, and let it go; it is never held past the pass.
type SafeMap[V any] struct {
	context string
	values  map[string]V
}

// New builds a SafeMap for one hydration pass. The context names the caller
// and shows up in every dangling-reference error.
func New[V any](context string, values map[string]V) *SafeMap[V] {
	return &SafeMap[V]{context: context, values: values}
}

// FromSlice builds a SafeMap by indexing a slice with the given key
// function.
func FromSlice[V any](context string, items []V, key func(V) string) *SafeMap[V] {
	values := make(map[string]V, len(items))
	for _, item := range items {
		values[key(item)] = item
	}
	return New(context, values)
}

// Get returns the value for uuid or a DanglingReferenceError. It never
// returns a zero value silently.
func (m *SafeMap[V]) Get(uuid string) (V, error) {
	value, ok := m.values[uuid]
	if !ok {
		var zero V
		return zero, &DanglingReferenceError{UUID: uuid, Context: m.context}
	}
	return value, nil
}

// GetAll resolves a list of uuids, failing on the first miss.
func (m *SafeMap[V]) GetAll(uuids []string) ([]V, error) {
	out := make([]V, 0, len(uuids))
	for _, uuid := range uuids {
		value, err := m.Get(uuid)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, nil
}

// GetPresent resolves a list of uuids, dropping misses and reporting the
// dropped uuids. Used where the caller opts into degrade-and-continue.
func (m *SafeMap[V]) GetPresent(uuids []string) ([]V, []string) {
	out := make([]V, 0, len(uuids))
	var missing []string
	for _, uuid := range uuids {
		if value, ok := m.values[uuid]; ok {
			out = append(out, value)
		} else {
			missing = append(missing, uuid)
		}
	}
	return out, missing
}
