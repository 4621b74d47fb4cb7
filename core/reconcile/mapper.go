package reconcile

import (
	"errors"
	"fmt"
)

// ErrUnmappedReference is returned when a source id has no destination counterpart.
var ErrUnmappedReference = errors.New("unmapped reference")

// Mapping translates source-side ids of one entity kind to destination-side ids.
type Mapping struct {
	kind  string
	ids   map[int64]int64
	order []int64
}

// BuildMapping walks the target records and pairs each with the first source record
// sharing its natural key. Target records without a source counterpart are left out.
// If several target records resolve to the same source record, the first one wins.
func BuildMapping[T Record](kind string, source, target []T, keys []string, idOf func(T) int64) *Mapping {
	m := &Mapping{kind: kind, ids: make(map[int64]int64, len(target))}
	for _, t := range target {
		i, ok := findMatch(t, source, keys, nil)
		if !ok {
			continue
		}
		sourceID := idOf(source[i])
		if _, seen := m.ids[sourceID]; seen {
			continue
		}
		m.ids[sourceID] = idOf(t)
		m.order = append(m.order, sourceID)
	}
	return m
}

// Kind names the entity kind the mapping covers.
func (m *Mapping) Kind() string {
	return m.kind
}

// Len returns the number of mapped pairs.
func (m *Mapping) Len() int {
	return len(m.order)
}

// Lookup returns the destination id for sourceID or ErrUnmappedReference.
func (m *Mapping) Lookup(sourceID int64) (int64, error) {
	if id, ok := m.ids[sourceID]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %s %d has no counterpart on the destination", ErrUnmappedReference, m.kind, sourceID)
}

// Maps reports whether sourceID translates to targetID.
func (m *Mapping) Maps(sourceID, targetID int64) bool {
	id, ok := m.ids[sourceID]
	return ok && id == targetID
}

// Each calls fn for every pair in destination listing order and stops at the first error.
func (m *Mapping) Each(fn func(sourceID, targetID int64) error) error {
	for _, sourceID := range m.order {
		if err := fn(sourceID, m.ids[sourceID]); err != nil {
			return err
		}
	}
	return nil
}
