package reconcile

import "reflect"

// Record is implemented by every entity the differ compares.
type Record interface {
	// Field returns the value stored under name and whether it is present.
	Field(name string) (any, bool)
}

// Predicate is an additional match condition ANDed with natural-key equivalence.
type Predicate[T any] func(source, target T) bool

// Equivalent reports whether a and b hold equal values for every key, read in order.
// Values of different types never match. A key absent from both records counts as equal.
func Equivalent(a, b Record, keys []string) bool {
	for _, key := range keys {
		av, aok := a.Field(key)
		bv, bok := b.Field(key)
		if aok != bok {
			return false
		}
		if !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

// Missing returns the source records that no target record matches.
// Matching is plain membership: one target record may satisfy any number of source records.
// The result keeps source order and the records' original values.
func Missing[T Record](source, target []T, keys []string, preds ...Predicate[T]) []T {
	missing := make([]T, 0)
	for _, s := range source {
		if _, ok := findMatch(s, target, keys, preds); !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// MissingConsuming is Missing with greedy consumption: once a target record matches a
// source record it leaves the candidate pool. Two identical source records therefore need
// two target records to both count as present.
func MissingConsuming[T Record](source, target []T, keys []string, preds ...Predicate[T]) []T {
	pool := append([]T(nil), target...)
	missing := make([]T, 0)
	for _, s := range source {
		i, ok := findMatch(s, pool, keys, preds)
		if !ok {
			missing = append(missing, s)
			continue
		}
		pool = append(pool[:i], pool[i+1:]...)
	}
	return missing
}

// findMatch returns the index of the first candidate matching s.
func findMatch[T Record](s T, candidates []T, keys []string, preds []Predicate[T]) (int, bool) {
	for i, c := range candidates {
		if matches(s, c, keys, preds) {
			return i, true
		}
	}
	return -1, false
}

func matches[T Record](s, t T, keys []string, preds []Predicate[T]) bool {
	if !Equivalent(s, t, keys) {
		return false
	}
	for _, p := range preds {
		if !p(s, t) {
			return false
		}
	}
	return true
}
