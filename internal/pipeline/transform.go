package pipeline

import (
	"strings"

	"caabdwc/internal"
)

// Generic row transforms. Each is pure over its inputs; the caller owns row
// order and fan-out.

// Filter partitions rows by a pure predicate, returning keeps and drops in
// source order.
func Filter(rows []internal.Record, keep func(internal.Record) bool) (kept, dropped []internal.Record) {
	for _, r := range rows {
		if keep(r) {
			kept = append(kept, r)
		} else {
			dropped = append(dropped, r)
		}
	}
	return kept, dropped
}

// MapFields rewrites named fields of each row through per-field cleaners,
// leaving other fields untouched. Input rows are not mutated.
func MapFields(rows []internal.Record, cleaners map[string]func(string) string) []internal.Record {
	out := make([]internal.Record, 0, len(rows))
	for _, r := range rows {
		next := r.Clone()
		for field, clean := range cleaners {
			next.Set(field, clean(r.Value(field)))
		}
		out = append(out, next)
	}
	return out
}

// Denormalise fans a row out into one copy per delimited element of the
// named field, substituting the element for the field value. Rows without
// the field pass through the callback zero times.
func Denormalise(rows []internal.Record, field, delimiter string, emit func(internal.Record, string)) {
	for _, r := range rows {
		value, ok := r.Get(field)
		if !ok {
			continue
		}
		for _, part := range strings.Split(value, delimiter) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			next := r.Clone()
			next.Set(field, part)
			emit(next, part)
		}
	}
}

// Lookup joins a value from a key-value table into each row, writing it to
// target. Rows whose key is absent or unmatched are reported through the
// unmatched callback and kept without the target field.
func Lookup(rows []internal.Record, table map[string]string, keyField, target string, unmatched func(internal.Record)) []internal.Record {
	out := make([]internal.Record, 0, len(rows))
	for _, r := range rows {
		next := r.Clone()
		key := r.Value(keyField)
		if v, ok := table[key]; ok {
			next.Set(target, v)
		} else if unmatched != nil {
			unmatched(r)
		}
		out = append(out, next)
	}
	return out
}

// Merge concatenates record streams, preserving each stream's order.
func Merge(streams ...[]internal.Record) []internal.Record {
	var out []internal.Record
	for _, s := range streams {
		out = append(out, s...)
	}
	return out
}
