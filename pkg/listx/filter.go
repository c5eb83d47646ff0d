// Package listx implements the search and field-selection filtering shared by
// every list view (jobs, applications, users).
package listx

import (
	"maps"
	"slices"
	"strings"
)

// FilterState is the active search text and per-field selections of one list view.
// Values inside a field are OR'd, fields are AND'd.
type FilterState struct {
	Search     string              `json:"search"`
	Selections map[string][]string `json:"selections,omitempty"`
}

// IsEmpty reports whether the state imposes no constraint at all
func (f FilterState) IsEmpty() bool {
	if strings.TrimSpace(f.Search) != "" {
		return false
	}
	for _, values := range f.Selections {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy
func (f FilterState) Clone() FilterState {
	out := FilterState{Search: f.Search}
	if f.Selections != nil {
		out.Selections = make(map[string][]string, len(f.Selections))
		for k, v := range f.Selections {
			out.Selections[k] = slices.Clone(v)
		}
	}
	return out
}

// WithSearch returns a copy with the search text replaced
func (f FilterState) WithSearch(q string) FilterState {
	out := f.Clone()
	out.Search = q
	return out
}

// WithField returns a copy with the selection of one field replaced.
// An empty values list removes the constraint.
func (f FilterState) WithField(field string, values ...string) FilterState {
	out := f.Clone()
	if out.Selections == nil {
		out.Selections = make(map[string][]string)
	}
	values = compact(values)
	if len(values) == 0 {
		delete(out.Selections, field)
		return out
	}
	out.Selections[field] = values
	return out
}

// Toggle adds value to the field selection, or removes it when already selected
func (f FilterState) Toggle(field, value string) FilterState {
	current := f.Selections[field]
	if i := slices.Index(current, value); i >= 0 {
		return f.WithField(field, slices.Delete(slices.Clone(current), i, i+1)...)
	}
	return f.WithField(field, append(slices.Clone(current), value)...)
}

// Fields returns the names of fields with an active selection, sorted
func (f FilterState) Fields() []string {
	keys := make([]string, 0, len(f.Selections))
	for k, v := range f.Selections {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Accessor reads a filterable field. ok=false means the record has no value.
type Accessor[T any] func(T) (value string, ok bool)

// Schema describes how an entity is searched and filtered
type Schema[T any] struct {
	// Search lists the text fields the search query is matched against
	Search []func(T) string
	// Fields maps a filter key to its accessor
	Fields map[string]Accessor[T]
}

// Known reports whether the schema declares a filter field
func (s Schema[T]) Known(field string) bool {
	_, ok := s.Fields[field]
	return ok
}

// FieldNames returns the declared filter keys, sorted
func (s Schema[T]) FieldNames() []string {
	return slices.Sorted(maps.Keys(s.Fields))
}

// Predicate is one link of the chain
type Predicate[T any] func(T) bool

// SearchPredicate matches records where any search field contains the query,
// case-insensitively. An empty query matches everything.
func SearchPredicate[T any](fields []func(T) string, query string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(rec T) bool {
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(rec)), q) {
				return true
			}
		}
		return false
	}
}

// FieldPredicate matches records whose field value is one of values.
// An empty values list imposes no constraint.
func FieldPredicate[T any](get Accessor[T], values []string) Predicate[T] {
	values = compact(values)
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(rec T) bool {
		v, ok := get(rec)
		if !ok || v == "" {
			return false
		}
		_, hit := set[v]
		return hit
	}
}

// Chain builds the predicates state activates on schema. Selections for keys
// the schema does not know are ignored.
func (s Schema[T]) Chain(state FilterState) []Predicate[T] {
	var chain []Predicate[T]
	if p := SearchPredicate(s.Search, state.Search); p != nil {
		chain = append(chain, p)
	}
	for _, field := range state.Fields() {
		get, ok := s.Fields[field]
		if !ok {
			continue
		}
		if p := FieldPredicate(get, state.Selections[field]); p != nil {
			chain = append(chain, p)
		}
	}
	return chain
}

// Match reports whether rec passes every predicate of the state
func (s Schema[T]) Match(rec T, state FilterState) bool {
	return matchAll(rec, s.Chain(state))
}

// Filter returns the records matching state, in their original order.
// The input slice is never modified.
func Filter[T any](records []T, schema Schema[T], state FilterState) []T {
	chain := schema.Chain(state)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if matchAll(rec, chain) {
			out = append(out, rec)
		}
	}
	return out
}

// Facets returns, per declared field, the distinct values present in records
// in first-seen order. Used to populate filter pickers.
func Facets[T any](records []T, schema Schema[T]) map[string][]string {
	out := make(map[string][]string, len(schema.Fields))
	for name, get := range schema.Fields {
		seen := make(map[string]struct{})
		values := []string{}
		for _, rec := range records {
			v, ok := get(rec)
			if !ok || v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		out[name] = values
	}
	return out
}

func matchAll[T any](rec T, chain []Predicate[T]) bool {
	for _, p := range chain {
		if !p(rec) {
			return false
		}
	}
	return true
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
