package listx

import (
	"net/url"
	"slices"
	"strings"
)

// SearchParam is the query parameter carrying the search text
const SearchParam = "search"

// FromQuery builds a FilterState from URL query values. Only the listed
// fields are read; a field may be repeated (?status=a&status=b) or comma
// separated (?status=a,b).
func FromQuery(values url.Values, fields []string) FilterState {
	state := FilterState{Search: strings.TrimSpace(values.Get(SearchParam))}
	for _, field := range fields {
		raw, ok := values[field]
		if !ok {
			continue
		}
		var selected []string
		for _, item := range raw {
			selected = append(selected, strings.Split(item, ",")...)
		}
		state = state.WithField(field, selected...)
	}
	return state
}

// FromRawQuery is FromQuery over an undecoded query string. A malformed
// query yields whatever could be decoded.
func FromRawQuery(raw string, fields []string) FilterState {
	values, _ := url.ParseQuery(raw)
	return FromQuery(values, fields)
}

// ToQuery writes the state back as canonical query values: search first,
// then fields in sorted order with sorted values.
func ToQuery(state FilterState) url.Values {
	values := url.Values{}
	if q := strings.TrimSpace(state.Search); q != "" {
		values.Set(SearchParam, q)
	}
	for _, field := range state.Fields() {
		selected := slices.Clone(state.Selections[field])
		slices.Sort(selected)
		values.Set(field, strings.Join(selected, ","))
	}
	return values
}

// Encode is ToQuery(state).Encode()
func Encode(state FilterState) string {
	return ToQuery(state).Encode()
}
