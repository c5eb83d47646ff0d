package listx

import (
	"net/url"
	"slices"
	"testing"
)

func TestFromQueryReadsSearchAndFields(t *testing.T) {
	values, _ := url.ParseQuery("search=hotel&status=active,paused&category=kitchen&category=bar&page=3&bogus=1")
	st := FromQuery(values, []string{"status", "category"})
	if st.Search != "hotel" {
		t.Fatalf("search = %q", st.Search)
	}
	if !slices.Equal(st.Selections["status"], []string{"active", "paused"}) {
		t.Fatalf("status = %v", st.Selections["status"])
	}
	if !slices.Equal(st.Selections["category"], []string{"kitchen", "bar"}) {
		t.Fatalf("category = %v", st.Selections["category"])
	}
	if _, ok := st.Selections["bogus"]; ok {
		t.Fatal("undeclared field must be ignored")
	}
}

func TestQueryRoundTripReproducesView(t *testing.T) {
	st := FilterState{Search: "chef"}.WithField("status", "paused", "active")
	raw := Encode(st)
	if raw != "search=chef&status=active%2Cpaused" {
		t.Fatalf("unexpected canonical query %q", raw)
	}
	back := FromRawQuery(raw, []string{"status"})
	records := []record{
		{ID: 1, Title: "Chef", Status: "active"},
		{ID: 2, Title: "Chef", Status: "closed"},
		{ID: 3, Title: "Waiter", Status: "paused"},
	}
	if !slices.Equal(ids(Filter(records, schema, st)), ids(Filter(records, schema, back))) {
		t.Fatal("reloaded query produced a different view")
	}
}

func TestFromRawQueryToleratesMalformedInput(t *testing.T) {
	st := FromRawQuery("search=%zz&status=active", []string{"status"})
	if len(st.Selections["status"]) > 1 {
		t.Fatalf("unexpected selections %v", st.Selections)
	}
}
