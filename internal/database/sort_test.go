package database

import (
	"testing"
)

var allowed = map[string]bool{"_id": true, "createdAt": true, "location": true}

func TestSortAdapter_Ascending(t *testing.T) {
	sort := SortAdapter("createdAt", allowed)
	if sort[0].Key != "createdAt" || sort[0].Value != 1 {
		t.Errorf("SortAdapter(createdAt) = %v, want createdAt ascending", sort)
	}
}

func TestSortAdapter_Descending(t *testing.T) {
	sort := SortAdapter("-createdAt", allowed)
	if sort[0].Key != "createdAt" || sort[0].Value != -1 {
		t.Errorf("SortAdapter(-createdAt) = %v, want createdAt descending", sort)
	}
}

// TestSortAdapter_UnknownField verifies unknown sort fields fail closed by
// falling back to the identity field.
func TestSortAdapter_UnknownField(t *testing.T) {
	for _, token := range []string{"salary", "-salary", "", "-", "$where"} {
		sort := SortAdapter(token, allowed)
		if sort[0].Key != "_id" {
			t.Errorf("SortAdapter(%q) sorted on %q, want fallback to _id", token, sort[0].Key)
		}
	}
}

func TestSortAdapter_UnknownFieldKeepsDirection(t *testing.T) {
	sort := SortAdapter("-salary", allowed)
	if sort[0].Key != "_id" || sort[0].Value != -1 {
		t.Errorf("SortAdapter(-salary) = %v, want _id descending", sort)
	}
}
