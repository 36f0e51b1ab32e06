package vault

import (
	"errors"
	"testing"
)

func buildIndex(t *testing.T, records ...CredentialRecord) *Index {
	t.Helper()
	var c Contents
	for _, r := range records {
		if err := c.Add(r); err != nil {
			t.Fatalf("Add(%q) error = %v", r.Name, err)
		}
	}
	return NewIndex(&c)
}

func TestLookupCaseInsensitive(t *testing.T) {
	ix := buildIndex(t,
		NewRecord("Prod-Web", "10.0.0.1", 22, "u", []byte("p"), ""),
		NewRecord("staging", "10.0.0.2", 22, "u", []byte("p"), ""),
	)

	for _, q := range []string{"prod-web", "PROD-WEB", "Prod-Web"} {
		r, err := ix.Lookup(q)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", q, err)
		}
		if r.Name != "Prod-Web" {
			t.Errorf("Lookup(%q) = %q, want Prod-Web", q, r.Name)
		}
	}

	if _, err := ix.Lookup("missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ErrRecordNotFound", err)
	}
}

func TestLookupByIDPrefix(t *testing.T) {
	rec := NewRecord("prod", "10.0.0.1", 22, "u", []byte("p"), "")
	ix := buildIndex(t, rec)

	r, err := ix.Lookup(rec.ID.String()[:8])
	if err != nil {
		t.Fatalf("Lookup(id prefix) error = %v", err)
	}
	if r.ID != rec.ID {
		t.Errorf("Lookup(id prefix) = %s, want %s", r.ID, rec.ID)
	}
}

// TestSearchRanking: name matches rank before host/description matches.
func TestSearchRanking(t *testing.T) {
	ix := buildIndex(t,
		NewRecord("db-prod", "10.0.0.2", 22, "u", []byte("p"), "web cache"),
		NewRecord("web-prod", "10.0.0.1", 22, "u", []byte("p"), ""),
	)

	got := ix.Search("web")
	if len(got) != 2 {
		t.Fatalf("Search(web) returned %d records, want 2", len(got))
	}
	// web-prod matches in name, db-prod only in description.
	if got[0].Name != "web-prod" || got[1].Name != "db-prod" {
		t.Errorf("Search(web) order = [%s, %s], want [web-prod, db-prod]", got[0].Name, got[1].Name)
	}
}

func TestSearchInsertionOrderWithinRank(t *testing.T) {
	ix := buildIndex(t,
		NewRecord("prod-c", "x", 22, "u", []byte("p"), ""),
		NewRecord("prod-a", "x", 22, "u", []byte("p"), ""),
		NewRecord("prod-b", "x", 22, "u", []byte("p"), ""),
	)

	got := ix.Search("prod")
	want := []string{"prod-c", "prod-a", "prod-b"}
	for i, r := range got {
		if r.Name != want[i] {
			t.Errorf("Search(prod)[%d] = %q, want %q", i, r.Name, want[i])
		}
	}
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	ix := buildIndex(t,
		NewRecord("one", "a", 22, "u", []byte("p"), ""),
		NewRecord("two", "b", 22, "u", []byte("p"), ""),
	)

	got := ix.Search("")
	if len(got) != 2 || got[0].Name != "one" || got[1].Name != "two" {
		t.Errorf("Search(\"\") = %v, want full contents in insertion order", got)
	}
}

func TestSearchHostMatch(t *testing.T) {
	ix := buildIndex(t,
		NewRecord("alpha", "db.internal.example.com", 22, "u", []byte("p"), ""),
	)

	got := ix.Search("internal")
	if len(got) != 1 || got[0].Name != "alpha" {
		t.Errorf("Search(internal) = %v, want [alpha]", got)
	}

	// Username is not part of the strict search surface.
	ix = buildIndex(t, NewRecord("beta", "h", 22, "needle", []byte("p"), ""))
	if got := ix.Search("needle"); len(got) != 0 {
		t.Errorf("Search over username matched %v, want none", got)
	}
}

func TestFuzzy(t *testing.T) {
	ix := buildIndex(t,
		NewRecord("web-production", "10.0.0.1", 22, "deploy", []byte("p"), ""),
		NewRecord("database", "10.0.0.2", 22, "postgres", []byte("p"), "web cache"),
	)

	got := ix.Fuzzy("wbprd")
	if len(got) == 0 {
		t.Fatal("Fuzzy(wbprd) returned nothing")
	}
	if got[0].Name != "web-production" {
		t.Errorf("Fuzzy(wbprd)[0] = %q, want web-production", got[0].Name)
	}

	// Fuzzy also reaches usernames.
	got = ix.Fuzzy("postgres")
	if len(got) == 0 || got[0].Name != "database" {
		t.Errorf("Fuzzy(postgres) = %v, want [database ...]", got)
	}

	// Empty query degrades to the full listing.
	if got := ix.Fuzzy(""); len(got) != 2 {
		t.Errorf("Fuzzy(\"\") returned %d records, want 2", len(got))
	}
}
