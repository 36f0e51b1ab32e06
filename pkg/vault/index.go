package vault

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Index is a read-only search view over decrypted vault contents. It holds
// no independent lifetime: build it from a session, use it, drop it. It is
// recomputed from the contents on each build rather than maintained
// incrementally.
type Index struct {
	records []CredentialRecord
}

// NewIndex builds an index over the given contents.
func NewIndex(c *Contents) *Index {
	return &Index{records: c.records}
}

// Lookup finds a record by exact name, case-insensitively. As a
// convenience it also accepts a record ID prefix, the way the CLI always
// has. Returns ErrRecordNotFound when nothing matches.
func (ix *Index) Lookup(name string) (*CredentialRecord, error) {
	folded := foldName(name)
	for i := range ix.records {
		if foldName(ix.records[i].Name) == folded {
			return &ix.records[i], nil
		}
	}
	for i := range ix.records {
		if strings.HasPrefix(ix.records[i].ID.String(), name) {
			return &ix.records[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, name)
}

// Search returns records whose name, host or description contains the query
// case-insensitively. Name matches rank before host/description matches;
// within a rank, insertion order is preserved. An empty query returns the
// full ordered contents (list and quick-connect are built on this).
func (ix *Index) Search(query string) []CredentialRecord {
	q := foldName(query)
	if q == "" {
		out := make([]CredentialRecord, len(ix.records))
		copy(out, ix.records)
		return out
	}

	var nameHits, otherHits []CredentialRecord
	for _, r := range ix.records {
		switch {
		case strings.Contains(foldName(r.Name), q):
			nameHits = append(nameHits, r)
		case strings.Contains(foldName(r.Host), q) || strings.Contains(foldName(r.Description), q):
			otherHits = append(otherHits, r)
		}
	}
	return append(nameHits, otherHits...)
}

// recordSource adapts records to fuzzy.Source. The haystack per record is
// the space-joined name, host, username and description.
type recordSource []CredentialRecord

func (s recordSource) String(i int) string {
	r := s[i]
	return r.Name + " " + r.Host + " " + r.Username + " " + r.Description
}

func (s recordSource) Len() int {
	return len(s)
}

// Fuzzy scores records against the query across name, host, username and
// description, best match first. Used by the search command; Lookup and
// Search stay strict so scripted callers get predictable results.
func (ix *Index) Fuzzy(query string) []CredentialRecord {
	if query == "" {
		return ix.Search("")
	}
	matches := fuzzy.FindFrom(query, recordSource(ix.records))
	out := make([]CredentialRecord, 0, len(matches))
	for _, m := range matches {
		out = append(out, ix.records[m.Index])
	}
	return out
}
