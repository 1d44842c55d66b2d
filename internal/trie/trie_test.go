package trie

import (
	"testing"
)

func TestMatchesPrefix(t *testing.T) {
	tests := []struct {
		name     string
		inserted [][]string
		query    []string
		expect   bool
	}{
		{
			name:   "empty trie matches nothing",
			query:  []string{"vendor"},
			expect: false,
		},
		{
			name:     "exact match",
			inserted: [][]string{{"vendor"}},
			query:    []string{"vendor"},
			expect:   true,
		},
		{
			name:     "inserted path covers descendants",
			inserted: [][]string{{"vendor"}},
			query:    []string{"vendor", "pkg", "mod.py"},
			expect:   true,
		},
		{
			name:     "sibling sharing a name prefix does not match",
			inserted: [][]string{{"vendor"}},
			query:    []string{"vendored", "file.py"},
			expect:   false,
		},
		{
			name:     "deep inserted path does not cover its ancestors",
			inserted: [][]string{{"build", "generated"}},
			query:    []string{"build"},
			expect:   false,
		},
		{
			name:     "deep inserted path covers its subtree",
			inserted: [][]string{{"build", "generated"}},
			query:    []string{"build", "generated", "api.py"},
			expect:   true,
		},
		{
			name:     "multiple inserted paths",
			inserted: [][]string{{"vendor"}, {"build", "generated"}, {"docs"}},
			query:    []string{"build", "generated"},
			expect:   true,
		},
		{
			name:     "unrelated query",
			inserted: [][]string{{"vendor"}, {"build", "generated"}},
			query:    []string{"src", "app.py"},
			expect:   false,
		},
		{
			name:     "diverging branch",
			inserted: [][]string{{"a", "b", "c"}},
			query:    []string{"a", "b", "d"},
			expect:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := New()
			for _, seq := range tc.inserted {
				tr.Insert(seq)
			}
			if got := tr.MatchesPrefix(tc.query); got != tc.expect {
				t.Errorf("MatchesPrefix(%v) = %v, want %v", tc.query, got, tc.expect)
			}
		})
	}
}

func TestInsertIdempotent(t *testing.T) {
	tr := New()
	tr.Insert([]string{"a", "b"})
	tr.Insert([]string{"a", "b"})

	if !tr.MatchesPrefix([]string{"a", "b"}) {
		t.Error("repeated insert lost the path")
	}
	if tr.MatchesPrefix([]string{"a"}) {
		t.Error("repeated insert must not promote the parent")
	}
}

func TestDebugString(t *testing.T) {
	tr := New()
	tr.Insert([]string{"a", "b"})
	tr.Insert([]string{"a", "c"})
	tr.Insert([]string{"d"})

	want := "a(b(*)c(*))d(*)"
	if got := tr.DebugString(); got != want {
		t.Errorf("DebugString() = %q, want %q", got, want)
	}
}
