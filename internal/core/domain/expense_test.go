package domain

import "testing"

func TestPage_Valid(t *testing.T) {
	cases := []struct {
		name string
		page Page
		want bool
	}{
		{"default", DefaultPage(), true},
		{"empty window", Page{Offset: 3, Limit: 0}, true},
		{"max limit", Page{Offset: 0, Limit: MaxPageLimit}, true},
		{"negative offset", Page{Offset: -1, Limit: 10}, false},
		{"negative limit", Page{Offset: 0, Limit: -1}, false},
		{"limit too large", Page{Offset: 0, Limit: MaxPageLimit + 1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.page.Valid(); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}
