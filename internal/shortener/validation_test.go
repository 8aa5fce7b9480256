package shortener

import (
	"strings"
	"testing"
)

func TestIsValidShortcode(t *testing.T) {
	testCases := []struct {
		code  string
		valid bool
	}{
		{"example", true},
		{"Example", true},
		{"ex_4", true},
		{"____", true},
		{"0000", true},
		{strings.Repeat("a", 500), true},
		{"exa", false},
		{"", false},
		{"example*", false},
		{"exa mple", false},
		{"exa-mple", false},
		{"exämple", false},
		{"example\n", false},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			if got := IsValidShortcode(tc.code); got != tc.valid {
				t.Errorf("IsValidShortcode(%q) = %v, want %v", tc.code, got, tc.valid)
			}
		})
	}
}
