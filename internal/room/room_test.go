package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tcases := []struct {
		name     string
		userA    string
		userB    string
		expected string
	}{
		{
			name:     "already ordered",
			userA:    "alice",
			userB:    "bob",
			expected: "alice_bob",
		},
		{
			name:     "reversed order",
			userA:    "bob",
			userB:    "alice",
			expected: "alice_bob",
		},
		{
			name:     "same user",
			userA:    "alice",
			userB:    "alice",
			expected: "alice_alice",
		},
		{
			name:     "case sensitive comparison",
			userA:    "alice",
			userB:    "Bob",
			expected: "Bob_alice",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ID(tc.userA, tc.userB))
		})
	}
}

func TestID_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"alice", "bob"},
		{"carol", "carol"},
		{"x", "aaaaaaaaaaaa"},
		{"user-1", "user-2"},
	}

	for _, p := range pairs {
		assert.Equalf(t, ID(p[0], p[1]), ID(p[1], p[0]),
			"expected ID to be symmetric for %q and %q", p[0], p[1])
	}
}
