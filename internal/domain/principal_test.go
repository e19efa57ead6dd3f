package domain

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestIsUser(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"alice", true},
		{"Alice", true},
		{"ALICE", false},
		{"EVERYONE", false},
		{"ROLE_1", false},
		{"", false},
		{"123", false},
		{"R2d2", true},
		{"žížala", true}, // unicode lowercase
		{"ŽÍŽALA", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, IsUser(c.name), "IsUser(%q)", c.name)
	}
}

func TestIsUserMatchesLowercaseScan(t *testing.T) {
	names := []string{"alice", "BOB", "Mixed_CASE", "ROLE_X", "", "ěščř"}
	for _, n := range names {
		want := false
		for _, r := range n {
			if unicode.IsLower(r) {
				want = true
				break
			}
		}
		assert.Equal(t, want, IsUser(n), "IsUser(%q)", n)
	}
}

func TestSplitPrincipals(t *testing.T) {
	users, roles := SplitPrincipals([]string{"alice", "ROLE_X", "bob", "EVERYONE"})
	assert.ElementsMatch(t, []string{"alice", "bob"}, users.ToSlice())
	assert.ElementsMatch(t, []string{"ROLE_X", "EVERYONE"}, roles.ToSlice())

	// Partition: no overlap, no loss.
	assert.Equal(t, 0, users.Intersect(roles).Cardinality())
	assert.Equal(t, 4, users.Union(roles).Cardinality())
}

func TestSplitPrincipalsEmpty(t *testing.T) {
	users, roles := SplitPrincipals(nil)
	assert.Equal(t, 0, users.Cardinality())
	assert.Equal(t, 0, roles.Cardinality())
}
