package domain

import (
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
)

// EveryoneRole is the pseudo-role that matches every actor, including
// anonymous requests. It never corresponds to a row in the role store.
const EveryoneRole = "EVERYONE"

// Roles reserved for the platform itself. They are excluded from role
// resolution and never participate in access rules.
const (
	RoleAdmin          = "ADMIN"
	RoleGroupAdmin     = "GROUP_ADMIN"
	RoleGeoserverAdmin = "ROLE_ADMINISTRATOR"
)

// UserRolePrefix marks auto-generated per-user roles in the role store.
const UserRolePrefix = "USER_"

// IsUser reports whether a principal name denotes a user rather than a
// role. A name is a user name iff it contains at least one lowercase
// letter; role naming convention enforced upstream keeps role names free
// of lowercase characters. Pure function of the string's characters.
func IsUser(name string) bool {
	for _, r := range name {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// SplitPrincipals partitions principal names into user names and role
// names using IsUser. Role names are simply the complement; no separate
// check is applied to them.
func SplitPrincipals(names []string) (userNames, roleNames mapset.Set[string]) {
	userNames = mapset.NewThreadUnsafeSet[string]()
	roleNames = mapset.NewThreadUnsafeSet[string]()
	for _, n := range names {
		if IsUser(n) {
			userNames.Add(n)
		} else {
			roleNames.Add(n)
		}
	}
	return userNames, roleNames
}
