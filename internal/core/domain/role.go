package domain

// Primitive role names. The set is fixed and seeded at startup.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// PrimitiveRoles returns the seeded role set in rank order.
func PrimitiveRoles() []string {
	return []string{RoleUser, RoleModerator, RoleAdmin}
}

// Role is a named privilege level referenced by users.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rank is the total order over roles used for "at least this privileged"
// checks. Comparing ranks replaces comparing role name strings.
type Rank int

const (
	RankUser Rank = iota
	RankModerator
	RankAdmin
)

// RankOf maps a role name to its rank. The second return is false for any
// name outside the primitive set.
func RankOf(name string) (Rank, bool) {
	switch name {
	case RoleUser:
		return RankUser, true
	case RoleModerator:
		return RankModerator, true
	case RoleAdmin:
		return RankAdmin, true
	}
	return 0, false
}

// Rank returns the rank of this role's name.
func (r Role) Rank() (Rank, bool) {
	return RankOf(r.Name)
}
