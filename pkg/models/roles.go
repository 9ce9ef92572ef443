package models

import (
	"fmt"
	"slices"
)

// Role represents a user role as issued by the hotel API.
type Role string

// The API only distinguishes regular users from administrators.
const (
	RoleUser  Role = "USER"  // standard authenticated guest, can browse and book
	RoleAdmin Role = "ADMIN" // can manage hotels, rooms and users
)

// RoleHierarchy defines the privilege level of each role.
// Higher numbers represent higher privileges.
var RoleHierarchy = map[Role]int{
	RoleUser:  0,
	RoleAdmin: 10,
}

// ListRoles returns a slice of all known roles with the lowest permission role first and the highest last.
func ListRoles() []string {
	type pair struct {
		role Role
		val  int
	}
	pairs := make([]pair, 0, len(RoleHierarchy))
	for r, v := range RoleHierarchy {
		pairs = append(pairs, pair{role: r, val: v})
	}

	slices.SortFunc(pairs, func(a, b pair) int {
		// return negative if a < b, 0 if equal, positive if a > b
		return a.val - b.val
	})

	result := make([]string, 0, len(pairs))
	for _, p := range pairs {
		result = append(result, p.role.String())
	}

	return result
}

// IsValid checks if the Role is one of the predefined valid roles.
func (r Role) IsValid() bool {
	_, exists := RoleHierarchy[r]
	return exists
}

// String implements the fmt.Stringer interface, providing a string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// UnmarshalText and MarshalText methods
func (r *Role) UnmarshalText(text []byte) error {
	s := Role(text)
	if !s.IsValid() {
		return fmt.Errorf("invalid role: %s", text)
	}
	*r = s
	return nil
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// AtLeast reports whether r carries at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	if r.IsValid() && min.IsValid() {
		return RoleHierarchy[r] >= RoleHierarchy[min]
	}
	return false
}
