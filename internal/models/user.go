package models

import (
	"fmt"
	"strings"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

// ParseRole decodes the free-form role column of a profile. An empty role is a
// plain member; values other than the known ones are rejected.
func ParseRole(raw string) (UserRole, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin":
		return RoleAdmin, nil
	case "", "member", "user":
		return RoleMember, nil
	default:
		return "", fmt.Errorf("unrecognized role %q", raw)
	}
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// Identity is the authenticated principal as reported by the identity provider.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is owned by the identity side; the portal only reads it.
type Profile struct {
	ID         string  `json:"id" gorm:"primaryKey;size:255"`
	Role       *string `json:"role" gorm:"size:50"`
	FullName   *string `json:"full_name" gorm:"size:200"`
	Department *string `json:"department" gorm:"size:200"`
}

func (Profile) TableName() string {
	return "profiles"
}
