package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// ParseRole normalises a role name. "user" is the legacy spelling of customer.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "staff":
		return RoleStaff, true
	case "customer", "user":
		return RoleCustomer, true
	}
	return "", false
}

// UnmarshalJSON decodes a role through ParseRole, so the legacy "user"
// spelling arrives as RoleCustomer. An empty string leaves the role unset.
func (r *Role) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*r = ""
		return nil
	}
	role, ok := ParseRole(raw)
	if !ok {
		return fmt.Errorf("unknown role %q", raw)
	}
	*r = role
	return nil
}

// IsBackOffice reports whether the role may use the admin portal.
func (r Role) IsBackOffice() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	BusinessID   string    `json:"businessId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Name returns the display name.
func (u User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Tokens is the pair returned by a successful login.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID     string
	Role       Role
	BusinessID string
}

// CanAccessCustomer reports whether the actor may see data owned by customerID.
func (a Actor) CanAccessCustomer(customerID string) bool {
	return a.Role.IsBackOffice() || a.UserID == customerID
}
