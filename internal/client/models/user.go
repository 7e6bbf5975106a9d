// Package models defines the records exchanged with the devfolio REST API.
// They mirror the backend JSON; the client does no normalization beyond
// merging local patches.
package models

import "github.com/dmitrijs2005/devfolio/internal/timex"

// Role is the fixed set of account roles known to the backend.
type Role string

const (
	RoleUser       Role = "User"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
)

// Roles lists every known role in privilege order.
var Roles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin}

// IsAdmin reports whether the role may use the admin listings.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is a portfolio account.
type User struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"firstName,omitempty"`
	LastName    string      `json:"lastName,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	Location    string      `json:"location,omitempty"`
	Website     string      `json:"website,omitempty"`
	GithubURL   string      `json:"githubUrl,omitempty"`
	LinkedInURL string      `json:"linkedInUrl,omitempty"`
	AvatarURL   string      `json:"avatarUrl,omitempty"`
	Role        Role        `json:"role"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   timex.Time  `json:"createdAt"`
	UpdatedAt   timex.Time  `json:"updatedAt"`
	LastLoginAt *timex.Time `json:"lastLoginAt,omitempty"`
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// UserPatch carries a partial user update; nil fields are left untouched.
type UserPatch struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
	Website     *string `json:"website,omitempty"`
	GithubURL   *string `json:"githubUrl,omitempty"`
	LinkedInURL *string `json:"linkedInUrl,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
	Role        *Role   `json:"role,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// Apply returns a copy of u with every non-nil patch field overwritten.
func (p UserPatch) Apply(u User) User {
	setString(&u.Username, p.Username)
	setString(&u.Email, p.Email)
	setString(&u.FirstName, p.FirstName)
	setString(&u.LastName, p.LastName)
	setString(&u.Bio, p.Bio)
	setString(&u.Location, p.Location)
	setString(&u.Website, p.Website)
	setString(&u.GithubURL, p.GithubURL)
	setString(&u.LinkedInURL, p.LinkedInURL)
	setString(&u.AvatarURL, p.AvatarURL)
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	return u
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p == UserPatch{}
}

// ChangePassword is the body of the password change call.
type ChangePassword struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// UserQuery filters the admin user listing.
type UserQuery struct {
	Page     int
	PageSize int
	Search   string
	Role     Role
	IsActive *bool
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v. Used to build patches.
func Ptr[T any](v T) *T {
	return &v
}
