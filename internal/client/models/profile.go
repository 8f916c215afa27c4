package models

import "strings"

// Profile is the authenticated user's server-provided attributes.
//
// Login, registration and GET /users/me/ all return this single shape; the
// role always lives at the top level of the profile object.
type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      Role   `json:"role"`
	// Faculty is the id of the user's faculty, nil when unassigned.
	Faculty     *int64 `json:"faculty,omitempty"`
	FacultyName string `json:"faculty_name,omitempty"`
}

// DisplayName returns "First Last" when known, then the username, then the email.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if name := strings.TrimSpace(p.FirstName + " " + p.LastName); name != "" {
		return name
	}
	if p.Username != "" {
		return p.Username
	}
	return p.Email
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.Faculty != nil {
		f := *p.Faculty
		c.Faculty = &f
	}
	return &c
}

// RegisterRequest carries the fields sent to the registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      Role   `json:"role,omitempty"`
	Faculty   *int64 `json:"faculty,omitempty"`
}

// ProfileUpdate is a partial profile for PATCH /users/{id}/. Nil fields are
// not sent.
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	Faculty   *int64  `json:"faculty,omitempty"`
}

// PasswordChange is the body of POST /users/{id}/password/.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
