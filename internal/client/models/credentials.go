package models

import (
	"bytes"
	"encoding/json"
)

// Credentials is the persisted credential record: the token pair returned by
// login or registration together with the profile it was issued for.
//
// It is stored as one JSON object under a single key; its absence means the
// user is logged out.
type Credentials struct {
	Access  string
	Refresh string
	User    *Profile
	// RawUser is the user object exactly as the server sent it. When set it
	// is written instead of User, so attributes Profile does not model are
	// kept in the stored record.
	RawUser json.RawMessage
}

type credentialsJSON struct {
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
	User    json.RawMessage `json:"user"`
}

func (c *Credentials) UnmarshalJSON(b []byte) error {
	var w credentialsJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*c = Credentials{Access: w.Access, Refresh: w.Refresh}
	if len(w.User) == 0 || bytes.Equal(w.User, []byte("null")) {
		return nil
	}

	var p Profile
	if err := json.Unmarshal(w.User, &p); err != nil {
		return err
	}
	c.User = &p
	c.RawUser = append(json.RawMessage(nil), w.User...)
	return nil
}

func (c Credentials) MarshalJSON() ([]byte, error) {
	w := credentialsJSON{Access: c.Access, Refresh: c.Refresh, User: c.RawUser}
	if len(w.User) == 0 {
		raw, err := json.Marshal(c.User)
		if err != nil {
			return nil, err
		}
		w.User = raw
	}
	return json.Marshal(w)
}

// Complete reports whether both tokens are present.
func (c *Credentials) Complete() bool {
	return c != nil && c.Access != "" && c.Refresh != ""
}

// Clone returns a deep copy of c.
func (c *Credentials) Clone() *Credentials {
	if c == nil {
		return nil
	}
	cp := &Credentials{Access: c.Access, Refresh: c.Refresh, User: c.User.Clone()}
	if c.RawUser != nil {
		cp.RawUser = append(json.RawMessage(nil), c.RawUser...)
	}
	return cp
}

// LoginRequest is the body of POST /users/auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of POST /users/auth/token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is the reply of the refresh endpoint. Access is empty when
// the server did not mint a new token.
type RefreshResponse struct {
	Access string `json:"access"`
}
