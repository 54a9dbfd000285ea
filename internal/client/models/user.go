// Package models defines client-side data models used by the shopcart CLI.
package models

import (
	"bytes"
	"encoding/json"
)

// User is the profile returned by the backend on login. Only ID and Username
// are interpreted; the raw JSON is retained so the persisted copy keeps
// every field the backend sent.
type User struct {
	ID       uint64
	Username string

	raw json.RawMessage
}

type userFields struct {
	ID       uint64 `json:"id,omitempty"`
	Username string `json:"username"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	var f userFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	u.ID = f.ID
	u.Username = f.Username
	u.raw = bytes.Clone(b)
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	if len(u.raw) > 0 {
		return u.raw, nil
	}
	return json.Marshal(userFields{ID: u.ID, Username: u.Username})
}

// LoginResult is the body of a successful POST /users/login.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
