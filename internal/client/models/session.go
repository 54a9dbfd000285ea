package models

// Session is the client's authentication state. Token and User are always
// set or cleared together.
type Session struct {
	Token string
	User  *User
}

// IsLoggedIn is true iff both halves of the session are present.
func (s Session) IsLoggedIn() bool {
	return s.Token != "" && s.User != nil
}
