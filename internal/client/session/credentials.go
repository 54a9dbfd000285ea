package session

import "github.com/dmitrijs2005/shopcart/internal/common"

// Credentials is the login/register form. The password is kept as bytes so
// it can be wiped after use.
type Credentials struct {
	Username string
	Password []byte
}

// Clear empties the form and zeroes the password buffer.
func (c *Credentials) Clear() {
	c.Username = ""
	common.WipeByteArray(c.Password)
	c.Password = nil
}
