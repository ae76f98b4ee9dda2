// Package entity defines the domain entities for the users feature.
package entity

// Default profile values applied at signup when the client omits them.
const (
	DefaultName   = "Jacques Cousteau"
	DefaultAbout  = "Explorer"
	DefaultAvatar = "https://practicum-content.s3.us-west-1.amazonaws.com/resources/moved_avatar_1604080799.jpg"
)

// User is a registered account.
type User struct {
	// ID is a 24 character hex identifier.
	ID     string
	Name   string
	About  string
	Avatar string
	// Email is unique across all users and stored lower-cased.
	Email string
	// Password is the bcrypt hash. It is only loaded for credential checks.
	Password string
}

// ApplyDefaults fills empty profile fields with the signup defaults.
func (u *User) ApplyDefaults() {
	if u.Name == "" {
		u.Name = DefaultName
	}
	if u.About == "" {
		u.About = DefaultAbout
	}
	if u.Avatar == "" {
		u.Avatar = DefaultAvatar
	}
}
