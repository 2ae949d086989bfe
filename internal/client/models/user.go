package models

import "strings"

// User is the signed-in account as the client knows it.
type User struct {
	Email       string
	FullName    string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// NewUserFromAuth builds a User from a login/register response. The server
// does not echo the phone number, so callers pass the one they sent, or ""
// for logins.
func NewUserFromAuth(resp *AuthResponse, phoneNumber string) *User {
	return &User{
		Email:       resp.Email,
		FullName:    JoinName(resp.FirstName, resp.LastName),
		FirstName:   resp.FirstName,
		LastName:    resp.LastName,
		PhoneNumber: phoneNumber,
	}
}

// JoinName rebuilds a display name from its parts.
func JoinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
