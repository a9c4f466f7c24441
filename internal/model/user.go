package model

import "time"

// User is an attendee account. Accounts are created on first
// successful Google sign-in and bound 1:1 to the Google subject;
// later logins only bump UpdatedAt. There is no local password.
//
// Fields:
//  ID         – primary key identifier (UUID).
//  GoogleID   – Google OAuth subject ("sub" claim), unique.
//  Email      – email address reported by Google, unique.
//  Name       – display name, editable through the profile endpoint.
//  EmailOptIn – whether booking notifications should be sent.
//  IsAdmin    – grants access to the /v1/admin surface.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – timestamp of last login or profile edit.
type User struct {
	ID         string    `json:"user_id"`
	GoogleID   string    `json:"-"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	EmailOptIn bool      `json:"email_opt_in"`
	IsAdmin    bool      `json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
