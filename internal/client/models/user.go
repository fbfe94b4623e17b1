// Package models defines the wire and state types of the recipearchive
// client. Optional fields are pointers so that "absent" stays distinct from
// zero values.
package models

import "github.com/cacutler/recipearchive/internal/timex"

// User is the public representation of an account.
type User struct {
	ID        int64            `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	CreatedAt *timex.Timestamp `json:"createdAt,omitempty"`
	UpdatedAt *timex.Timestamp `json:"updatedAt,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// SignupRequest is the body of POST /users.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50,notblank"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50,notblank"`
	Username  string `json:"username" validate:"required,min=3,max=50,notblank"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// UserUpdate is the body of PATCH /users/{id}. Nil fields are left alone by
// the server.
type UserUpdate struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=50,notblank"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1,max=50,notblank"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

// IsEmpty reports whether no field is set.
func (u UserUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil
}

// Apply returns a copy of user with the set fields replaced.
func (u UserUpdate) Apply(user User) User {
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	return user
}
