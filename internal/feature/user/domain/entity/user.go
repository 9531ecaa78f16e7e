// Package entity defines the domain entities for the user feature.
package entity

import (
	"fmt"
	"strconv"
	"time"
)

// User represents a managed user record.
// A zero ID means the user has never been persisted.
type User struct {
	// ID is assigned by storage on first persist and never changes afterwards.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the display name of the user.
	Name string `gorm:"size:255;not null" json:"name"`

	// Email is the contact address of the user.
	// Uniqueness is left to the storage schema.
	Email string `gorm:"size:255;not null" json:"email"`

	// Age is optional at the type level; the shell always supplies it.
	Age *int `json:"age"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// HasIdentity reports whether the user has been persisted at least once.
func (u *User) HasIdentity() bool {
	return u != nil && u.ID != 0
}

// AgeString renders the age, or "null" when it is unset.
func (u User) AgeString() string {
	if u.Age == nil {
		return "null"
	}
	return strconv.Itoa(*u.Age)
}

// String renders the user the way the console lists records.
func (u User) String() string {
	return fmt.Sprintf("User{id=%d, name='%s', email='%s', age=%s}", u.ID, u.Name, u.Email, u.AgeString())
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
