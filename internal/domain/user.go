package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleStudent    UserRole = "STUDENT"
	RoleInstructor UserRole = "INSTRUCTOR"
	RoleAdmin      UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null;size:50" json:"username" validate:"notblank,min=3,max=50"`
	Email          string    `gorm:"uniqueIndex;not null;size:100" json:"email" validate:"notblank,email,max=100"`
	PasswordHash   string    `gorm:"not null" json:"-" validate:"required"`
	FirstName      string    `gorm:"not null" json:"firstName" validate:"notblank,max=100"`
	LastName       string    `gorm:"not null" json:"lastName" validate:"notblank,max=100"`
	Role           UserRole  `gorm:"type:varchar(20);not null;index" json:"role" validate:"oneof=STUDENT INSTRUCTOR ADMIN"`
	Active         bool      `gorm:"not null" json:"active"`
	ProfilePicture string    `json:"profilePicture,omitempty" validate:"max=500"`
	Bio            string    `gorm:"size:1000" json:"bio,omitempty" validate:"max=1000"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// NewUser builds an active user. passwordHash must already be hashed.
func NewUser(username, email, passwordHash, firstName, lastName string, role UserRole) (*User, error) {
	u := &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		Active:       true,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *User) Validate() error {
	return Validate(u)
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsStudent() bool    { return u.Role == RoleStudent }
func (u *User) IsInstructor() bool { return u.Role == RoleInstructor }
func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
