package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserRole is stored as a named string so the ambiguity of the old 0/1
// integer encoding cannot come back.
type UserRole string

const (
	RoleTester     UserRole = "tester"
	RoleTeamMember UserRole = "team_member"
)

// User represents an account in the tracker. Role is fixed at
// registration; there is no role-change flow.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Memberships []TeamMember `gorm:"foreignKey:UserID" json:"-"`
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ParseRole validates a role value coming in from the API.
func ParseRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleTester, RoleTeamMember:
		return UserRole(s), nil
	}
	return "", ErrInvalidRole
}
