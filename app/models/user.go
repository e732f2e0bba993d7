package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/recipebox/pkg/auth"
)

var (
	ErrEmailRequired = errors.New("users must have an email address")
	ErrNameRequired  = errors.New("users must have a name")
)

// User is an account. Email is the identity key and is stored lower-cased.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	IsStaff     bool      `gorm:"not null;default:false" json:"is_staff"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds an active user with a hashed password.
func NewUser(email, name, password string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{Email: email, Name: name, Password: hash, IsActive: true}, nil
}

// NewSuperuser is NewUser with staff and superuser flags set.
func NewSuperuser(email, name, password string) (*User, error) {
	u, err := NewUser(email, name, password)
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	return u, nil
}

// SetPassword replaces the stored hash.
func (u *User) SetPassword(plain string) error {
	hash, err := auth.HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return auth.CheckPassword(u.Password, plain)
}

func (u *User) BeforeSave(*gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}
