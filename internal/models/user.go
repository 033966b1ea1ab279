package models

import (
	"fmt"
	"strings"
	"time"
)

// UserRole represents the role assigned to a user
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleEmployee UserRole = "EMPLOYEE"
)

// UserStatus represents whether an account can log in
type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

// ParseUserRole normalizes and validates a role string
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleEmployee:
		return RoleEmployee, nil
	}
	return "", fmt.Errorf("unknown user role: %q", s)
}

// ParseUserStatus normalizes and validates an account status string
func ParseUserStatus(s string) (UserStatus, error) {
	switch UserStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case UserActive:
		return UserActive, nil
	case UserInactive:
		return UserInactive, nil
	}
	return "", fmt.Errorf("unknown user status: %q", s)
}

// User represents a user in the system. Users are never hard-deleted;
// deactivation flips Status to INACTIVE.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"unique;not null"`
	Email        string     `json:"email" gorm:"unique;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	FullName     string     `json:"fullName"`
	Role         UserRole   `json:"role" gorm:"not null;default:'EMPLOYEE'"`
	Status       UserStatus `json:"status" gorm:"not null;default:'ACTIVE'"`
	AvatarColor  string     `json:"avatarColor"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
