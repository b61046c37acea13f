package domain

import (
	"time"
)

type Role string

const (
	RoleFrontDesk     Role = "front_desk"
	RoleClinician     Role = "clinician"
	RolePracticeAdmin Role = "practice_admin"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
