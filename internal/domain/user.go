package domain

import (
	"time"
)

type Role string

const (
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
