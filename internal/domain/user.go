package domain

import (
	"time"
)

type Role string

const (
	RoleEmployee Role = "员工"
	RoleHR       Role = "人事"
	RoleAdmin    Role = "管理员"
)

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Department   string     `json:"department"`
	Role         Role       `json:"role"`
	HireDate     *time.Time `json:"hireDate"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	Version      int32      `json:"-"`
}
