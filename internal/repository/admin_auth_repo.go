package repository

import (
	"strings"
)

type Admin struct {
	Email        string
	PasswordHash string
}

type AdminAuthRepository interface {
	GetByEmail(email string) (*Admin, error)
}

// staticAdminAuthRepository serves the single administrator configured
// through the environment.
type staticAdminAuthRepository struct {
	admin *Admin
}

// NewStaticAdminAuthRepository returns a repository that knows one admin.
// An empty email or hash yields a repository with no admins.
func NewStaticAdminAuthRepository(email, passwordHash string) AdminAuthRepository {
	if email == "" || passwordHash == "" {
		return &staticAdminAuthRepository{}
	}
	return &staticAdminAuthRepository{admin: &Admin{Email: email, PasswordHash: passwordHash}}
}

// GetByEmail returns nil, nil when no admin matches.
func (r *staticAdminAuthRepository) GetByEmail(email string) (*Admin, error) {
	if r.admin == nil || !strings.EqualFold(r.admin.Email, email) {
		return nil, nil
	}
	admin := *r.admin
	return &admin, nil
}
