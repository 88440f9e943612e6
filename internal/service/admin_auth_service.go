package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"truckbook/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const adminTokenTTL = time.Hour

type AdminAuthService interface {
	Login(email, password string) (string, error)
}

type adminAuthService struct {
	repo   repository.AdminAuthRepository
	secret []byte
}

func NewAdminAuthService(repo repository.AdminAuthRepository, jwtSecret string) AdminAuthService {
	return &adminAuthService{repo: repo, secret: []byte(jwtSecret)}
}

func (s *adminAuthService) Login(email, password string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("JWT_SECRET not set")
	}
	admin, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", ErrInvalidCredentials
	}

	if !checkPasswordHash(password, admin.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   admin.Email,
		"email": admin.Email,
		"exp":   time.Now().Add(adminTokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// HashPassword produces the value expected in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
