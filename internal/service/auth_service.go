package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hostel-complaints/internal/auth"
	"github.com/spec-kit/hostel-complaints/internal/config"
	"github.com/spec-kit/hostel-complaints/internal/domain"
	"github.com/spec-kit/hostel-complaints/internal/repository"
	apperrors "github.com/spec-kit/hostel-complaints/pkg/util"
)

var (
	emailPattern  = regexp.MustCompile(`^([a-zA-Z0-9._%+-]+@gmail\.com|[a-zA-Z0-9]+@student\.nitw\.ac\.in)$`)
	rollNoPattern = regexp.MustCompile(`^[0-9]{2}[a-zA-Z]{3}[0-9][0-9a-zA-Z]{3}$`)
)

const passwordSpecials = "@$!%*?&"

// AuthService coordinates student signup and login. Staff and admin accounts
// come only from bootstrap seeding; signup always produces a student.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// SignupInput describes the student signup payload.
type SignupInput struct {
	Name       string
	Email      string
	Password   string
	RollNo     string
	HostelName string
	RoomNumber string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// RegisterStudent creates a new student account after boundary validation.
func (s *AuthService) RegisterStudent(ctx context.Context, input SignupInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email, and password are required", nil)
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("email must be a valid @gmail.com address", nil)
	}
	if input.RollNo != "" && !rollNoPattern.MatchString(input.RollNo) {
		return nil, apperrors.NewValidationError("roll number is invalid, expected format 23CSB0B26", nil)
	}
	if !passwordAcceptable(input.Password) {
		return nil, apperrors.NewValidationError("password must be at least 8 characters, alphanumeric, with at least 1 special character", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleStudent,
		RollNo:       input.RollNo,
		HostelName:   input.HostelName,
		RoomNumber:   input.RoomNumber,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, expiresAt, nil
}

// passwordAcceptable checks length, the letter/digit/special requirements,
// and that only the allowed character set is used. Spelled out because RE2
// has no lookahead.
func passwordAcceptable(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
			hasLetter = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, ch):
			hasSpecial = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit && hasSpecial
}
