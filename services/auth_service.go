package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tarweej.app/configs"
	"tarweej.app/models"
	"tarweej.app/repositories"
)

// AuthServiceError is the typed error family for authentication.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "invalid email or password"
	ErrAccountDisabled    AuthServiceError = "account is disabled"
	ErrTokenInvalid       AuthServiceError = "token is invalid or expired"
)

// TokenClaims is what the middleware extracts from a verified bearer token.
type TokenClaims struct {
	UserID uint
	Role   models.UserRole
}

// IAuthService issues and verifies access tokens. Identity management
// beyond this lives outside the service.
type IAuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	VerifyToken(tokenString string) (*TokenClaims, error)
}

type AuthService struct {
	users  repositories.IUserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService() IAuthService {
	cfg := configs.GetConfig()
	return &AuthService{
		users:  repositories.NewUserRepository(),
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.JWTTTL,
	}
}

// Login verifies the password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyToken parses and validates a bearer token.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return nil, ErrTokenInvalid
	}
	role, _ := claims["role"].(string)

	return &TokenClaims{UserID: uint(sub), Role: models.UserRole(role)}, nil
}

var _ IAuthService = (*AuthService)(nil)
