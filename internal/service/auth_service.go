package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"parkspot/internal/db"
	apierrors "parkspot/internal/errors"
	"parkspot/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenInvalid = errors.New("token invalid or expired")

type AuthService struct {
	Profiles      repository.ProfileStore
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(profiles repository.ProfileStore, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{Profiles: profiles, jwtSecret: jwtSecret, jwtExpiration: jwtExpiration}
}

func (s *AuthService) Register(ctx context.Context, email, password, name, phone, vehiclePlate string) (*db.Profile, error) {
	if email == "" || password == "" {
		return nil, apierrors.ErrBadRequest("Email and password are required")
	}
	if len(password) < 6 {
		return nil, apierrors.ErrBadRequest("Password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	profile := &db.Profile{
		Email:        email,
		Name:         name,
		Phone:        phone,
		VehiclePlate: vehiclePlate,
		PasswordHash: string(hash),
	}
	if err := s.Profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Login verifies the credentials and returns a signed token plus the profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *db.Profile, error) {
	profile, err := s.Profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   profile.ID,
		"email": profile.Email,
		"admin": profile.IsAdmin,
		"exp":   time.Now().Add(s.jwtExpiration).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, err
	}
	return signed, profile, nil
}

// ValidateToken parses a bearer token and returns the caller's id and admin
// flag.
func (s *AuthService) ValidateToken(tokenString string) (userID string, isAdmin bool, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", false, ErrTokenInvalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false, ErrTokenInvalid
	}
	admin, _ := claims["admin"].(bool)
	return sub, admin, nil
}

func (s *AuthService) GetProfile(ctx context.Context, id string) (*db.Profile, error) {
	return s.Profiles.GetByID(ctx, id)
}

func (s *AuthService) UpdateProfile(ctx context.Context, id, name, phone, vehiclePlate string) (*db.Profile, error) {
	profile, err := s.Profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.Name = name
	profile.Phone = phone
	profile.VehiclePlate = vehiclePlate
	if err := s.Profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apierrors.ErrBadRequest("Password must be at least 6 characters")
	}
	profile, err := s.Profiles.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Profiles.UpdatePassword(ctx, id, string(hash))
}
