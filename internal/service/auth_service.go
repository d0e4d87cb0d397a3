package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	hr "house_rental"
	"house_rental/internal/models"
	"house_rental/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = time.Hour

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", hr.ErrAuth)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", hr.ErrAuth)
)

// AuthService handles registration, login and token verification.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(repo repository.Users, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{users: repo, signingKey: cfg.SigningKey, tokenTTL: ttl}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegister(in RegisterInput) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"email", in.Email},
		{"phoneNumber", in.PhoneNumber},
		{"password", in.Password},
		{"confirmPassword", in.ConfirmPassword},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return hr.Errorf(hr.ErrValidation, "missing required fields: %s", strings.Join(missing, ", "))
	}
	if in.Password != in.ConfirmPassword {
		return hr.Errorf(hr.ErrValidation, "passwords do not match")
	}
	return nil
}

// Register validates input, rejects duplicate emails and stores a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if err := validateRegister(in); err != nil {
		return models.User{}, err
	}
	email := normalizeEmail(in.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, hr.StorageErr("lookup user", err)
	}
	if existing != nil {
		return models.User{}, hr.Errorf(hr.ErrConflict, "email %q is already registered", email)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, hr.Errorf(hr.ErrValidation, "invalid password: %v", err)
	}

	u := models.User{
		ID:           uuid.NewString(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// the UNIQUE index catches a concurrent registration of the same email
		if errors.Is(err, hr.ErrConflict) {
			return models.User{}, err
		}
		return models.User{}, hr.StorageErr("create user", err)
	}
	return u, nil
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Login validates credentials and returns the user with a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return models.User{}, "", hr.StorageErr("lookup user", err)
	}
	if u == nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return models.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return *u, token, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	if strings.TrimSpace(accessToken) == "" {
		return "", ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	if !isID(userID) {
		return models.User{}, hr.Errorf(hr.ErrValidation, "malformed user id %q", userID)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, hr.StorageErr("get user", err)
	}
	if u == nil {
		return models.User{}, hr.Errorf(hr.ErrNotFound, "user %q not found", userID)
	}
	return *u, nil
}

// UpdateProfile lets a user change their own name and phone number.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, requesterID string, in ProfileInput) (models.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if u.ID != requesterID {
		return models.User{}, hr.Errorf(hr.ErrForbidden, "cannot modify another user's profile")
	}

	for _, f := range []struct {
		name string
		src  *string
		dst  *string
	}{
		{"firstName", in.FirstName, &u.FirstName},
		{"lastName", in.LastName, &u.LastName},
		{"phoneNumber", in.PhoneNumber, &u.PhoneNumber},
	} {
		if f.src == nil {
			continue
		}
		v := strings.TrimSpace(*f.src)
		if v == "" {
			return models.User{}, hr.Errorf(hr.ErrValidation, "%s must not be empty", f.name)
		}
		*f.dst = v
	}

	if err := s.users.UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, hr.ErrNotFound) {
			return models.User{}, err
		}
		return models.User{}, hr.StorageErr("update user", err)
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

// isID reports whether id is a well-formed resource identifier.
func isID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
