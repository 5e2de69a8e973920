package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
	"github.com/TmanScript/umoja-swap-collection/internal/domain/repository"
	"github.com/TmanScript/umoja-swap-collection/pkg/logger"
)

// ErrInvalidCredentials is returned for a bad phone/password pair. The
// message is deliberately generic.
var ErrInvalidCredentials = errors.New("invalid phone number or password")

// SessionClaims is the JWT payload identifying the acting admin.
type SessionClaims struct {
	AdminID string `json:"admin_id"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// AuthUsecase verifies admin logins and mints session tokens.
type AuthUsecase struct {
	admins repository.AdminRepository
	logger logger.Logger
	secret []byte
	expiry time.Duration
}

// NewAuthUsecase creates the login/session service.
func NewAuthUsecase(admins repository.AdminRepository, log logger.Logger, secret string, expiry time.Duration) *AuthUsecase {
	return &AuthUsecase{
		admins: admins,
		logger: log,
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Login authenticates a phone/password pair and returns the admin plus
// a signed session token. An account without an admin_id cannot write
// ledger records, so it is rejected as a configuration error rather
// than let through to fail later.
func (a *AuthUsecase) Login(ctx context.Context, phone, password string) (*entity.Admin, string, error) {
	admin, err := a.admins.FindByPhone(ctx, phone)
	if err != nil {
		return nil, "", err
	}
	if admin == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	if admin.AdminID == "" {
		a.logger.Error("Admin record has no admin_id", "phone", phone)
		return nil, "", &entity.ConfigurationError{Reason: "account configuration error: missing admin_id"}
	}

	now := time.Now()
	claims := &SessionClaims{
		AdminID: admin.AdminID,
		Name:    admin.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, "", err
	}
	return admin, token, nil
}

// ValidateToken verifies a session token and returns its claims.
func (a *AuthUsecase) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
