package auth

import (
	"context"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dulcesamigas/pos-backend/internal/apperr"
	"github.com/dulcesamigas/pos-backend/internal/modules/crud"
	"github.com/dulcesamigas/pos-backend/internal/modules/user"
)

type service struct {
	userRepo user.Repository
	revoked  RevocationList
	secret   []byte
	ttl      time.Duration
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, revoked RevocationList, secret []byte, ttl time.Duration) Service {
	return &service{userRepo: userRepo, revoked: revoked, secret: secret, ttl: ttl}
}

func (s *service) Login(ctx context.Context, username, password string) (*Credentials, error) {
	account, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.E(apperr.Unauthenticated, "invalid credentials")
		}
		return nil, err
	}
	if account.Status == crud.StatusDeleted {
		return nil, apperr.E(apperr.Unauthenticated, "invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.E(apperr.Unauthenticated, "invalid credentials")
	}

	now := time.Now()
	claims := &jwt.StandardClaims{
		Subject:   account.ID.String(),
		Id:        uuid.New().String(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Credentials{Token: signed, Role: account.Role}, nil
}

func (s *service) Authenticate(ctx context.Context, tokenString string) (*Principal, *jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.E(apperr.Unauthenticated, "unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, nil, apperr.E(apperr.Unauthenticated, "invalid or expired token")
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.Id)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, apperr.E(apperr.Unauthenticated, "token has been revoked")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, nil, apperr.E(apperr.Unauthenticated, "invalid token subject")
	}

	// Permissions come from current account state, never from the token.
	account, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, nil, apperr.E(apperr.Unauthenticated, "account no longer exists")
		}
		return nil, nil, err
	}
	if account.Status == crud.StatusDeleted {
		return nil, nil, apperr.E(apperr.Unauthenticated, "account is disabled")
	}

	return &Principal{
		ID:          account.ID,
		Username:    account.Username,
		Role:        account.Role,
		Permissions: account.Permissions,
	}, claims, nil
}

func (s *service) Logout(ctx context.Context, claims *jwt.StandardClaims) error {
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.Id, ttl)
}
