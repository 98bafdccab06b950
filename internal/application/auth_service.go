// Package application contains the use-case services that sit between the
// HTTP handlers and the domain repositories.
package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/garagemlabs/garagem-api/internal/domain/entity"
	"github.com/garagemlabs/garagem-api/internal/domain/repository"
	"github.com/garagemlabs/garagem-api/internal/errs"
	"github.com/garagemlabs/garagem-api/pkg/helpers"
	"github.com/garagemlabs/garagem-api/pkg/mailer"
)

// AuthService implements registration, login and profile self-service.
type AuthService struct {
	Users       repository.UserRepository
	JWT         *helpers.JWTManager
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger, Pub: pub, MailEnabled: mailEnabled}
}

// TokenPair is an access/refresh token set with expiries.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Nome  string
	Email string
	Senha string
	Idade *int
}

// NormalizeEmail lowercases and trims an email so duplicate detection is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account. The password is bcrypt-hashed before it ever
// reaches the repository and is never logged.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Senha)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Nome:      strings.TrimSpace(in.Nome),
		Email:     NormalizeEmail(in.Email),
		SenhaHash: hash,
		Idade:     in.Idade,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID}).Info("user registered")

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:      u.Email,
			Subject: "Bem-vindo à Garagem Inteligente",
			Text:    fmt.Sprintf("Olá %s, sua conta foi criada com sucesso.", u.Nome),
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).Warn("enqueue welcome email failed")
		}
	}
	return u, nil
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, senha string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil || u == nil {
		return nil, TokenPair{}, errs.ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.SenhaHash, senha) {
		return nil, TokenPair{}, errs.ErrInvalidCredentials
	}
	pair, err := s.issueTokens(u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the token pair. The refresh token is validated against the
// refresh secret and the user must still exist.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		s.Logger.WithError(err).Debug("refresh token rejected")
		return TokenPair{}, errs.ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, errs.ErrInvalidCredentials
	}
	return s.issueTokens(u)
}

func (s *AuthService) issueTokens(u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Nome, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Nome, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// GetProfile returns the user without the password hash ever leaving the
// service boundary serialized.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	Nome  string
	Idade *int
}

// UpdateProfile mutates nome and idade only; identity (id, email) is fixed
// at registration.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if nome := strings.TrimSpace(in.Nome); nome != "" {
		u.Nome = nome
	}
	if in.Idade != nil {
		u.Idade = in.Idade
	}
	if err := s.Users.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
