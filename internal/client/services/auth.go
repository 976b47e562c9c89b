// Package services holds the CLI-side use cases built on the API client:
// account management with a cached access token.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jobtrack/internal/client/client"
	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

type AuthService interface {
	Register(ctx context.Context, userName string, password []byte, answers models.SecurityAnswers) error
	Login(ctx context.Context, userName string, password []byte) error
	VerifyUser(ctx context.Context, userName string) error
	ResetPassword(ctx context.Context, userName string, answers models.SecurityAnswers, newPassword []byte) error
	Logout(ctx context.Context) error
	// Restore loads a cached token into the client and reports whether one
	// was found.
	Restore(ctx context.Context) (bool, error)
}

type authService struct {
	client client.Client
	tokens *TokenStore
}

func NewAuthService(c client.Client, tokens *TokenStore) AuthService {
	return &authService{client: c, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, userName string, password []byte, answers models.SecurityAnswers) error {
	return s.client.Register(ctx, userName, string(password), answers)
}

func (s *authService) Login(ctx context.Context, userName string, password []byte) error {
	token, err := s.client.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}
	s.client.SetToken(token)
	return s.tokens.Save(token)
}

var ErrUnknownUser = errors.New("username not found")

func (s *authService) VerifyUser(ctx context.Context, userName string) error {
	err := s.client.VerifyUser(ctx, userName)
	if errors.Is(err, client.ErrNotFound) {
		return ErrUnknownUser
	}
	return err
}

func (s *authService) ResetPassword(ctx context.Context, userName string, answers models.SecurityAnswers, newPassword []byte) error {
	return s.client.ResetPassword(ctx, userName, answers, string(newPassword))
}

func (s *authService) Logout(ctx context.Context) error {
	s.client.SetToken("")
	return s.tokens.Clear()
}

func (s *authService) Restore(ctx context.Context) (bool, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}
	s.client.SetToken(token)
	return true, nil
}
