// Package services holds the business logic of the JobTrack server. Services
// obtain repositories from a repomanager.RepositoryManager and run multi-step
// writes inside its transactions.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/server/auth"
	"github.com/dmitrijs2005/jobtrack/internal/server/config"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// hashPassword is a seam for tests; bcrypt at the default cost is slow.
var hashPassword = func(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
}

func checkAnswers(a models.SecurityAnswers) error {
	switch {
	case strings.TrimSpace(a.PetName) == "":
		return validationError("missing security question: pet_name")
	case strings.TrimSpace(a.BirthCity) == "":
		return validationError("missing security question: birth_city")
	case strings.TrimSpace(a.FavoriteMovie) == "":
		return validationError("missing security question: favorite_movie")
	}
	return nil
}

// Register creates an account. A taken username yields
// common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string, answers models.SecurityAnswers) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("missing field: username")
	}
	if password == "" {
		return nil, validationError("missing field: password")
	}
	if err := checkAnswers(answers); err != nil {
		return nil, err
	}

	hash, err := hashPassword([]byte(password))
	if err != nil {
		return nil, common.ErrorInternal
	}

	answers = answers.Normalize()
	user := &models.User{
		ID:            uuid.NewString(),
		UserName:      username,
		PasswordHash:  hash,
		PetName:       answers.PetName,
		BirthCity:     answers.BirthCity,
		FavoriteMovie: answers.FavoriteMovie,
	}

	repo := s.repomanager.Users(s.repomanager.Conn())

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("username %q: %w", username, common.ErrorAlreadyExists)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login checks the password and issues an access token. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.repomanager.Conn())
	user, err := repo.GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate resolves an access token to the ID of its user. A token
// whose user no longer exists is common.ErrInvalidToken.
func (s *UserService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", err
	}

	repo := s.repomanager.Users(s.repomanager.Conn())
	if _, err := repo.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}
	return userID, nil
}

// VerifyUser returns common.ErrorNotFound when no account has username.
func (s *UserService) VerifyUser(ctx context.Context, username string) error {
	repo := s.repomanager.Users(s.repomanager.Conn())
	_, err := repo.GetUserByLogin(ctx, strings.TrimSpace(username))
	return err
}

func answersMatch(stored *models.User, given models.SecurityAnswers) bool {
	want := stored.Answers()
	given = given.Normalize()
	ok := subtle.ConstantTimeCompare([]byte(want.PetName), []byte(given.PetName))
	ok &= subtle.ConstantTimeCompare([]byte(want.BirthCity), []byte(given.BirthCity))
	ok &= subtle.ConstantTimeCompare([]byte(want.FavoriteMovie), []byte(given.FavoriteMovie))
	return ok == 1
}

// ResetPassword replaces the password of username when all three security
// answers match, compared case-insensitively after trimming.
func (s *UserService) ResetPassword(ctx context.Context, username string, answers models.SecurityAnswers, newPassword string) error {
	if newPassword == "" {
		return validationError("missing field: new_password")
	}

	repo := s.repomanager.Users(s.repomanager.Conn())
	user, err := repo.GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}

	if !answersMatch(user, answers) {
		return validationError("security questions do not match")
	}

	hash, err := hashPassword([]byte(newPassword))
	if err != nil {
		return common.ErrorInternal
	}

	if err := repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}
