package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/dbx"
	"github.com/dmitrijs2005/jobtrack/internal/server/auth"
	"github.com/dmitrijs2005/jobtrack/internal/server/config"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var answers = models.SecurityAnswers{PetName: " Rex ", BirthCity: "Riga", FavoriteMovie: "Alien"}

func newUserService(t *testing.T, m repomanager.RepositoryManager) *UserService {
	t.Helper()

	orig := hashPassword
	hashPassword = func(p []byte) ([]byte, error) {
		return bcrypt.GenerateFromPassword(p, bcrypt.MinCost)
	}
	t.Cleanup(func() { hashPassword = orig })

	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
	return NewUserService(m, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	m := newManager()
	svc := newUserService(t, m)

	u, err := svc.Register(ctx, "alice", "pw", answers)
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "rex", u.PetName, "answers are stored normalized")
	assert.NotEqual(t, []byte("pw"), u.PasswordHash)

	token, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)

	id, err := auth.GetUserIDFromToken(token, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	id, err = svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, newManager())

	token, err := auth.GenerateToken("00000000-0000-0000-0000-000000000000", []byte("k"), time.Hour)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	expired, err := auth.GenerateToken("00000000-0000-0000-0000-000000000000", []byte("k"), -time.Minute)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestRegister_Validation(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, newManager())

	cases := []struct {
		name     string
		username string
		password string
		answers  models.SecurityAnswers
	}{
		{"no username", " ", "pw", answers},
		{"no password", "bob", "", answers},
		{"no pet", "bob", "pw", models.SecurityAnswers{BirthCity: "x", FavoriteMovie: "y"}},
		{"no city", "bob", "pw", models.SecurityAnswers{PetName: "x", FavoriteMovie: "y"}},
		{"no movie", "bob", "pw", models.SecurityAnswers{PetName: "x", BirthCity: "y"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password, tc.answers)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, newManager())

	_, err := svc.Register(ctx, "alice", "pw", answers)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other", answers)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, newManager())

	_, err := svc.Register(ctx, "alice", "pw", answers)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = svc.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestVerifyUser(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, newManager())

	_, err := svc.Register(ctx, "alice", "pw", answers)
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyUser(ctx, "alice"))
	assert.ErrorIs(t, svc.VerifyUser(ctx, "bob"), common.ErrorNotFound)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, newManager())

	_, err := svc.Register(ctx, "alice", "old", answers)
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, "alice", models.SecurityAnswers{PetName: "rex", BirthCity: "RIGA ", FavoriteMovie: "alien"}, "new")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "old")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = svc.Login(ctx, "alice", "new")
	assert.NoError(t, err)
}

func TestResetPassword_Failures(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(t, newManager())

	_, err := svc.Register(ctx, "alice", "old", answers)
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, "alice", models.SecurityAnswers{PetName: "rex", BirthCity: "riga", FavoriteMovie: "aliens"}, "new")
	assert.ErrorIs(t, err, common.ErrorValidation)

	err = svc.ResetPassword(ctx, "bob", answers, "new")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = svc.ResetPassword(ctx, "alice", answers, "")
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = svc.Login(ctx, "alice", "old")
	assert.NoError(t, err, "failed resets leave the password alone")
}

type brokenUsers struct{ users.Repository }

func (brokenUsers) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, errors.New("db error: down")
}

type brokenUsersManager struct{ repomanager.RepositoryManager }

func (brokenUsersManager) Users(dbx.DBTX) users.Repository { return brokenUsers{} }

func TestLogin_StoreFailureIsInternal(t *testing.T) {
	svc := newUserService(t, brokenUsersManager{newManager()})
	_, err := svc.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)
}
