package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/jobtrack/internal/client/client"
	"github.com/dmitrijs2005/jobtrack/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	client.Client

	token string

	regUser, regPass string
	regErr           error

	loginToken string
	loginErr   error

	verifyErr error

	resetUser, resetPass string
	resetErr             error
}

func (f *fakeClient) SetToken(t string) { f.token = t }

func (f *fakeClient) Register(_ context.Context, u, p string, _ models.SecurityAnswers) error {
	f.regUser, f.regPass = u, p
	return f.regErr
}

func (f *fakeClient) Login(context.Context, string, string) (string, error) {
	return f.loginToken, f.loginErr
}

func (f *fakeClient) VerifyUser(context.Context, string) error { return f.verifyErr }

func (f *fakeClient) ResetPassword(_ context.Context, u string, _ models.SecurityAnswers, p string) error {
	f.resetUser, f.resetPass = u, p
	return f.resetErr
}

func newAuth(t *testing.T, fc *fakeClient) (AuthService, *TokenStore) {
	t.Helper()
	ts := NewTokenStore(filepath.Join(t.TempDir(), "cfg", "token"))
	return NewAuthService(fc, ts), ts
}

func TestLogin_SavesAndSetsToken(t *testing.T) {
	fc := &fakeClient{loginToken: "tok"}
	svc, ts := newAuth(t, fc)

	require.NoError(t, svc.Login(context.Background(), "alice", []byte("pw")))
	assert.Equal(t, "tok", fc.token)

	saved, err := ts.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", saved)

	info, err := os.Stat(ts.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLogin_ErrorSavesNothing(t *testing.T) {
	fc := &fakeClient{loginErr: client.ErrUnauthorized}
	svc, ts := newAuth(t, fc)

	assert.ErrorIs(t, svc.Login(context.Background(), "alice", []byte("pw")), client.ErrUnauthorized)
	saved, err := ts.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestRestoreAndLogout(t *testing.T) {
	fc := &fakeClient{}
	svc, ts := newAuth(t, fc)
	ctx := context.Background()

	ok, err := svc.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ts.Save("cached"))
	ok, err = svc.Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cached", fc.token)

	require.NoError(t, svc.Logout(ctx))
	assert.Empty(t, fc.token)
	ok, err = svc.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, svc.Logout(ctx), "logout twice is fine")
}

func TestRegister_PassesThrough(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newAuth(t, fc)

	require.NoError(t, svc.Register(context.Background(), "alice", []byte("pw"), models.SecurityAnswers{}))
	assert.Equal(t, "alice", fc.regUser)
	assert.Equal(t, "pw", fc.regPass)

	fc.regErr = errors.New("taken")
	assert.EqualError(t, svc.Register(context.Background(), "alice", []byte("pw"), models.SecurityAnswers{}), "taken")
}

func TestVerifyAndReset(t *testing.T) {
	fc := &fakeClient{}
	svc, _ := newAuth(t, fc)
	ctx := context.Background()

	require.NoError(t, svc.VerifyUser(ctx, "alice"))
	require.NoError(t, svc.ResetPassword(ctx, "alice", models.SecurityAnswers{}, []byte("new")))
	assert.Equal(t, "alice", fc.resetUser)
	assert.Equal(t, "new", fc.resetPass)

	fc.verifyErr = fmt.Errorf("%w: User not found", client.ErrNotFound)
	assert.ErrorIs(t, svc.VerifyUser(ctx, "bob"), ErrUnknownUser)

	fc.verifyErr = client.ErrUnavailable
	assert.ErrorIs(t, svc.VerifyUser(ctx, "bob"), client.ErrUnavailable)
}
