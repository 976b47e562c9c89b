package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
	"github.com/dmitrijs2005/jobtrack/internal/server/auth"
	"github.com/dmitrijs2005/jobtrack/internal/server/config"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtrack/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeExport struct {
	userID string
	err    error
}

func (f *fakeExport) Export(ctx context.Context, userID string) (*services.Export, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &services.Export{Key: "exports/" + userID + "/x.json", URL: "http://s3/x", ExpiresAt: time.Unix(0, 0).UTC()}, nil
}

type testEnv struct {
	srv    *Server
	export *fakeExport
	pinger *fakePinger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	m := repomanager.NewInMemoryRepositoryManager()
	clock := func() time.Time { return time.Date(2024, time.May, 15, 12, 0, 0, 0, time.Local) }
	cfg := &config.Config{SecretKey: "test-secret", AccessTokenValidityDuration: time.Hour}

	env := &testEnv{export: &fakeExport{}, pinger: &fakePinger{}}
	env.srv = NewServer(":0", logging.NewJSONLogger(io.Discard, "error"), Services{
		Users:      services.NewUserService(m, cfg),
		Activities: services.NewActivityService(m, clock),
		Goals:      services.NewGoalService(m),
		Stats:      services.NewStatsService(m, clock),
		Export:     env.export,
		Health:     env.pinger,
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := e.srv.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()

	code, _ := e.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"username": username,
		"password": "pw",
		"security_questions": map[string]string{
			"pet_name": "Rex", "birth_city": "Riga", "favorite_movie": "Alien",
		},
	})
	require.Equal(t, http.StatusCreated, code)

	code, body := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": "pw"})
	require.Equal(t, http.StatusOK, code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, username, resp.Username)
	return resp.Token
}

func errorText(t *testing.T, body []byte) string {
	t.Helper()
	var m map[string]string
	require.NoError(t, json.Unmarshal(body, &m))
	return m["error"]
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"healthy"}`, string(body))

	env.pinger.err = errors.New("down")
	code, body = env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"status":"unhealthy"}`, string(body))
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice")

	code, body := env.do(t, http.MethodPost, "/api/register", "", map[string]any{
		"username": "alice", "password": "x",
		"security_questions": map[string]string{"pet_name": "a", "birth_city": "b", "favorite_movie": "c"},
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.NotEmpty(t, errorText(t, body))

	code, body = env.do(t, http.MethodPost, "/api/register", "", map[string]any{"username": "bob", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, errorText(t, body), "pet_name")

	code, _ = env.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = env.do(t, http.MethodPost, "/api/verify-user", "", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusOK, code)
	code, _ = env.do(t, http.MethodPost, "/api/verify-user", "", map[string]string{"username": "nobody"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = env.do(t, http.MethodPost, "/api/reset-password", "", map[string]any{
		"username":         "alice",
		"security_answers": map[string]string{"pet_name": "rex", "birth_city": "riga", "favorite_movie": "wrong"},
		"new_password":     "new",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPost, "/api/reset-password", "", map[string]any{
		"username":         "alice",
		"security_answers": map[string]string{"pet_name": " REX", "birth_city": "riga", "favorite_movie": "alien"},
		"new_password":     "new",
	})
	assert.Equal(t, http.StatusOK, code)

	code, _ = env.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "new"})
	assert.Equal(t, http.StatusOK, code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/api/activities"},
		{http.MethodPost, "/api/activities"},
		{http.MethodGet, "/api/goals"},
		{http.MethodPost, "/api/goals"},
		{http.MethodGet, "/api/stats"},
		{http.MethodGet, "/api/progress"},
		{http.MethodPost, "/api/export"},
	} {
		code, body := env.do(t, r.method, r.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, r.path)
		assert.Equal(t, "Authentication required", errorText(t, body))
	}

	code, body := env.do(t, http.MethodGet, "/api/stats", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", errorText(t, body))
}

func TestTokenForUnknownUserIsRejected(t *testing.T) {
	env := newTestEnv(t)

	token, err := auth.GenerateToken("00000000-0000-0000-0000-000000000000", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	code, body := env.do(t, http.MethodPost, "/api/activities", token, map[string]any{"applications_sent": 3})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", errorText(t, body))

	code, _ = env.do(t, http.MethodGet, "/api/stats", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.login(t, "alice")

	token, err := auth.GenerateToken("00000000-0000-0000-0000-000000000000", []byte("test-secret"), -time.Minute)
	require.NoError(t, err)

	code, body := env.do(t, http.MethodGet, "/api/stats", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Token expired", errorText(t, body))
}

func TestActivitiesAndStats(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice")

	code, body := env.do(t, http.MethodPost, "/api/activities", token, map[string]any{
		"applications_sent": 3, "skill_practice_hours": 1.5,
	})
	require.Equal(t, http.StatusCreated, code)
	var a activityResponse
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, "2024-05-15", a.Date)
	assert.Equal(t, 3, a.ApplicationsSent)

	code, body = env.do(t, http.MethodPost, "/api/activities", token, map[string]any{
		"networking_contacts": 2, "research_companies": 4,
	})
	require.Equal(t, http.StatusCreated, code)
	require.NoError(t, json.Unmarshal(body, &a))
	assert.Equal(t, 3, a.ApplicationsSent)
	assert.Equal(t, 2, a.NetworkingContacts)
	assert.Equal(t, 4, a.ResearchCompanies)

	code, body = env.do(t, http.MethodGet, "/api/activities", token, nil)
	require.Equal(t, http.StatusOK, code)
	var list []activityResponse
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	code, body = env.do(t, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"today_activities":9,"week_activities":9,"current_streak":1,"total_days_logged":1}`, string(body))
}

func TestActivities_BadInput(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice")

	code, _ := env.do(t, http.MethodPost, "/api/activities", token, map[string]any{"applications_sent": -1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPost, "/api/activities", token, map[string]any{"applications_sent": "many"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodGet, "/api/activities?days=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodGet, "/api/activities?days=-3", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodGet, "/api/activities?days=999999999", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := env.do(t, http.MethodGet, "/api/activities?days=7", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(body))
}

func TestGoalsAndProgress(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice")

	code, _ := env.do(t, http.MethodPost, "/api/goals", token, map[string]any{"type": "monthly", "applications_target": 1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := env.do(t, http.MethodPost, "/api/goals", token, map[string]any{"type": "daily", "applications_target": 5})
	require.Equal(t, http.StatusCreated, code)
	var first goalResponse
	require.NoError(t, json.Unmarshal(body, &first))
	assert.Equal(t, "daily", first.Type)

	code, _ = env.do(t, http.MethodPost, "/api/goals", token, map[string]any{"type": "daily", "applications_target": 2, "skill_hours_target": 1.5})
	require.Equal(t, http.StatusCreated, code)

	code, body = env.do(t, http.MethodGet, "/api/goals", token, nil)
	require.Equal(t, http.StatusOK, code)
	var goals []goalResponse
	require.NoError(t, json.Unmarshal(body, &goals))
	require.Len(t, goals, 1)
	assert.Equal(t, 2, goals[0].ApplicationsTarget)
	assert.InDelta(t, 1.5, goals[0].SkillHoursTarget, 1e-9)

	_, _ = env.do(t, http.MethodPost, "/api/activities", token, map[string]any{"applications_sent": 2, "skill_practice_hours": 2})

	code, body = env.do(t, http.MethodGet, "/api/progress", token, nil)
	require.Equal(t, http.StatusOK, code)
	var progress []progressResponse
	require.NoError(t, json.Unmarshal(body, &progress))
	require.Len(t, progress, 1)
	assert.True(t, progress[0].Met)
	assert.Equal(t, counterResponse{Done: 2, Target: 2}, progress[0].Applications)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice")

	code, body := env.do(t, http.MethodPost, "/api/export", token, nil)
	require.Equal(t, http.StatusCreated, code)
	var resp exportResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "http://s3/x", resp.URL)
	assert.NotEmpty(t, env.export.userID)

	env.export.err = errors.New("s3 down")
	code, body = env.do(t, http.MethodPost, "/api/export", token, nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", errorText(t, body))
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		common.ErrorValidation:    http.StatusBadRequest,
		common.ErrorUnauthorized:  http.StatusUnauthorized,
		common.ErrTokenExpired:    http.StatusUnauthorized,
		common.ErrorNotFound:      http.StatusNotFound,
		common.ErrorAlreadyExists: http.StatusConflict,
		common.ErrorConflict:      http.StatusConflict,
		errors.New("boom"):        http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}

func TestImport(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "alice")

	doc := map[string]any{
		"exported_at": "2024-05-01T00:00:00Z",
		"activities": []map[string]any{
			{"date": "2024-05-15", "applications_sent": 3, "networking_contacts": 2, "research_companies": 4, "skill_practice_hours": 1.5},
			{"date": "2024-05-14", "applications_sent": 1},
		},
		"goals": []map[string]any{{"type": "daily"}},
	}
	code, body := env.do(t, http.MethodPost, "/api/import", token, doc)
	require.Equal(t, http.StatusOK, code, string(body))
	assert.JSONEq(t, `{"imported":2}`, string(body))

	code, body = env.do(t, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"today_activities":9,"week_activities":10,"current_streak":2,"total_days_logged":2}`, string(body))

	code, body = env.do(t, http.MethodPost, "/api/import", token, map[string]any{
		"activities": []map[string]any{{"date": "15/05/2024"}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, errorText(t, body), "invalid date")

	code, _ = env.do(t, http.MethodPost, "/api/import", token, map[string]any{
		"activities": []map[string]any{{"date": "2024-05-16", "applications_sent": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPost, "/api/import", "", doc)
	assert.Equal(t, http.StatusUnauthorized, code)
}
