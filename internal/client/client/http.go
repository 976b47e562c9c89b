package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/gofiber/fiber/v2"
)

type HTTPClient struct {
	baseURL string
	timeout time.Duration
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// requestTimeout is the configured timeout, shortened to ctx's deadline.
func (c *HTTPClient) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); timeout <= 0 || d < timeout {
			timeout = d
		}
	}
	return timeout
}

type errorBody struct {
	Error string `json:"error"`
}

func responseError(code int, body []byte) error {
	var eb errorBody
	msg := strings.TrimSpace(string(body))
	if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
		msg = eb.Error
	}

	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	default:
		return &APIError{Status: code, Message: msg}
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)

	if c.token != "" {
		a.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}
	if in != nil {
		a.JSON(in)
	}
	if t := c.requestTimeout(ctx); t > 0 {
		a.Timeout(t)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return fmt.Errorf("request error: %w", err)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
	}

	if code < 200 || code > 299 {
		return responseError(code, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode error: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, fiber.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, username, password string, answers models.SecurityAnswers) error {
	in := struct {
		Username          string                 `json:"username"`
		Password          string                 `json:"password"`
		SecurityQuestions models.SecurityAnswers `json:"security_questions"`
	}{username, password, answers}
	return c.do(ctx, fiber.MethodPost, "/api/register", in, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	in := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/api/login", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *HTTPClient) VerifyUser(ctx context.Context, username string) error {
	in := struct {
		Username string `json:"username"`
	}{username}
	return c.do(ctx, fiber.MethodPost, "/api/verify-user", in, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, username string, answers models.SecurityAnswers, newPassword string) error {
	in := struct {
		Username        string                 `json:"username"`
		SecurityAnswers models.SecurityAnswers `json:"security_answers"`
		NewPassword     string                 `json:"new_password"`
	}{username, answers, newPassword}
	return c.do(ctx, fiber.MethodPost, "/api/reset-password", in, nil)
}

func (c *HTTPClient) SubmitActivity(ctx context.Context, in models.ActivityInput) (*models.Activity, error) {
	var out models.Activity
	if err := c.do(ctx, fiber.MethodPost, "/api/activities", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Activities(ctx context.Context, days int) ([]models.Activity, error) {
	var out []models.Activity
	if err := c.do(ctx, fiber.MethodGet, "/api/activities?days="+strconv.Itoa(days), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Goals(ctx context.Context) ([]models.Goal, error) {
	var out []models.Goal
	if err := c.do(ctx, fiber.MethodGet, "/api/goals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SetGoal(ctx context.Context, goal models.Goal) (*models.Goal, error) {
	var out models.Goal
	if err := c.do(ctx, fiber.MethodPost, "/api/goals", goal, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := c.do(ctx, fiber.MethodGet, "/api/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Progress(ctx context.Context) ([]models.Progress, error) {
	var out []models.Progress
	if err := c.do(ctx, fiber.MethodGet, "/api/progress", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Export(ctx context.Context) (*models.Export, error) {
	var out models.Export
	if err := c.do(ctx, fiber.MethodPost, "/api/export", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Import(ctx context.Context, activities []models.Activity) (int, error) {
	in := struct {
		Activities []models.Activity `json:"activities"`
	}{activities}

	var out struct {
		Imported int `json:"imported"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/api/import", in, &out); err != nil {
		return 0, err
	}
	return out.Imported, nil
}
