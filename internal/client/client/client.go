package client

import (
	"context"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

// Client is the JobTrack API as seen by the CLI.
type Client interface {
	SetToken(token string)

	Health(ctx context.Context) error
	Register(ctx context.Context, username, password string, answers models.SecurityAnswers) error
	Login(ctx context.Context, username, password string) (string, error)
	VerifyUser(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, username string, answers models.SecurityAnswers, newPassword string) error

	SubmitActivity(ctx context.Context, in models.ActivityInput) (*models.Activity, error)
	Activities(ctx context.Context, days int) ([]models.Activity, error)
	Goals(ctx context.Context) ([]models.Goal, error)
	SetGoal(ctx context.Context, goal models.Goal) (*models.Goal, error)
	Stats(ctx context.Context) (*models.Stats, error)
	Progress(ctx context.Context) ([]models.Progress, error)
	Export(ctx context.Context) (*models.Export, error)
	Import(ctx context.Context, activities []models.Activity) (int, error)
}
