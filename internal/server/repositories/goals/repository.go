// Package goals declares the goal store. Goals are never deleted; replacing
// a goal flips the old one to inactive.
package goals

import (
	"context"

	"github.com/dmitrijs2005/jobtrack/internal/server/models"
)

type Repository interface {
	// DeactivateActive marks every active goal of (userID, cadence) inactive
	// and reports how many rows changed.
	DeactivateActive(ctx context.Context, userID string, cadence models.Cadence) (int64, error)

	// Create inserts goal. A second active goal for the same (user, cadence)
	// yields common.ErrorConflict.
	Create(ctx context.Context, goal *models.Goal) (*models.Goal, error)

	// ListActive returns the user's active goals ordered by cadence.
	ListActive(ctx context.Context, userID string) ([]*models.Goal, error)

	// ListHistory returns every goal of (userID, cadence), newest first.
	ListHistory(ctx context.Context, userID string, cadence models.Cadence) ([]*models.Goal, error)
}
