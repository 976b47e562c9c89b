// Package activities declares the daily activity store: one row per user and
// calendar day, accumulated in place.
package activities

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/server/models"
)

// Repository stores models.Activity rows. Days are calendar dates; only the
// year, month and day of the time.Time arguments are used.
type Repository interface {
	// FindByUserAndDate returns common.ErrorNotFound when the user has no
	// record for day.
	FindByUserAndDate(ctx context.Context, userID string, day time.Time) (*models.Activity, error)

	// ListByUserSince returns records with day >= since, newest first.
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*models.Activity, error)

	// ListByUserBetween returns records with from <= day <= to, newest first.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*models.Activity, error)

	// Accumulate adds delta to the (userID, day) record, creating it with
	// delta as initial values when absent, and returns the resulting record.
	// It is a single atomic step: concurrent calls never lose an update or
	// create a second row for the same day.
	Accumulate(ctx context.Context, userID string, day time.Time, delta models.ActivityDelta) (*models.Activity, error)

	// Upsert writes the counters of a as absolute values for (a.UserID, a.Day).
	Upsert(ctx context.Context, a *models.Activity) error

	CountByUser(ctx context.Context, userID string) (int64, error)
}
