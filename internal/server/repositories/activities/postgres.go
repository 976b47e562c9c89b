package activities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/dbx"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements activity storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const activityColumns = `id, user_id, day, applications_sent, networking_contacts, skill_practice_hours, research_companies, created_at`

func dateArg(day time.Time) string {
	return day.Format(common.DateLayout)
}

func scanActivity(row interface{ Scan(dest ...any) error }) (*models.Activity, error) {
	a := &models.Activity{}
	err := row.Scan(&a.ID, &a.UserID, &a.Day, &a.ApplicationsSent, &a.NetworkingContacts,
		&a.SkillPracticeHours, &a.ResearchCompanies, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) FindByUserAndDate(ctx context.Context, userID string, day time.Time) (*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE user_id = $1 AND day = $2::date`

	a, err := scanActivity(r.db.QueryRowContext(ctx, query, userID, dateArg(day)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE user_id = $1 AND day >= $2::date
		ORDER BY day DESC`

	return r.list(ctx, query, userID, dateArg(since))
}

func (r *PostgresRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE user_id = $1 AND day BETWEEN $2::date AND $3::date
		ORDER BY day DESC`

	return r.list(ctx, query, userID, dateArg(from), dateArg(to))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select activities: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Accumulate(ctx context.Context, userID string, day time.Time, delta models.ActivityDelta) (*models.Activity, error) {
	query := `
		INSERT INTO activities (id, user_id, day, applications_sent, networking_contacts, skill_practice_hours, research_companies)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		ON CONFLICT (user_id, day)
		DO UPDATE SET
			applications_sent = activities.applications_sent + EXCLUDED.applications_sent,
			networking_contacts = activities.networking_contacts + EXCLUDED.networking_contacts,
			skill_practice_hours = activities.skill_practice_hours + EXCLUDED.skill_practice_hours,
			research_companies = activities.research_companies + EXCLUDED.research_companies
		RETURNING ` + activityColumns

	row := r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, dateArg(day),
		delta.ApplicationsSent, delta.NetworkingContacts, delta.SkillPracticeHours, delta.ResearchCompanies)

	a, err := scanActivity(row)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, a *models.Activity) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query := `
		INSERT INTO activities (id, user_id, day, applications_sent, networking_contacts, skill_practice_hours, research_companies)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7)
		ON CONFLICT (user_id, day)
		DO UPDATE SET
			applications_sent = EXCLUDED.applications_sent,
			networking_contacts = EXCLUDED.networking_contacts,
			skill_practice_hours = EXCLUDED.skill_practice_hours,
			research_companies = EXCLUDED.research_companies`

	_, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, dateArg(a.Day),
		a.ApplicationsSent, a.NetworkingContacts, a.SkillPracticeHours, a.ResearchCompanies)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM activities WHERE user_id = $1`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
