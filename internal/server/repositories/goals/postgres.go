package goals

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/dbx"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const goalColumns = `id, user_id, type, applications_target, networking_target, skill_hours_target, research_target, active, created_at`

func (r *PostgresRepository) DeactivateActive(ctx context.Context, userID string, cadence models.Cadence) (int64, error) {
	query := `
		UPDATE goals SET active = FALSE
		WHERE user_id = $1 AND type = $2 AND active
	`
	res, err := r.db.ExecContext(ctx, query, userID, string(cadence))
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	query := `
		INSERT INTO goals (id, user_id, type, applications_target, networking_target, skill_hours_target, research_target, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	t := goal.Targets
	err := r.db.QueryRowContext(ctx, query, goal.ID, goal.UserID, string(goal.Cadence),
		t.Applications, t.Networking, t.SkillHours, t.Research, goal.Active).Scan(&goal.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return goal, nil
}

func (r *PostgresRepository) ListActive(ctx context.Context, userID string) ([]*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals
		WHERE user_id = $1 AND active
		ORDER BY type`
	return r.list(ctx, query, userID)
}

func (r *PostgresRepository) ListHistory(ctx context.Context, userID string, cadence models.Cadence) ([]*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals
		WHERE user_id = $1 AND type = $2
		ORDER BY created_at DESC`
	return r.list(ctx, query, userID, string(cadence))
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Goal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select goals: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Goal, 0)
	for rows.Next() {
		var (
			g       models.Goal
			cadence string
		)
		if err := rows.Scan(&g.ID, &g.UserID, &cadence,
			&g.Targets.Applications, &g.Targets.Networking, &g.Targets.SkillHours, &g.Targets.Research,
			&g.Active, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Cadence = models.Cadence(cadence)
		result = append(result, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
