package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/dbx"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type GoalService struct {
	repomanager repomanager.RepositoryManager
}

func NewGoalService(m repomanager.RepositoryManager) *GoalService {
	return &GoalService{repomanager: m}
}

func validateTargets(t models.GoalTargets) error {
	if t.Applications < 0 || t.Networking < 0 || t.Research < 0 ||
		t.SkillHours < 0 || math.IsNaN(t.SkillHours) || math.IsInf(t.SkillHours, 0) {
		return validationError("targets must be non-negative numbers")
	}
	return nil
}

// SetGoal makes targets the active goal of (userID, cadence). The previous
// active goal of that cadence is deactivated in the same transaction and
// kept as history.
func (s *GoalService) SetGoal(ctx context.Context, userID string, cadence models.Cadence, targets models.GoalTargets) (*models.Goal, error) {
	if !cadence.Valid() {
		return nil, validationError(fmt.Sprintf("unknown goal type %q", cadence))
	}
	if err := validateTargets(targets); err != nil {
		return nil, err
	}

	var goal *models.Goal

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Goals(tx)

		if _, err := repo.DeactivateActive(ctx, userID, cadence); err != nil {
			return fmt.Errorf("error deactivating goals: %w", err)
		}

		g, err := repo.Create(ctx, &models.Goal{
			ID:        uuid.NewString(),
			UserID:    userID,
			Cadence:   cadence,
			Targets:   targets,
			Active:    true,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return fmt.Errorf("error creating goal: %w", err)
		}

		goal = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// ActiveGoals returns at most one goal per cadence.
func (s *GoalService) ActiveGoals(ctx context.Context, userID string) ([]*models.Goal, error) {
	repo := s.repomanager.Goals(s.repomanager.Conn())
	list, err := repo.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing goals: %w", err)
	}
	return list, nil
}
