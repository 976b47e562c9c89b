package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
)

type GoalsRepository struct {
	s *Store
}

func NewGoalsRepository(s *Store) *GoalsRepository {
	return &GoalsRepository{s: s}
}

func (r *GoalsRepository) DeactivateActive(ctx context.Context, userID string, cadence models.Cadence) (int64, error) {
	defer r.s.lockWrite(ctx)()

	var n int64
	for _, g := range r.s.goals {
		if g.UserID == userID && g.Cadence == cadence && g.Active {
			g.Active = false
			n++
		}
	}
	return n, nil
}

func (r *GoalsRepository) Create(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	defer r.s.lockWrite(ctx)()

	if goal.Active {
		for _, g := range r.s.goals {
			if g.UserID == goal.UserID && g.Cadence == goal.Cadence && g.Active {
				return nil, common.ErrorConflict
			}
		}
	}

	goal.CreatedAt = time.Now()
	c := *goal
	r.s.goals = append(r.s.goals, &c)
	return goal, nil
}

func (r *GoalsRepository) ListActive(ctx context.Context, userID string) ([]*models.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Goal, 0, 2)
	for _, g := range r.s.goals {
		if g.UserID == userID && g.Active {
			c := *g
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Cadence < result[j].Cadence })
	return result, nil
}

func (r *GoalsRepository) ListHistory(ctx context.Context, userID string, cadence models.Cadence) ([]*models.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Goal, 0)
	// goals are appended in creation order
	for i := len(r.s.goals) - 1; i >= 0; i-- {
		g := r.s.goals[i]
		if g.UserID == userID && g.Cadence == cadence {
			c := *g
			result = append(result, &c)
		}
	}
	return result, nil
}
