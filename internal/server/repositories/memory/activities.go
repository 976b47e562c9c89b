package memory

import (
	"context"
	"sort"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/google/uuid"
)

type ActivitiesRepository struct {
	s *Store
}

func NewActivitiesRepository(s *Store) *ActivitiesRepository {
	return &ActivitiesRepository{s: s}
}

func dayKey(day time.Time) string {
	return day.Format(common.DateLayout)
}

func (r *ActivitiesRepository) FindByUserAndDate(ctx context.Context, userID string, day time.Time) (*models.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.activities[activityKey{userID, dayKey(day)}]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *a
	return &c, nil
}

func (r *ActivitiesRepository) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*models.Activity, error) {
	return r.filter(userID, func(key string) bool { return key >= dayKey(since) }), nil
}

func (r *ActivitiesRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*models.Activity, error) {
	return r.filter(userID, func(key string) bool { return key >= dayKey(from) && key <= dayKey(to) }), nil
}

// filter relies on ISO dates sorting lexically in calendar order.
func (r *ActivitiesRepository) filter(userID string, keep func(day string) bool) []*models.Activity {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*models.Activity, 0)
	for k, a := range r.s.activities {
		if k.userID == userID && keep(k.day) {
			c := *a
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return dayKey(result[i].Day) > dayKey(result[j].Day)
	})
	return result
}

func (r *ActivitiesRepository) Accumulate(ctx context.Context, userID string, day time.Time, delta models.ActivityDelta) (*models.Activity, error) {
	defer r.s.lockWrite(ctx)()

	key := activityKey{userID, dayKey(day)}
	a, ok := r.s.activities[key]
	if !ok {
		a = &models.Activity{
			ID:        uuid.NewString(),
			UserID:    userID,
			Day:       day,
			CreatedAt: time.Now(),
		}
		r.s.activities[key] = a
	}
	a.Add(delta)

	c := *a
	return &c, nil
}

func (r *ActivitiesRepository) Upsert(ctx context.Context, a *models.Activity) error {
	defer r.s.lockWrite(ctx)()

	key := activityKey{a.UserID, dayKey(a.Day)}
	if existing, ok := r.s.activities[key]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.CreatedAt = time.Now()
	}

	c := *a
	r.s.activities[key] = &c
	return nil
}

func (r *ActivitiesRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for k := range r.s.activities {
		if k.userID == userID {
			n++
		}
	}
	return n, nil
}
