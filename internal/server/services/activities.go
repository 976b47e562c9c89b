package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/dbx"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtrack/internal/timex"
)

// DefaultHistoryDays is the look-back used when a caller does not ask for a
// specific number of days.
const DefaultHistoryDays = 30

// MaxHistoryDays bounds the look-back to about a hundred years.
const MaxHistoryDays = 36500

type ActivityService struct {
	repomanager repomanager.RepositoryManager
	clock       timex.Clock
}

// NewActivityService returns a service reading "today" from clock, or from
// time.Now when clock is nil.
func NewActivityService(m repomanager.RepositoryManager, clock timex.Clock) *ActivityService {
	if clock == nil {
		clock = time.Now
	}
	return &ActivityService{repomanager: m, clock: clock}
}

func validateDelta(d models.ActivityDelta) error {
	switch {
	case d.ApplicationsSent < 0:
		return validationError("applications_sent must not be negative")
	case d.NetworkingContacts < 0:
		return validationError("networking_contacts must not be negative")
	case d.ResearchCompanies < 0:
		return validationError("research_companies must not be negative")
	case d.SkillPracticeHours < 0 || math.IsNaN(d.SkillPracticeHours) || math.IsInf(d.SkillPracticeHours, 0):
		return validationError("skill_practice_hours must be a non-negative number")
	}
	return nil
}

// Submit adds delta to the user's record for today, creating the record on
// the first submission of the day, and returns the accumulated record.
func (s *ActivityService) Submit(ctx context.Context, userID string, delta models.ActivityDelta) (*models.Activity, error) {
	if err := validateDelta(delta); err != nil {
		return nil, err
	}

	today := timex.Today(s.clock)
	repo := s.repomanager.Activities(s.repomanager.Conn())

	a, err := repo.Accumulate(ctx, userID, today, delta)
	if err != nil {
		return nil, fmt.Errorf("error accumulating activity: %w", err)
	}
	return a, nil
}

// ListSince returns the records from today-days through today, newest first.
func (s *ActivityService) ListSince(ctx context.Context, userID string, days int) ([]*models.Activity, error) {
	if days < 0 || days > MaxHistoryDays {
		return nil, validationError(fmt.Sprintf("days must be between 0 and %d", MaxHistoryDays))
	}

	since := timex.AddDays(timex.Today(s.clock), -days)
	repo := s.repomanager.Activities(s.repomanager.Conn())

	list, err := repo.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("error listing activities: %w", err)
	}
	return list, nil
}

// Import writes previously exported day records for userID as absolute
// values, replacing whatever is stored for those days. Either every record
// is written or none is. Future days and repeated days are rejected.
func (s *ActivityService) Import(ctx context.Context, userID string, records []*models.Activity) (int, error) {
	today := timex.Today(s.clock)
	seen := make(map[string]struct{}, len(records))

	for _, r := range records {
		d := r.Day.Format(common.DateLayout)
		if timex.Day(r.Day).After(today) {
			return 0, validationError("cannot import future date " + d)
		}
		if _, dup := seen[d]; dup {
			return 0, validationError("duplicate date " + d)
		}
		seen[d] = struct{}{}

		err := validateDelta(models.ActivityDelta{
			ApplicationsSent:   r.ApplicationsSent,
			NetworkingContacts: r.NetworkingContacts,
			SkillPracticeHours: r.SkillPracticeHours,
			ResearchCompanies:  r.ResearchCompanies,
		})
		if err != nil {
			return 0, err
		}
	}

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Activities(tx)
		for _, r := range records {
			a := *r
			a.UserID = userID
			a.Day = timex.Day(r.Day)
			if err := repo.Upsert(ctx, &a); err != nil {
				return fmt.Errorf("error importing %s: %w", a.Day.Format(common.DateLayout), err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
