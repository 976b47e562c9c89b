package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/activities"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtrack/internal/timex"
)

// streakWindowDays is how many days the streak walk loads per query.
const streakWindowDays = 31

type StatsService struct {
	repomanager repomanager.RepositoryManager
	clock       timex.Clock
}

func NewStatsService(m repomanager.RepositoryManager, clock timex.Clock) *StatsService {
	if clock == nil {
		clock = time.Now
	}
	return &StatsService{repomanager: m, clock: clock}
}

// Stats derives the dashboard figures for userID as of the clock's today.
func (s *StatsService) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	today := timex.Today(s.clock)
	repo := s.repomanager.Activities(s.repomanager.Conn())

	todayRec, err := findDay(ctx, repo, userID, today)
	if err != nil {
		return nil, err
	}

	week, err := repo.ListByUserBetween(ctx, userID, timex.WeekStart(today), today)
	if err != nil {
		return nil, fmt.Errorf("error loading week: %w", err)
	}

	streak, err := currentStreak(ctx, repo, userID, today)
	if err != nil {
		return nil, err
	}

	total, err := repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting days: %w", err)
	}

	stats := &models.Stats{
		CurrentStreak:   streak,
		TotalDaysLogged: total,
	}
	if todayRec != nil {
		stats.TodayActivities = todayRec.Total()
	}
	for _, a := range week {
		stats.WeekActivities += a.Total()
	}
	return stats, nil
}

// findDay returns nil without error when the user has no record for day.
func findDay(ctx context.Context, repo activities.Repository, userID string, day time.Time) (*models.Activity, error) {
	a, err := repo.FindByUserAndDate(ctx, userID, day)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading day: %w", err)
	}
	return a, nil
}

// currentStreak counts consecutive qualifying days ending at today. History
// is read in windows of streakWindowDays, newest first, and the walk stops at
// the first day that is missing or has no discrete activity.
func currentStreak(ctx context.Context, repo activities.Repository, userID string, today time.Time) (int, error) {
	streak := 0
	to := today
	for {
		from := timex.AddDays(to, -(streakWindowDays - 1))

		list, err := repo.ListByUserBetween(ctx, userID, from, to)
		if err != nil {
			return 0, fmt.Errorf("error loading streak window: %w", err)
		}

		byDay := make(map[string]*models.Activity, len(list))
		for _, a := range list {
			byDay[a.Day.Format(common.DateLayout)] = a
		}

		for d := to; !d.Before(from); d = timex.AddDays(d, -1) {
			a, ok := byDay[d.Format(common.DateLayout)]
			if !ok || !a.Qualifies() {
				return streak, nil
			}
			streak++
		}

		to = timex.AddDays(from, -1)
	}
}

// Progress reports each active goal against today's record (daily goals)
// or the Monday-to-today totals (weekly goals).
func (s *StatsService) Progress(ctx context.Context, userID string) ([]*models.GoalProgress, error) {
	today := timex.Today(s.clock)
	conn := s.repomanager.Conn()

	goals, err := s.repomanager.Goals(conn).ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing goals: %w", err)
	}

	repo := s.repomanager.Activities(conn)
	result := make([]*models.GoalProgress, 0, len(goals))

	for _, g := range goals {
		from := today
		if g.Cadence == models.CadenceWeekly {
			from = timex.WeekStart(today)
		}

		list, err := repo.ListByUserBetween(ctx, userID, from, today)
		if err != nil {
			return nil, fmt.Errorf("error loading activity: %w", err)
		}

		var done models.Activity
		for _, a := range list {
			done.Add(models.ActivityDelta{
				ApplicationsSent:   a.ApplicationsSent,
				NetworkingContacts: a.NetworkingContacts,
				SkillPracticeHours: a.SkillPracticeHours,
				ResearchCompanies:  a.ResearchCompanies,
			})
		}

		result = append(result, &models.GoalProgress{
			Goal:         g,
			Applications: models.CounterProgress{Done: float64(done.ApplicationsSent), Target: float64(g.Targets.Applications)},
			Networking:   models.CounterProgress{Done: float64(done.NetworkingContacts), Target: float64(g.Targets.Networking)},
			SkillHours:   models.CounterProgress{Done: done.SkillPracticeHours, Target: g.Targets.SkillHours},
			Research:     models.CounterProgress{Done: float64(done.ResearchCompanies), Target: float64(g.Targets.Research)},
		})
	}

	return result, nil
}
