package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobtrack/internal/timex"
	"github.com/stretchr/testify/require"
)

// fixedClock is a settable clock for tests.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Clock() timex.Clock { return c.Now }

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 14, 30, 0, 0, time.Local)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func newManager() repomanager.RepositoryManager {
	return repomanager.NewInMemoryRepositoryManager()
}

// seed writes an absolute record for userID on d.
func seed(t *testing.T, m repomanager.RepositoryManager, userID string, d time.Time, apps, net, research int, hours float64) {
	t.Helper()
	err := m.Activities(m.Conn()).Upsert(context.Background(), &models.Activity{
		UserID:             userID,
		Day:                d,
		ApplicationsSent:   apps,
		NetworkingContacts: net,
		ResearchCompanies:  research,
		SkillPracticeHours: hours,
	})
	require.NoError(t, err)
}
