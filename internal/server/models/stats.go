package models

// Stats are the dashboard figures derived from a user's activity history.
type Stats struct {
	TodayActivities int
	WeekActivities  int
	CurrentStreak   int
	TotalDaysLogged int64
}

// CounterProgress is how far one counter is towards its target.
type CounterProgress struct {
	Done   float64
	Target float64
}

// GoalProgress relates an active goal to the activity of its period: today
// for daily goals, Monday through today for weekly goals.
type GoalProgress struct {
	Goal         *Goal
	Applications CounterProgress
	Networking   CounterProgress
	SkillHours   CounterProgress
	Research     CounterProgress
}

// Met reports whether every counter has reached its target.
func (p *GoalProgress) Met() bool {
	for _, c := range []CounterProgress{p.Applications, p.Networking, p.SkillHours, p.Research} {
		if c.Done < c.Target {
			return false
		}
	}
	return true
}
