package models

import "time"

// Activity is the accumulated job-hunt activity of one user on one calendar
// day. There is at most one Activity per (UserID, Day).
type Activity struct {
	ID                 string
	UserID             string
	Day                time.Time
	ApplicationsSent   int
	NetworkingContacts int
	SkillPracticeHours float64
	ResearchCompanies  int
	CreatedAt          time.Time
}

// ActivityDelta is one submission. Every field is added to the day's totals.
type ActivityDelta struct {
	ApplicationsSent   int
	NetworkingContacts int
	SkillPracticeHours float64
	ResearchCompanies  int
}

// Add accumulates d into a in place.
func (a *Activity) Add(d ActivityDelta) {
	a.ApplicationsSent += d.ApplicationsSent
	a.NetworkingContacts += d.NetworkingContacts
	a.SkillPracticeHours += d.SkillPracticeHours
	a.ResearchCompanies += d.ResearchCompanies
}

// Total is the count of discrete actions taken that day. Practice hours are
// not counted.
func (a *Activity) Total() int {
	return a.ApplicationsSent + a.NetworkingContacts + a.ResearchCompanies
}

// Qualifies reports whether the day counts towards a streak: at least one
// discrete counter is positive.
func (a *Activity) Qualifies() bool {
	return a.ApplicationsSent > 0 || a.NetworkingContacts > 0 || a.ResearchCompanies > 0
}
