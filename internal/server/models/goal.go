package models

import "time"

// Cadence is how often a goal recurs.
type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
)

// Valid reports whether c is one of the known cadences.
func (c Cadence) Valid() bool {
	return c == CadenceDaily || c == CadenceWeekly
}

// Goal is a set of per-counter targets for one cadence. Setting a new goal
// deactivates the previous active goal of the same cadence; old goals are
// kept as history.
type Goal struct {
	ID        string
	UserID    string
	Cadence   Cadence
	Targets   GoalTargets
	Active    bool
	CreatedAt time.Time
}

type GoalTargets struct {
	Applications int
	Networking   int
	SkillHours   float64
	Research     int
}
