// Package models defines the client-side view of JobTrack API resources.
// Field tags follow the server's snake_case wire format.
package models

import "time"

type SecurityAnswers struct {
	PetName       string `json:"pet_name"`
	BirthCity     string `json:"birth_city"`
	FavoriteMovie string `json:"favorite_movie"`
}

// ActivityInput is one submission; nil fields are omitted and count as zero.
type ActivityInput struct {
	ApplicationsSent   *int     `json:"applications_sent,omitempty"`
	NetworkingContacts *int     `json:"networking_contacts,omitempty"`
	SkillPracticeHours *float64 `json:"skill_practice_hours,omitempty"`
	ResearchCompanies  *int     `json:"research_companies,omitempty"`
}

type Activity struct {
	ID                 string  `json:"id"`
	Date               string  `json:"date"`
	ApplicationsSent   int     `json:"applications_sent"`
	NetworkingContacts int     `json:"networking_contacts"`
	SkillPracticeHours float64 `json:"skill_practice_hours"`
	ResearchCompanies  int     `json:"research_companies"`
}

type Goal struct {
	ID                 string  `json:"id,omitempty"`
	Type               string  `json:"type"`
	ApplicationsTarget int     `json:"applications_target"`
	NetworkingTarget   int     `json:"networking_target"`
	SkillHoursTarget   float64 `json:"skill_hours_target"`
	ResearchTarget     int     `json:"research_target"`
}

type Stats struct {
	TodayActivities int   `json:"today_activities"`
	WeekActivities  int   `json:"week_activities"`
	CurrentStreak   int   `json:"current_streak"`
	TotalDaysLogged int64 `json:"total_days_logged"`
}

type Counter struct {
	Done   float64 `json:"done"`
	Target float64 `json:"target"`
}

type Progress struct {
	Goal         Goal    `json:"goal"`
	Applications Counter `json:"applications"`
	Networking   Counter `json:"networking"`
	SkillHours   Counter `json:"skill_hours"`
	Research     Counter `json:"research"`
	Met          bool    `json:"met"`
}

type Export struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
