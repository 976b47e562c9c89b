package httpapi

import (
	"strconv"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type securityAnswers struct {
	PetName       string `json:"pet_name"`
	BirthCity     string `json:"birth_city"`
	FavoriteMovie string `json:"favorite_movie"`
}

func (a securityAnswers) model() models.SecurityAnswers {
	return models.SecurityAnswers{PetName: a.PetName, BirthCity: a.BirthCity, FavoriteMovie: a.FavoriteMovie}
}

type registerRequest struct {
	Username          string          `json:"username"`
	Password          string          `json:"password"`
	SecurityQuestions securityAnswers `json:"security_questions"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type verifyUserRequest struct {
	Username string `json:"username"`
}

type resetPasswordRequest struct {
	Username        string          `json:"username"`
	SecurityAnswers securityAnswers `json:"security_answers"`
	NewPassword     string          `json:"new_password"`
}

// activityRequest fields are optional; absent means zero.
type activityRequest struct {
	ApplicationsSent   *int     `json:"applications_sent"`
	NetworkingContacts *int     `json:"networking_contacts"`
	SkillPracticeHours *float64 `json:"skill_practice_hours"`
	ResearchCompanies  *int     `json:"research_companies"`
}

func valueOr[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func (r activityRequest) delta() models.ActivityDelta {
	return models.ActivityDelta{
		ApplicationsSent:   valueOr(r.ApplicationsSent),
		NetworkingContacts: valueOr(r.NetworkingContacts),
		SkillPracticeHours: valueOr(r.SkillPracticeHours),
		ResearchCompanies:  valueOr(r.ResearchCompanies),
	}
}

type activityResponse struct {
	ID                 string  `json:"id"`
	Date               string  `json:"date"`
	ApplicationsSent   int     `json:"applications_sent"`
	NetworkingContacts int     `json:"networking_contacts"`
	SkillPracticeHours float64 `json:"skill_practice_hours"`
	ResearchCompanies  int     `json:"research_companies"`
}

func newActivityResponse(a *models.Activity) activityResponse {
	return activityResponse{
		ID:                 a.ID,
		Date:               a.Day.Format(common.DateLayout),
		ApplicationsSent:   a.ApplicationsSent,
		NetworkingContacts: a.NetworkingContacts,
		SkillPracticeHours: a.SkillPracticeHours,
		ResearchCompanies:  a.ResearchCompanies,
	}
}

// importRequest accepts an export document; anything but its activities is
// ignored.
type importRequest struct {
	Activities []importActivity `json:"activities"`
}

type importActivity struct {
	Date               string  `json:"date"`
	ApplicationsSent   int     `json:"applications_sent"`
	NetworkingContacts int     `json:"networking_contacts"`
	SkillPracticeHours float64 `json:"skill_practice_hours"`
	ResearchCompanies  int     `json:"research_companies"`
}

func (r importRequest) records() ([]*models.Activity, error) {
	out := make([]*models.Activity, 0, len(r.Activities))
	for _, a := range r.Activities {
		d, err := time.ParseInLocation(common.DateLayout, a.Date, time.Local)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid date "+strconv.Quote(a.Date))
		}
		out = append(out, &models.Activity{
			Day:                d,
			ApplicationsSent:   a.ApplicationsSent,
			NetworkingContacts: a.NetworkingContacts,
			SkillPracticeHours: a.SkillPracticeHours,
			ResearchCompanies:  a.ResearchCompanies,
		})
	}
	return out, nil
}

type goalRequest struct {
	Type               string   `json:"type"`
	ApplicationsTarget *int     `json:"applications_target"`
	NetworkingTarget   *int     `json:"networking_target"`
	SkillHoursTarget   *float64 `json:"skill_hours_target"`
	ResearchTarget     *int     `json:"research_target"`
}

func (r goalRequest) targets() models.GoalTargets {
	return models.GoalTargets{
		Applications: valueOr(r.ApplicationsTarget),
		Networking:   valueOr(r.NetworkingTarget),
		SkillHours:   valueOr(r.SkillHoursTarget),
		Research:     valueOr(r.ResearchTarget),
	}
}

type goalResponse struct {
	ID                 string  `json:"id"`
	Type               string  `json:"type"`
	ApplicationsTarget int     `json:"applications_target"`
	NetworkingTarget   int     `json:"networking_target"`
	SkillHoursTarget   float64 `json:"skill_hours_target"`
	ResearchTarget     int     `json:"research_target"`
}

func newGoalResponse(g *models.Goal) goalResponse {
	return goalResponse{
		ID:                 g.ID,
		Type:               string(g.Cadence),
		ApplicationsTarget: g.Targets.Applications,
		NetworkingTarget:   g.Targets.Networking,
		SkillHoursTarget:   g.Targets.SkillHours,
		ResearchTarget:     g.Targets.Research,
	}
}

type statsResponse struct {
	TodayActivities int   `json:"today_activities"`
	WeekActivities  int   `json:"week_activities"`
	CurrentStreak   int   `json:"current_streak"`
	TotalDaysLogged int64 `json:"total_days_logged"`
}

type counterResponse struct {
	Done   float64 `json:"done"`
	Target float64 `json:"target"`
}

type progressResponse struct {
	Goal         goalResponse    `json:"goal"`
	Applications counterResponse `json:"applications"`
	Networking   counterResponse `json:"networking"`
	SkillHours   counterResponse `json:"skill_hours"`
	Research     counterResponse `json:"research"`
	Met          bool            `json:"met"`
}

func newProgressResponse(p *models.GoalProgress) progressResponse {
	c := func(cp models.CounterProgress) counterResponse {
		return counterResponse{Done: cp.Done, Target: cp.Target}
	}
	return progressResponse{
		Goal:         newGoalResponse(p.Goal),
		Applications: c(p.Applications),
		Networking:   c(p.Networking),
		SkillHours:   c(p.SkillHours),
		Research:     c(p.Research),
		Met:          p.Met(),
	}
}

type exportResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
