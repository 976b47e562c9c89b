package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivity_AddAccumulates(t *testing.T) {
	a := &Activity{ApplicationsSent: 3, SkillPracticeHours: 0.5}
	a.Add(ActivityDelta{ApplicationsSent: 2, NetworkingContacts: 1, SkillPracticeHours: 1.25})

	assert.Equal(t, 5, a.ApplicationsSent)
	assert.Equal(t, 1, a.NetworkingContacts)
	assert.InDelta(t, 1.75, a.SkillPracticeHours, 1e-9)
	assert.Equal(t, 0, a.ResearchCompanies)
}

func TestActivity_TotalExcludesHours(t *testing.T) {
	a := &Activity{ApplicationsSent: 3, NetworkingContacts: 2, ResearchCompanies: 4, SkillPracticeHours: 1.5}
	assert.Equal(t, 9, a.Total())
}

func TestActivity_Qualifies(t *testing.T) {
	assert.False(t, (&Activity{}).Qualifies())
	assert.False(t, (&Activity{SkillPracticeHours: 3}).Qualifies(), "hours alone do not qualify")
	assert.True(t, (&Activity{ResearchCompanies: 1}).Qualifies())
}

func TestCadence_Valid(t *testing.T) {
	assert.True(t, CadenceDaily.Valid())
	assert.True(t, CadenceWeekly.Valid())
	assert.False(t, Cadence("monthly").Valid())
	assert.False(t, Cadence("").Valid())
}

func TestSecurityAnswers_Normalize(t *testing.T) {
	got := SecurityAnswers{PetName: "  Fluffy ", BirthCity: "LONDON", FavoriteMovie: "The Matrix"}.Normalize()
	assert.Equal(t, SecurityAnswers{PetName: "fluffy", BirthCity: "london", FavoriteMovie: "the matrix"}, got)
}

func TestGoalProgress_Met(t *testing.T) {
	p := &GoalProgress{
		Applications: CounterProgress{Done: 5, Target: 5},
		SkillHours:   CounterProgress{Done: 2.5, Target: 2},
	}
	assert.True(t, p.Met())

	p.Research = CounterProgress{Done: 0, Target: 1}
	assert.False(t, p.Met())
}
