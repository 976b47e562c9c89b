// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"
)

// User is an account. Security answers are stored normalized (see
// NormalizeAnswer) and compared the same way on password reset.
type User struct {
	ID            string
	UserName      string
	PasswordHash  []byte
	PetName       string
	BirthCity     string
	FavoriteMovie string
	CreatedAt     time.Time
}

// SecurityAnswers are the three recovery answers given at registration.
type SecurityAnswers struct {
	PetName       string
	BirthCity     string
	FavoriteMovie string
}

// Normalize lowercases and trims every answer.
func (a SecurityAnswers) Normalize() SecurityAnswers {
	return SecurityAnswers{
		PetName:       NormalizeAnswer(a.PetName),
		BirthCity:     NormalizeAnswer(a.BirthCity),
		FavoriteMovie: NormalizeAnswer(a.FavoriteMovie),
	}
}

func NormalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Answers returns the stored answers of u.
func (u *User) Answers() SecurityAnswers {
	return SecurityAnswers{PetName: u.PetName, BirthCity: u.BirthCity, FavoriteMovie: u.FavoriteMovie}
}
