package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
	"github.com/dmitrijs2005/jobtrack/internal/common"
)

func (a *App) readAnswers() (models.SecurityAnswers, error) {
	var ans models.SecurityAnswers
	var err error
	if ans.PetName, err = GetRequiredText(a.in, "What was the name of your first pet?", a.out); err != nil {
		return ans, err
	}
	if ans.BirthCity, err = GetRequiredText(a.in, "In what city were you born?", a.out); err != nil {
		return ans, err
	}
	if ans.FavoriteMovie, err = GetRequiredText(a.in, "What is your favorite movie?", a.out); err != nil {
		return ans, err
	}
	return ans, nil
}

// readNewPassword asks twice and returns the password once both entries match.
func (a *App) readNewPassword() ([]byte, error) {
	pw, err := GetPassword("Password", a.out)
	if err != nil {
		return nil, err
	}
	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(confirm)
	if string(pw) != string(confirm) {
		common.WipeByteArray(pw)
		return nil, errors.New("passwords do not match")
	}
	return pw, nil
}

func (a *App) Register(ctx context.Context, _ []string) error {
	userName, err := GetRequiredText(a.in, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := a.readNewPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fmt.Fprintln(a.out, "Security questions (used to reset a forgotten password):")
	answers, err := a.readAnswers()
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, userName, password, answers); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "User created successfully, you can now log in")
	return nil
}

func (a *App) Login(ctx context.Context, _ []string) error {
	userName, err := GetRequiredText(a.in, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, userName, password); err != nil {
		return err
	}
	a.loggedIn = true
	a.userName = userName
	fmt.Fprintf(a.out, "Logged in as %s\n", userName)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.loggedIn = false
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) ResetPassword(ctx context.Context, _ []string) error {
	userName, err := GetRequiredText(a.in, "Username", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.VerifyUser(ctx, userName); err != nil {
		return err
	}
	answers, err := a.readAnswers()
	if err != nil {
		return err
	}
	password, err := a.readNewPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.ResetPassword(ctx, userName, answers, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password reset successfully")
	return nil
}

func (a *App) Health(ctx context.Context, _ []string) error {
	if err := a.api.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is healthy")
	return nil
}
