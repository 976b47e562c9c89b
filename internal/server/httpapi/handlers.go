package httpapi

import (
	"strconv"

	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

func message(msg string) fiber.Map {
	return fiber.Map{"message": msg}
}

func (s *Server) health(c *fiber.Ctx) error {
	if err := s.svc.Health.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "unhealthy"})
	}
	return c.JSON(fiber.Map{"status": "healthy"})
}

func (s *Server) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if _, err := s.svc.Users.Register(c.UserContext(), req.Username, req.Password, req.SecurityQuestions.model()); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(message("User created successfully"))
}

func (s *Server) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	token, err := s.svc.Users.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(loginResponse{Token: token, Username: req.Username})
}

func (s *Server) verifyUser(c *fiber.Ctx) error {
	var req verifyUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := s.svc.Users.VerifyUser(c.UserContext(), req.Username); err != nil {
		return err
	}

	return c.JSON(message("User found"))
}

func (s *Server) resetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	err := s.svc.Users.ResetPassword(c.UserContext(), req.Username, req.SecurityAnswers.model(), req.NewPassword)
	if err != nil {
		return err
	}

	return c.JSON(message("Password reset successfully"))
}

func (s *Server) getActivities(c *fiber.Ctx) error {
	days := services.DefaultHistoryDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "days must be an integer")
		}
		days = n
	}

	list, err := s.svc.Activities.ListSince(c.UserContext(), currentUserID(c), days)
	if err != nil {
		return err
	}

	out := make([]activityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, newActivityResponse(a))
	}
	return c.JSON(out)
}

func (s *Server) submitActivity(c *fiber.Ctx) error {
	var req activityRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	a, err := s.svc.Activities.Submit(c.UserContext(), currentUserID(c), req.delta())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newActivityResponse(a))
}

func (s *Server) getGoals(c *fiber.Ctx) error {
	list, err := s.svc.Goals.ActiveGoals(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}

	out := make([]goalResponse, 0, len(list))
	for _, g := range list {
		out = append(out, newGoalResponse(g))
	}
	return c.JSON(out)
}

func (s *Server) setGoal(c *fiber.Ctx) error {
	var req goalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	g, err := s.svc.Goals.SetGoal(c.UserContext(), currentUserID(c), models.Cadence(req.Type), req.targets())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newGoalResponse(g))
}

func (s *Server) getStats(c *fiber.Ctx) error {
	st, err := s.svc.Stats.Stats(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(statsResponse{
		TodayActivities: st.TodayActivities,
		WeekActivities:  st.WeekActivities,
		CurrentStreak:   st.CurrentStreak,
		TotalDaysLogged: st.TotalDaysLogged,
	})
}

func (s *Server) getProgress(c *fiber.Ctx) error {
	list, err := s.svc.Stats.Progress(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}

	out := make([]progressResponse, 0, len(list))
	for _, p := range list {
		out = append(out, newProgressResponse(p))
	}
	return c.JSON(out)
}

func (s *Server) export(c *fiber.Ctx) error {
	e, err := s.svc.Export.Export(c.UserContext(), currentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(exportResponse{Key: e.Key, URL: e.URL, ExpiresAt: e.ExpiresAt})
}

func (s *Server) importHistory(c *fiber.Ctx) error {
	var req importRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	records, err := req.records()
	if err != nil {
		return err
	}

	n, err := s.svc.Activities.Import(c.UserContext(), currentUserID(c), records)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"imported": n})
}
