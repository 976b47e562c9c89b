// Package httpapi exposes the JobTrack services as a JSON API over HTTP.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/logging"
	"github.com/dmitrijs2005/jobtrack/internal/server/models"
	"github.com/dmitrijs2005/jobtrack/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, username, password string, answers models.SecurityAnswers) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (string, error)
	VerifyUser(ctx context.Context, username string) error
	ResetPassword(ctx context.Context, username string, answers models.SecurityAnswers, newPassword string) error
}

type ActivityService interface {
	Submit(ctx context.Context, userID string, delta models.ActivityDelta) (*models.Activity, error)
	ListSince(ctx context.Context, userID string, days int) ([]*models.Activity, error)
	Import(ctx context.Context, userID string, records []*models.Activity) (int, error)
}

type GoalService interface {
	SetGoal(ctx context.Context, userID string, cadence models.Cadence, targets models.GoalTargets) (*models.Goal, error)
	ActiveGoals(ctx context.Context, userID string) ([]*models.Goal, error)
}

type StatsService interface {
	Stats(ctx context.Context, userID string) (*models.Stats, error)
	Progress(ctx context.Context, userID string) ([]*models.GoalProgress, error)
}

type ExportService interface {
	Export(ctx context.Context, userID string) (*services.Export, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the collaborators the handlers call.
type Services struct {
	Users      UserService
	Activities ActivityService
	Goals      GoalService
	Stats      StatsService
	Export     ExportService
	Health     Pinger
}

type Server struct {
	address string
	logger  logging.Logger
	app     *fiber.App
	svc     Services
}

func NewServer(address string, l logging.Logger, svc Services) *Server {
	s := &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		svc:     svc,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "jobtrack",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(fiberrecover.New())
	s.app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	s.app.Use(s.requestLogger)

	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")
	api.Post("/register", s.register)
	api.Post("/login", s.login)
	api.Post("/verify-user", s.verifyUser)
	api.Post("/reset-password", s.resetPassword)

	authRequired := s.authRequired
	api.Get("/activities", authRequired, s.getActivities)
	api.Post("/activities", authRequired, s.submitActivity)
	api.Get("/goals", authRequired, s.getGoals)
	api.Post("/goals", authRequired, s.setGoal)
	api.Get("/stats", authRequired, s.getStats)
	api.Get("/progress", authRequired, s.getProgress)
	api.Post("/export", authRequired, s.export)
	api.Post("/import", authRequired, s.importHistory)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}
