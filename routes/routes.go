package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	controller "bugboard/controllers"
	"bugboard/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	requestLogger := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	// Public auth endpoints, rate limited per client IP
	users := app.Group("/api/users", requestLogger, middleware.AuthRateLimiter())
	users.Post("/register", controller.Register)
	users.Post("/login", controller.Login)

	teams := app.Group("/api/teams", requestLogger)
	// The register page needs the team list before a token exists
	teams.Get("/no-secrets", controller.ListTeamsPublic)
	teams.Get("/", middleware.Protected(), controller.ListTeams)
	teams.Post("/join", middleware.Protected(), controller.JoinTeam)
	teams.Get("/:id", middleware.Protected(), controller.GetTeam)

	bugController := controller.NewBugController(db, logrus.StandardLogger())
	bugs := app.Group("/api/bugs", requestLogger, middleware.Protected())
	bugs.Post("/", bugController.CreateBug)
	bugs.Get("/team/:teamId", bugController.ListTeamBugs)
	bugs.Get("/:bugId", bugController.GetBug)
	bugs.Patch("/:bugId/assign", bugController.AssignBug)
	bugs.Patch("/:bugId/status", bugController.UpdateBugStatus)
}
