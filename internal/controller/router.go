package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/goliatone/jobboard/internal/auth"
	"github.com/goliatone/jobboard/internal/model"
	"github.com/goliatone/jobboard/internal/repository"
	"github.com/goliatone/jobboard/internal/upload"
)

// Deps carries everything the HTTP surface needs. The router owns no
// business logic; it wires guards and controllers onto paths.
type Deps struct {
	Repos   repository.Manager
	Auther  *auth.Auther
	Tokens  auth.TokenService
	Resumes *upload.Store
	Logger  Logger
}

// RegisterRoutes mounts the full API onto the app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = defLogger{}
	}

	authController := NewAuthController(deps.Auther).WithLogger(logger)
	jobsController := NewJobsController(deps.Repos.Jobs()).WithLogger(logger)
	appsController := NewApplicationsController(
		deps.Repos.Applications(),
		deps.Repos.Jobs(),
	).WithLogger(logger)
	profilesController := NewProfilesController(
		deps.Repos.JobseekerProfiles(),
		deps.Repos.EmployerProfiles(),
		deps.Resumes,
	).WithLogger(logger)
	dashboardController := NewDashboardController(deps.Repos).WithLogger(logger)

	protected := auth.Protected(auth.MiddlewareConfig{
		Tokens: deps.Tokens,
		Users:  deps.Repos.Users(),
		Logger: logger,
	})
	jobseekerOnly := auth.RequireRoles(model.RoleJobseeker)
	employerOnly := auth.RequireRoles(model.RoleEmployer)

	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "jobboard",
		})
	})

	app.Static("/uploads", deps.Resumes.Dir())

	api := app.Group("/api")

	authAPI := api.Group("/auth")
	authAPI.Post("/jobseeker/signup", authController.Signup(model.RoleJobseeker))
	authAPI.Post("/jobseeker/login", authController.Login(model.RoleJobseeker))
	authAPI.Post("/employer/signup", authController.Signup(model.RoleEmployer))
	authAPI.Post("/employer/login", authController.Login(model.RoleEmployer))
	authAPI.Get("/me", protected, authController.Me)

	jobs := api.Group("/jobs")
	jobs.Get("/", jobsController.List)
	// register before the :id wildcard so "search" never matches as an ID
	jobs.Get("/search", jobsController.Search)
	jobs.Get("/:id", jobsController.Get)
	jobs.Post("/", protected, employerOnly, jobsController.Create)
	jobs.Put("/:id", protected, employerOnly, jobsController.Update)
	jobs.Delete("/:id", protected, employerOnly, jobsController.Delete)

	applications := api.Group("/applications", protected)
	applications.Post("/apply/:jobId", jobseekerOnly, appsController.Apply)
	applications.Get("/my-applications", jobseekerOnly, appsController.MyApplications)
	applications.Get("/applicants/:jobId", employerOnly, appsController.Applicants)
	applications.Patch("/:applicationId/status", employerOnly, appsController.UpdateStatus)

	jobseekerProfile := api.Group("/jobseeker/profile", protected)
	jobseekerProfile.Post("/", jobseekerOnly, profilesController.SaveJobseeker)
	jobseekerProfile.Get("/me", jobseekerOnly, profilesController.MyJobseekerProfile)
	jobseekerProfile.Get("/applicant/:userId", employerOnly, profilesController.ApplicantProfile)

	employerProfile := api.Group("/employer/profile", protected, employerOnly)
	employerProfile.Post("/", profilesController.SaveEmployer)
	employerProfile.Get("/me", profilesController.MyEmployerProfile)

	dashboard := api.Group("/dashboard", protected)
	dashboard.Get("/jobseeker", jobseekerOnly, dashboardController.Jobseeker)
	dashboard.Get("/employer", employerOnly, dashboardController.Employer)
}
