package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/jobboard/internal/auth"
	"github.com/goliatone/jobboard/internal/repository"
)

// DashboardController aggregates the landing-page counts for each role.
type DashboardController struct {
	Repos  repository.Manager
	Logger Logger
}

func NewDashboardController(repos repository.Manager) *DashboardController {
	return &DashboardController{
		Repos:  repos,
		Logger: defLogger{},
	}
}

func (d *DashboardController) WithLogger(logger Logger) *DashboardController {
	d.Logger = logger
	return d
}

// Jobseeker returns the caller's profile plus their application history.
// A missing profile is not an error here; the client prompts for one.
func (d *DashboardController) Jobseeker(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	profile, err := d.Repos.JobseekerProfiles().ByUserID(c.UserContext(), user.ID)
	if err != nil && !repository.IsRecordNotFound(err) {
		return respondError(c, err)
	}

	apps, err := d.Repos.Applications().ListByApplicant(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":           profile,
		"totalApplications": len(apps),
		"applications":      apps,
	})
}

// Employer returns the company profile, posted jobs, and how many
// applications those jobs have drawn.
func (d *DashboardController) Employer(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	profile, err := d.Repos.EmployerProfiles().ByUserID(c.UserContext(), user.ID)
	if err != nil && !repository.IsRecordNotFound(err) {
		return respondError(c, err)
	}

	jobs, err := d.Repos.Jobs().ListByEmployer(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	totalApplications := 0
	for _, job := range jobs {
		count, err := d.Repos.Applications().CountByJob(c.UserContext(), job.ID)
		if err != nil {
			return respondError(c, err)
		}
		totalApplications += count
	}

	return c.JSON(fiber.Map{
		"profile":           profile,
		"totalJobs":         len(jobs),
		"totalApplications": totalApplications,
		"jobs":              jobs,
	})
}
