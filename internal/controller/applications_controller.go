package controller

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/jobboard/internal/application"
	"github.com/goliatone/jobboard/internal/auth"
	"github.com/goliatone/jobboard/internal/model"
	"github.com/goliatone/jobboard/internal/repository"
)

// ApplicationsController handles the apply flow and the employer-side
// review of applicants. Status changes flow through the state machine so
// transition rules live in one place.
type ApplicationsController struct {
	Applications repository.Applications
	Jobs         repository.Jobs
	Machine      application.StateMachine
	Logger       Logger
}

func NewApplicationsController(apps repository.Applications, jobs repository.Jobs) *ApplicationsController {
	return &ApplicationsController{
		Applications: apps,
		Jobs:         jobs,
		Machine:      application.NewStateMachine(apps),
		Logger:       defLogger{},
	}
}

func (a *ApplicationsController) WithLogger(logger Logger) *ApplicationsController {
	a.Logger = logger
	return a
}

type StatusPayload struct {
	Status string `json:"status" form:"status"`
}

// Apply submits the authenticated jobseeker for a job. The unique index
// on (job, applicant) makes a second submission a 400.
func (a *ApplicationsController) Apply(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return respondError(c, ErrJobNotFound)
	}

	job, err := a.Jobs.ByID(c.UserContext(), jobID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return respondError(c, ErrJobNotFound)
		}
		return respondError(c, err)
	}

	app, err := a.Applications.Submit(c.UserContext(), &model.JobApplication{
		JobID:       job.ID,
		ApplicantID: user.ID,
	})
	if err != nil {
		var rich *goerrors.Error
		if goerrors.As(err, &rich) && rich.Category == goerrors.CategoryConflict {
			return respondError(c, ErrAlreadyApplied)
		}
		a.Logger.Error("apply failed for job %s: %v", jobID, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Job applied successfully",
		"application": app,
	})
}

// MyApplications lists the jobseeker's applications with each job attached.
func (a *ApplicationsController) MyApplications(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	apps, err := a.Applications.ListByApplicant(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"applications": apps,
	})
}

// Applicants lists the applications received by one of the employer's own
// jobs, applicant attached.
func (a *ApplicationsController) Applicants(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	jobID, err := uuid.Parse(c.Params("jobId"))
	if err != nil {
		return respondError(c, ErrJobNotFound)
	}

	job, err := a.Jobs.ByID(c.UserContext(), jobID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return respondError(c, ErrJobNotFound)
		}
		return respondError(c, err)
	}

	if job.EmployerID != user.ID {
		return respondError(c, ErrNotAuthorized)
	}

	apps, err := a.Applications.ListByJob(c.UserContext(), job.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"applications": apps,
	})
}

// UpdateStatus moves an application to a new status on behalf of the
// employer that owns the job.
func (a *ApplicationsController) UpdateStatus(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	appID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return respondError(c, ErrApplicationNotFound)
	}

	payload := new(StatusPayload)
	if err := c.BodyParser(payload); err != nil {
		return respondError(c, badRequestBody(err))
	}

	status, ok := model.ParseStatus(payload.Status)
	if !ok {
		return respondError(c, ErrInvalidStatus)
	}

	app, err := a.Applications.ByID(c.UserContext(), appID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return respondError(c, ErrApplicationNotFound)
		}
		return respondError(c, err)
	}

	if app.Job == nil {
		return respondError(c, ErrJobNotFound)
	}

	if app.Job.EmployerID != user.ID {
		return respondError(c, ErrNotAuthorized)
	}

	app, err = a.Machine.Transition(
		c.UserContext(),
		application.ActorRef{ID: user.ID.String(), Type: string(user.Role)},
		app,
		status,
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Status updated successfully",
		"application": app,
	})
}
