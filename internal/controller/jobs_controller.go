package controller

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/jobboard/internal/auth"
	"github.com/goliatone/jobboard/internal/model"
	"github.com/goliatone/jobboard/internal/repository"
)

// JobsController serves the public job catalog plus the employer-only
// write operations.
type JobsController struct {
	Jobs   repository.Jobs
	Logger Logger
}

func NewJobsController(jobs repository.Jobs) *JobsController {
	return &JobsController{
		Jobs:   jobs,
		Logger: defLogger{},
	}
}

func (j *JobsController) WithLogger(logger Logger) *JobsController {
	j.Logger = logger
	return j
}

type JobPayload struct {
	Title            string   `json:"title" form:"title"`
	Description      string   `json:"description" form:"description"`
	Qualifications   []string `json:"qualifications" form:"qualifications"`
	Responsibilities []string `json:"responsibilities" form:"responsibilities"`
	Location         string   `json:"location" form:"location"`
	SalaryMin        int      `json:"salary_min" form:"salary_min"`
	SalaryMax        int      `json:"salary_max" form:"salary_max"`
}

func (p JobPayload) Validate() *goerrors.Error {
	if err := goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Title, validation.Required),
			validation.Field(&p.Description, validation.Required),
			validation.Field(&p.Location, validation.Required),
			validation.Field(&p.SalaryMin, validation.Min(0)),
			validation.Field(&p.SalaryMax, validation.Min(p.SalaryMin)),
		)
	}, "Invalid job payload"); err != nil {
		return err.WithCode(goerrors.CodeBadRequest)
	}
	return nil
}

// Create posts a new job owned by the authenticated employer.
func (j *JobsController) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	payload := new(JobPayload)
	if err := c.BodyParser(payload); err != nil {
		return respondError(c, badRequestBody(err))
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	job := &model.Job{
		EmployerID:       user.ID,
		Title:            payload.Title,
		Description:      payload.Description,
		Qualifications:   payload.Qualifications,
		Responsibilities: payload.Responsibilities,
		Location:         payload.Location,
		SalaryMin:        payload.SalaryMin,
		SalaryMax:        payload.SalaryMax,
	}

	job, err := j.Jobs.Post(c.UserContext(), job)
	if err != nil {
		j.Logger.Error("job create failed: %v", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Job created",
		"job":     job,
	})
}

// List returns every posting, newest first, with the employer attached.
func (j *JobsController) List(c *fiber.Ctx) error {
	jobs, err := j.Jobs.All(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"jobs": jobs,
	})
}

// Search filters postings by keyword, location, and salary bounds. All
// filters are optional and combine with AND semantics.
func (j *JobsController) Search(c *fiber.Ctx) error {
	params := repository.JobSearchParams{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
	}

	var err error
	if params.MinSalary, err = queryIntPtr(c, "minSalary"); err != nil {
		return respondError(c, err)
	}
	if params.MaxSalary, err = queryIntPtr(c, "maxSalary"); err != nil {
		return respondError(c, err)
	}

	jobs, err := j.Jobs.Search(c.UserContext(), params)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"jobs": jobs,
	})
}

// Get returns one posting by ID.
func (j *JobsController) Get(c *fiber.Ctx) error {
	job, err := j.lookup(c)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"job": job,
	})
}

// Update mutates a posting. Only the owning employer may touch it.
func (j *JobsController) Update(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	job, err := j.lookup(c)
	if err != nil {
		return respondError(c, err)
	}

	if job.EmployerID != user.ID {
		return respondError(c, ErrNotAuthorized)
	}

	payload := new(JobPayload)
	if err := c.BodyParser(payload); err != nil {
		return respondError(c, badRequestBody(err))
	}

	job, err = j.Jobs.Amend(c.UserContext(), &model.Job{
		ID:               job.ID,
		Title:            payload.Title,
		Description:      payload.Description,
		Qualifications:   payload.Qualifications,
		Responsibilities: payload.Responsibilities,
		Location:         payload.Location,
		SalaryMin:        payload.SalaryMin,
		SalaryMax:        payload.SalaryMax,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Job updated",
		"job":     job,
	})
}

// Delete removes a posting and, through the cascade, its applications.
func (j *JobsController) Delete(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	job, err := j.lookup(c)
	if err != nil {
		return respondError(c, err)
	}

	if job.EmployerID != user.ID {
		return respondError(c, ErrNotAuthorized)
	}

	if err := j.Jobs.Remove(c.UserContext(), job.ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Job deleted",
	})
}

func (j *JobsController) lookup(c *fiber.Ctx) (*model.Job, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// an unparseable ID can never match a record
		return nil, ErrJobNotFound
	}

	job, err := j.Jobs.ByID(c.UserContext(), id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	return job, nil
}

func queryIntPtr(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, goerrors.Wrap(
			err,
			goerrors.CategoryBadInput,
			"Invalid "+key+" filter",
		).WithCode(goerrors.CodeBadRequest)
	}

	return &val, nil
}
