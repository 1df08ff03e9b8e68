package controller

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/goliatone/jobboard/internal/auth"
	"github.com/goliatone/jobboard/internal/model"
	"github.com/goliatone/jobboard/internal/repository"
	"github.com/goliatone/jobboard/internal/upload"
)

// ProfilesController serves the role-specific profile endpoints. The
// jobseeker side accepts multipart bodies so a resume can ride along.
type ProfilesController struct {
	Jobseekers repository.JobseekerProfiles
	Employers  repository.EmployerProfiles
	Resumes    *upload.Store
	Logger     Logger
}

func NewProfilesController(
	jobseekers repository.JobseekerProfiles,
	employers repository.EmployerProfiles,
	resumes *upload.Store,
) *ProfilesController {
	return &ProfilesController{
		Jobseekers: jobseekers,
		Employers:  employers,
		Resumes:    resumes,
		Logger:     defLogger{},
	}
}

func (p *ProfilesController) WithLogger(logger Logger) *ProfilesController {
	p.Logger = logger
	return p
}

func validatePhone(phone string) error {
	num, err := phonenumbers.Parse(phone, "US")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return goerrors.New(
			"Invalid phone number",
			goerrors.CategoryValidation,
		).WithCode(goerrors.CodeBadRequest)
	}
	return nil
}

type JobseekerProfilePayload struct {
	Phone      string `json:"phone" form:"phone"`
	Location   string `json:"location" form:"location"`
	Skills     string `json:"skills" form:"skills"`
	Experience int    `json:"experience" form:"experience"`
}

func (p JobseekerProfilePayload) Validate() error {
	if err := goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Experience, validation.Min(0)),
		)
	}, "Invalid profile payload"); err != nil {
		return err.WithCode(goerrors.CodeBadRequest)
	}

	if p.Phone != "" {
		return validatePhone(p.Phone)
	}
	return nil
}

// SkillList splits the comma separated skills field, dropping blanks.
func (p JobseekerProfilePayload) SkillList() []string {
	var out []string
	for _, s := range strings.Split(p.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type EmployerProfilePayload struct {
	CompanyName  string `json:"company_name" form:"company_name"`
	Website      string `json:"website" form:"website"`
	Industry     string `json:"industry" form:"industry"`
	ContactEmail string `json:"contact_email" form:"contact_email"`
	ContactPhone string `json:"contact_phone" form:"contact_phone"`
}

func (p EmployerProfilePayload) Validate() error {
	if err := goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.CompanyName, validation.Required),
			validation.Field(&p.ContactEmail, validation.Required, is.Email),
			validation.Field(&p.Website, is.URL),
		)
	}, "Invalid profile payload"); err != nil {
		return err.WithCode(goerrors.CodeBadRequest)
	}

	if p.ContactPhone != "" {
		return validatePhone(p.ContactPhone)
	}
	return nil
}

// SaveJobseeker upserts the jobseeker profile. A `resume` file part, when
// present, is stored on disk and its text extracted for search.
func (p *ProfilesController) SaveJobseeker(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	payload := new(JobseekerProfilePayload)
	if err := c.BodyParser(payload); err != nil {
		return respondError(c, badRequestBody(err))
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	profile := &model.JobseekerProfile{
		UserID:     user.ID,
		Phone:      payload.Phone,
		Location:   payload.Location,
		Skills:     payload.SkillList(),
		Experience: payload.Experience,
	}

	if file, err := c.FormFile("resume"); err == nil && file != nil {
		resumeURL, err := p.Resumes.SaveResume(file)
		if err != nil {
			return respondError(c, err)
		}
		profile.ResumeURL = resumeURL

		// extraction failure keeps the upload, just without text search
		if text, err := p.Resumes.ExtractText(resumeURL); err != nil {
			p.Logger.Warn("resume text extraction failed for %s: %v", user.ID, err)
		} else {
			profile.ResumeText = text
		}
	}

	profile, err := p.Jobseekers.Save(c.UserContext(), profile)
	if err != nil {
		p.Logger.Error("jobseeker profile save failed: %v", err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile saved",
		"profile": profile,
	})
}

// MyJobseekerProfile returns the caller's own profile.
func (p *ProfilesController) MyJobseekerProfile(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	profile, err := p.Jobseekers.ByUserID(c.UserContext(), user.ID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return respondError(c, ErrProfileNotFound)
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}

// ApplicantProfile lets an employer review an applicant's profile. The
// resume text stays private; only the public fields go out.
func (p *ProfilesController) ApplicantProfile(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return respondError(c, ErrApplicantProfileNotFound)
	}

	profile, err := p.Jobseekers.ByUserID(c.UserContext(), userID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return respondError(c, ErrApplicantProfileNotFound)
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": fiber.Map{
			"phone":      profile.Phone,
			"location":   profile.Location,
			"skills":     profile.Skills,
			"experience": profile.Experience,
			"resume_url": profile.ResumeURL,
		},
	})
}

// SaveEmployer upserts the employer's company profile.
func (p *ProfilesController) SaveEmployer(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	payload := new(EmployerProfilePayload)
	if err := c.BodyParser(payload); err != nil {
		return respondError(c, badRequestBody(err))
	}

	if err := payload.Validate(); err != nil {
		return respondError(c, err)
	}

	profile, err := p.Employers.Save(c.UserContext(), &model.EmployerProfile{
		UserID:       user.ID,
		CompanyName:  payload.CompanyName,
		Website:      payload.Website,
		Industry:     payload.Industry,
		ContactEmail: payload.ContactEmail,
		ContactPhone: payload.ContactPhone,
	})
	if err != nil {
		p.Logger.Error("employer profile save failed: %v", err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile saved",
		"profile": profile,
	})
}

// MyEmployerProfile returns the caller's own company profile.
func (p *ProfilesController) MyEmployerProfile(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return respondError(c, auth.ErrNotAuthenticated)
	}

	profile, err := p.Employers.ByUserID(c.UserContext(), user.ID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return respondError(c, ErrProfileNotFound)
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile": profile,
	})
}
