package auth

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"

	"github.com/goliatone/jobboard/internal/model"
)

// Auther orchestrates registration and credential verification
type Auther struct {
	users     UserStore
	tokens    TokenService
	passwords PasswordAuthenticator
	logger    Logger
}

// NewAuthenticator will create a new Auther instance
func NewAuthenticator(users UserStore, tokens TokenService) *Auther {
	return &Auther{
		users:     users,
		tokens:    tokens,
		passwords: NewPasswordAuthenticator(),
		logger:    defLogger{},
	}
}

func (s *Auther) WithLogger(l Logger) *Auther {
	if l != nil {
		s.logger = l
	}
	return s
}

// SignUp registers a new account under the given role and returns a signed
// session token for it. The email is claimed globally: an employer cannot
// sign up with an email a jobseeker already owns.
func (s *Auther) SignUp(ctx context.Context, name, email, password string, role model.UserRole) (string, *model.User, error) {
	email = model.NormalizeEmail(email)

	existing, err := s.users.ByEmail(ctx, email)
	if err != nil && !repository.IsRecordNotFound(err) {
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check existing account")
	}
	if existing != nil {
		return "", nil, ErrEmailInUse
	}

	hash, err := s.passwords.HashPassword(password)
	if err != nil {
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	user, err = s.users.Register(ctx, user)
	if err != nil {
		// a concurrent signup can slip past the lookup, the unique index
		// on email is the source of truth
		var rich *goerrors.Error
		if goerrors.As(err, &rich) && rich.Category == goerrors.CategoryConflict {
			return "", nil, ErrEmailInUse
		}
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to register account")
	}

	token, err := s.tokens.Generate(IdentityFromUser(user))
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Login verifies credentials scoped to a role and returns a signed session
// token. An account registered as a jobseeker cannot log in through the
// employer door, even with the right password.
func (s *Auther) Login(ctx context.Context, email, password string, role model.UserRole) (string, *model.User, error) {
	email = model.NormalizeEmail(email)

	user, err := s.users.ByEmailAndRole(ctx, email, role)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return "", nil, invalidCredentialsFor(role)
		}
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve account during login")
	}

	if err := s.passwords.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return "", nil, ErrInvalidPassword
	}

	token, err := s.tokens.Generate(IdentityFromUser(user))
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func invalidCredentialsFor(role model.UserRole) error {
	return goerrors.New(fmt.Sprintf("Invalid credentials for %s", role), goerrors.CategoryAuth).
		WithTextCode(textCodeInvalidCredentials).
		WithCode(goerrors.CodeBadRequest)
}
