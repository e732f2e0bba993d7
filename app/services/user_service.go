package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/recipebox/app/models"
	"github.com/shashiranjanraj/recipebox/app/repositories"
	"github.com/shashiranjanraj/recipebox/pkg/apperr"
	"github.com/shashiranjanraj/recipebox/pkg/auth"
	"github.com/shashiranjanraj/recipebox/pkg/cache"
	"github.com/shashiranjanraj/recipebox/pkg/logger"
	"github.com/shashiranjanraj/recipebox/pkg/storage"
	"github.com/shashiranjanraj/recipebox/pkg/validate"
)

const userCacheTTL = 5 * time.Minute

// AuthFailed is the message for every bad-credentials case, so callers
// cannot tell an unknown email from a wrong password.
const AuthFailed = "Authentication failed, try again"

type CreateUserInput struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name"     validate:"required,max=255"`
}

type TokenInput struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is a profile change. Nil fields are left alone on PATCH.
type ProfileInput struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"     validate:"nullable,max=255"`
	Password *string `json:"password" validate:"nullable,min=5"`
}

type UserService struct {
	users *repositories.UserRepository
	cache *cache.Store
	files storage.Disk
}

// NewUserService wires the user service. store and files may be nil.
func NewUserService(users *repositories.UserRepository, store *cache.Store, files storage.Disk) *UserService {
	return &UserService{users: users, cache: store, files: files}
}

func cacheKey(id uint) string { return fmt.Sprintf("user:%d", id) }

// Create registers a new account.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	return s.register(ctx, in, models.NewUser)
}

// CreateSuperuser registers a staff account with full privileges.
func (s *UserService) CreateSuperuser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	return s.register(ctx, in, models.NewSuperuser)
}

func (s *UserService) register(ctx context.Context, in CreateUserInput, build func(email, name, password string) (*models.User, error)) (*models.User, error) {
	if err := validate.Check(in); err != nil {
		return nil, err
	}

	u, err := build(in.Email, in.Name, in.Password)
	if err != nil {
		return nil, apperr.Field(apperr.NonField, err.Error())
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperr.Field("email", "user with this email already exists.")
		}
		return nil, err
	}

	logger.WithCtx(ctx).Info("user created", "user_id", u.ID, "superuser", u.IsSuperuser)
	return u, nil
}

// Token exchanges credentials for an access token.
func (s *UserService) Token(ctx context.Context, in TokenInput) (string, error) {
	if err := validate.Check(in); err != nil {
		return "", err
	}

	u, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, apperr.ErrNotFound) {
		return "", apperr.Field(apperr.NonField, AuthFailed)
	}
	if err != nil {
		return "", err
	}
	if !u.IsActive || !u.CheckPassword(in.Password) {
		return "", apperr.Field(apperr.NonField, AuthFailed)
	}

	return auth.GenerateToken(u.ID)
}

// Verify confirms that id names an active account. Lookups are cached.
func (s *UserService) Verify(ctx context.Context, id uint) error {
	u, err := cache.Remember(ctx, s.cache, cacheKey(id), userCacheTTL, func() (*models.User, error) {
		return s.users.FindByID(ctx, id)
	})
	if err != nil {
		return err
	}
	if !u.IsActive {
		return apperr.Unauthenticated("User inactive or deleted.")
	}
	return nil
}

// Profile returns the account behind id.
func (s *UserService) Profile(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// UpdateProfile changes name and/or password. With partial false (PUT) the
// name is required. The email address cannot be changed.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in ProfileInput, partial bool) (*models.User, error) {
	errs := validate.Struct(in)
	if !partial && in.Name == nil {
		errs.Add("name", "The name field is required.")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		errs.Add("name", "The name field may not be blank.")
	}
	if in.Password != nil && *in.Password == "" {
		errs.Add("password", "The password field may not be blank.")
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && models.NormalizeEmail(*in.Email) != u.Email {
		errs.Add("email", "The email address cannot be changed.")
	}
	if validate.HasErrors(errs) {
		return nil, apperr.Validation(errs)
	}

	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		if err := u.SetPassword(*in.Password); err != nil {
			return nil, err
		}
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	if err := s.cache.Forget(ctx, cacheKey(id)); err != nil {
		logger.WithCtx(ctx).Warn("user cache invalidation failed", "user_id", id, "error", err.Error())
	}
	return u, nil
}

// Delete removes an account with all it owns, then its recipe images.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	images, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	_ = s.cache.Forget(ctx, cacheKey(id))

	if s.files == nil {
		return nil
	}
	if err := storage.DeleteAll(ctx, s.files, images); err != nil {
		logger.WithCtx(ctx).Warn("orphaned recipe images", "user_id", id, "error", err.Error())
	}
	return nil
}

// DeleteByEmail resolves email to an account and deletes it.
func (s *UserService) DeleteByEmail(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.Delete(ctx, u.ID)
}
