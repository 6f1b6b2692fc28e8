package usecase

import (
	"context"
	"log"
	"strings"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
)

const minPasswordLength = 6

type UserUseCase struct {
	users  UserRepository
	hasher PasswordHasher
}

func NewUserUseCase(ur UserRepository, h PasswordHasher) *UserUseCase {
	return &UserUseCase{users: ur, hasher: h}
}

// UserInput carries client-editable user fields. Password is the raw
// password; it is hashed before storage and never returned.
type UserInput struct {
	Username       *string
	Email          *string
	Password       *string
	FirstName      *string
	LastName       *string
	Role           *domain.UserRole
	Active         *bool
	ProfilePicture *string
	Bio            *string
}

// UserFilter narrows List. Zero value lists everyone.
type UserFilter struct {
	Role       *domain.UserRole
	ActiveOnly bool
}

func (uc *UserUseCase) List(ctx context.Context, f UserFilter) ([]domain.User, error) {
	switch {
	case f.Role != nil && f.ActiveOnly:
		return uc.users.ListByRoleAndActive(ctx, *f.Role)
	case f.Role != nil:
		return uc.users.ListByRole(ctx, *f.Role)
	case f.ActiveOnly:
		return uc.users.ListActive(ctx)
	}
	return uc.users.List(ctx)
}

func (uc *UserUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

func (uc *UserUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.users.GetByUsername(ctx, username)
}

func (uc *UserUseCase) Search(ctx context.Context, term string) ([]domain.User, error) {
	return uc.users.SearchByName(ctx, term)
}

func (uc *UserUseCase) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	if in.Password == nil || len(*in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", "must be at least 6 characters")
	}
	u := &domain.User{Role: domain.RoleStudent, Active: true, PasswordHash: "pending"}
	uc.apply(u, in)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkUnique(ctx, u.Username, u.Email); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(*in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	if err := uc.users.Save(ctx, u); err != nil {
		return nil, err
	}
	log.Printf("user created: %s (%s)", u.Username, u.Role)
	return u, nil
}

func (uc *UserUseCase) Update(ctx context.Context, id uuid.UUID, in UserInput) (*domain.User, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldUsername, oldEmail := u.Username, u.Email
	uc.apply(u, in)
	if err := u.Validate(); err != nil {
		return nil, err
	}

	username, email := "", ""
	if u.Username != oldUsername {
		username = u.Username
	}
	if u.Email != oldEmail {
		email = u.Email
	}
	if err := uc.checkUnique(ctx, username, email); err != nil {
		return nil, err
	}

	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, domain.NewValidationError("password", "must be at least 6 characters")
		}
		if u.PasswordHash, err = uc.hasher.Hash(*in.Password); err != nil {
			return nil, err
		}
	}
	if err := uc.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("user deleted: %s", id)
	return nil
}

func (uc *UserUseCase) apply(u *domain.User, in UserInput) {
	if in.Username != nil {
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if in.ProfilePicture != nil {
		u.ProfilePicture = *in.ProfilePicture
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
}

// checkUnique skips empty arguments.
func (uc *UserUseCase) checkUnique(ctx context.Context, username, email string) error {
	if username != "" {
		taken, err := uc.users.ExistsByUsername(ctx, username)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrUsernameTaken
		}
	}
	if email != "" {
		taken, err := uc.users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailTaken
		}
	}
	return nil
}
