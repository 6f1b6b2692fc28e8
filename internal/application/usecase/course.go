package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
)

type CourseUseCase struct {
	courses CourseRepository
	users   UserRepository
}

func NewCourseUseCase(cr CourseRepository, ur UserRepository) *CourseUseCase {
	return &CourseUseCase{courses: cr, users: ur}
}

// CourseInput carries the client-editable course fields. On create nil
// pointers keep the defaults. On update the mutable fields are replaced
// wholesale (see overwrite) while ThumbnailURL and InstructorID stay
// untouched when nil.
type CourseInput struct {
	Title          *string
	Description    *string
	Code           *string
	Active         *bool
	Published      *bool
	MaxEnrollments *int
	StartDate      *time.Time
	EndDate        *time.Time
	ThumbnailURL   *string
	InstructorID   *uuid.UUID
}

func (in CourseInput) apply(c *domain.Course) {
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Code != nil {
		c.Code = strings.TrimSpace(*in.Code)
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	if in.Published != nil {
		c.Published = *in.Published
	}
	if in.MaxEnrollments != nil {
		c.MaxEnrollments = in.MaxEnrollments
	}
	if in.StartDate != nil {
		c.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		c.EndDate = in.EndDate
	}
	if in.ThumbnailURL != nil {
		c.ThumbnailURL = *in.ThumbnailURL
	}
	if in.InstructorID != nil {
		c.InstructorID = *in.InstructorID
	}
}

// overwrite replaces every mutable field of c. Absent text becomes empty,
// absent limits and dates are cleared, absent flags take the entity defaults.
func (in CourseInput) overwrite(c *domain.Course) {
	c.Title = deref(in.Title)
	c.Description = deref(in.Description)
	c.Code = strings.TrimSpace(deref(in.Code))
	c.MaxEnrollments = in.MaxEnrollments
	c.StartDate = in.StartDate
	c.EndDate = in.EndDate
	c.Active = in.Active == nil || *in.Active
	c.Published = in.Published != nil && *in.Published
	if in.ThumbnailURL != nil {
		c.ThumbnailURL = *in.ThumbnailURL
	}
	if in.InstructorID != nil {
		c.InstructorID = *in.InstructorID
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Catalog lists the published, active courses.
func (uc *CourseUseCase) Catalog(ctx context.Context) ([]domain.Course, error) {
	return uc.courses.ListPublishedAndActive(ctx)
}

func (uc *CourseUseCase) List(ctx context.Context) ([]domain.Course, error) {
	return uc.courses.List(ctx)
}

func (uc *CourseUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	return uc.courses.GetByID(ctx, id)
}

func (uc *CourseUseCase) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	return uc.courses.GetByCode(ctx, code)
}

func (uc *CourseUseCase) Search(ctx context.Context, term string) ([]domain.Course, error) {
	return uc.courses.Search(ctx, term)
}

func (uc *CourseUseCase) Available(ctx context.Context) ([]domain.Course, error) {
	return uc.courses.ListWithAvailableSlots(ctx)
}

func (uc *CourseUseCase) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]domain.Course, error) {
	return uc.courses.ListByInstructor(ctx, instructorID)
}

func (uc *CourseUseCase) Create(ctx context.Context, in CourseInput) (*domain.Course, error) {
	c := &domain.Course{Active: true}
	in.apply(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkInstructor(ctx, c.InstructorID); err != nil {
		return nil, err
	}
	if err := uc.checkCode(ctx, c.Code); err != nil {
		return nil, err
	}
	if err := uc.courses.Save(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("course created: %s (%s)", c.Code, c.ID)
	return c, nil
}

func (uc *CourseUseCase) Update(ctx context.Context, id uuid.UUID, in CourseInput) (*domain.Course, error) {
	c, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldCode := c.Code
	oldInstructor := c.InstructorID
	in.overwrite(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.InstructorID != oldInstructor {
		if err := uc.checkInstructor(ctx, c.InstructorID); err != nil {
			return nil, err
		}
	}
	if c.Code != oldCode {
		if err := uc.checkCode(ctx, c.Code); err != nil {
			return nil, err
		}
	}
	if err := uc.courses.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CourseUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := uc.courses.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("course deleted: %s", id)
	return nil
}

func (uc *CourseUseCase) checkCode(ctx context.Context, code string) error {
	exists, err := uc.courses.ExistsByCode(ctx, code)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrCourseCodeTaken
	}
	return nil
}

// checkInstructor accepts an unset instructor; a set one must exist.
func (uc *CourseUseCase) checkInstructor(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	if _, err := uc.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NewValidationError("instructorId", "must reference an existing user")
		}
		return err
	}
	return nil
}
