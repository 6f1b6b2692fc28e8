package usecase

import (
	"context"
	"log"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
)

// CapacityPolicy decides what happens when an enrollment would exceed a
// course's maxEnrollments.
type CapacityPolicy string

const (
	// CapacityReject refuses enrollment into full courses.
	CapacityReject CapacityPolicy = "reject"
	// CapacityAllow inserts regardless of the ceiling.
	CapacityAllow CapacityPolicy = "allow"
)

type EnrollmentUseCase struct {
	courses     CourseRepository
	users       UserRepository
	enrollments EnrollmentRepository
	policy      CapacityPolicy
	now         func() time.Time
}

func NewEnrollmentUseCase(cr CourseRepository, ur UserRepository, er EnrollmentRepository, policy CapacityPolicy) *EnrollmentUseCase {
	if policy == "" {
		policy = CapacityReject
	}
	return &EnrollmentUseCase{
		courses:     cr,
		users:       ur,
		enrollments: er,
		policy:      policy,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Enroll registers userID in courseID. A user may hold one enrollment per
// course under either policy.
func (uc *EnrollmentUseCase) Enroll(ctx context.Context, courseID, userID uuid.UUID) (*domain.Enrollment, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	e := domain.NewEnrollment(userID, courseID, uc.now())

	if uc.policy == CapacityReject {
		if err := uc.enrollments.EnrollWithCapacity(ctx, e); err != nil {
			return nil, err
		}
		return e, nil
	}

	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.enrollments.GetByUserAndCourse(ctx, userID, courseID); err == nil {
		return nil, domain.ErrAlreadyEnrolled
	} else if !isNotFound(err) {
		return nil, err
	}
	if course.IsEnrollmentFull() {
		log.Printf("enrolling %s into %s past capacity %d", userID, course.Code, *course.MaxEnrollments)
	}
	if err := uc.enrollments.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (uc *EnrollmentUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error) {
	return uc.enrollments.GetByID(ctx, id)
}

func (uc *EnrollmentUseCase) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Enrollment, error) {
	if _, err := uc.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.enrollments.ListByCourse(ctx, courseID)
}

func (uc *EnrollmentUseCase) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Enrollment, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.enrollments.ListByUser(ctx, userID)
}

// Students returns the users enrolled in the course.
func (uc *EnrollmentUseCase) Students(ctx context.Context, courseID uuid.UUID) ([]domain.User, error) {
	if _, err := uc.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return uc.users.ListEnrolledInCourse(ctx, courseID)
}

func (uc *EnrollmentUseCase) UpdateProgress(ctx context.Context, id uuid.UUID, progress float64) (*domain.Enrollment, error) {
	return uc.mutate(ctx, id, func(e *domain.Enrollment) error {
		return e.SetProgress(progress)
	})
}

func (uc *EnrollmentUseCase) Complete(ctx context.Context, id uuid.UUID, grade *string) (*domain.Enrollment, error) {
	return uc.mutate(ctx, id, func(e *domain.Enrollment) error {
		return e.Complete(uc.now(), grade)
	})
}

func (uc *EnrollmentUseCase) Drop(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error) {
	return uc.mutate(ctx, id, func(e *domain.Enrollment) error {
		e.Drop()
		return nil
	})
}

func (uc *EnrollmentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.enrollments.Delete(ctx, id)
}

func (uc *EnrollmentUseCase) mutate(ctx context.Context, id uuid.UUID, fn func(*domain.Enrollment) error) (*domain.Enrollment, error) {
	e, err := uc.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(e); err != nil {
		return nil, err
	}
	if err := uc.enrollments.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
