package usecase

import (
	"context"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]domain.User, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	ListByRoleAndActive(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	SearchByName(ctx context.Context, term string) ([]domain.User, error)
	ListEnrolledInCourse(ctx context.Context, courseID uuid.UUID) ([]domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CourseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetByCode(ctx context.Context, code string) (*domain.Course, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]domain.Course, error)
	ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]domain.Course, error)
	ListPublished(ctx context.Context) ([]domain.Course, error)
	ListActive(ctx context.Context) ([]domain.Course, error)
	ListPublishedAndActive(ctx context.Context) ([]domain.Course, error)
	Search(ctx context.Context, term string) ([]domain.Course, error)
	ListWithAvailableSlots(ctx context.Context) ([]domain.Course, error)
	Save(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ModuleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Module, error)
	Count(ctx context.Context) (int64, error)
	ListByCourseAndPublished(ctx context.Context, courseID uuid.UUID) ([]domain.Module, error)
	ListByCourseOrdered(ctx context.Context, courseID uuid.UUID) ([]domain.Module, error)
	Save(ctx context.Context, m *domain.Module) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type LessonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error)
	Count(ctx context.Context) (int64, error)
	ListByModuleAndPublished(ctx context.Context, moduleID uuid.UUID) ([]domain.Lesson, error)
	ListByModuleOrdered(ctx context.Context, moduleID uuid.UUID) ([]domain.Lesson, error)
	Save(ctx context.Context, l *domain.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AssignmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error)
	Count(ctx context.Context) (int64, error)
	ListByCourseAndPublished(ctx context.Context, courseID uuid.UUID) ([]domain.Assignment, error)
	ListByCourseOrdered(ctx context.Context, courseID uuid.UUID) ([]domain.Assignment, error)
	Save(ctx context.Context, a *domain.Assignment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type EnrollmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Enrollment, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Enrollment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Enrollment, error)
	CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error)
	EnrollWithCapacity(ctx context.Context, e *domain.Enrollment) error
	Save(ctx context.Context, e *domain.Enrollment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SubmissionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	GetByUserAndAssignment(ctx context.Context, userID, assignmentID uuid.UUID) (*domain.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]domain.Submission, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Submission, error)
	Save(ctx context.Context, s *domain.Submission) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
