package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/infrastructure/repository"
	"lmsplatform/internal/infrastructure/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	users       *repository.UserRepository
	courses     *repository.CourseRepository
	modules     *repository.ModuleRepository
	lessons     *repository.LessonRepository
	assignments *repository.AssignmentRepository
	enrollments *repository.EnrollmentRepository
	submissions *repository.SubmissionRepository
	hasher      *security.PasswordHasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.OpenSQLite(filepath.Join(t.TempDir(), "lms.db"))
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return &testEnv{
		users:       repository.NewUserRepository(db),
		courses:     repository.NewCourseRepository(db),
		modules:     repository.NewModuleRepository(db),
		lessons:     repository.NewLessonRepository(db),
		assignments: repository.NewAssignmentRepository(db),
		enrollments: repository.NewEnrollmentRepository(db),
		submissions: repository.NewSubmissionRepository(db),
		hasher:      security.NewPasswordHasherWithCost(bcrypt.MinCost),
	}
}

func (e *testEnv) userUseCase() *UserUseCase {
	return NewUserUseCase(e.users, e.hasher)
}

func (e *testEnv) courseUseCase() *CourseUseCase {
	return NewCourseUseCase(e.courses, e.users)
}

func (e *testEnv) enrollmentUseCase(p CapacityPolicy) *EnrollmentUseCase {
	return NewEnrollmentUseCase(e.courses, e.users, e.enrollments, p)
}

func (e *testEnv) assignmentUseCase() *AssignmentUseCase {
	return NewAssignmentUseCase(e.courses, e.assignments, e.submissions, e.users)
}

func (e *testEnv) mustUser(t *testing.T, username string, role domain.UserRole) *domain.User {
	t.Helper()
	u, err := e.userUseCase().Create(context.Background(), UserInput{
		Username:  strPtr(username),
		Email:     strPtr(username + "@lms.com"),
		Password:  strPtr("secret123"),
		FirstName: strPtr("Test"),
		LastName:  strPtr("User"),
		Role:      &role,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) mustCourse(t *testing.T, code string, instructorID uuid.UUID, max *int) *domain.Course {
	t.Helper()
	c, err := e.courseUseCase().Create(context.Background(), CourseInput{
		Title:          strPtr("Course " + code),
		Description:    strPtr("About " + code),
		Code:           strPtr(code),
		Published:      boolPtr(true),
		MaxEnrollments: max,
		InstructorID:   &instructorID,
	})
	require.NoError(t, err)
	return c
}

func strPtr(s string) *string       { return &s }
func boolPtr(b bool) *bool          { return &b }
func timePtr(t time.Time) *time.Time { return &t }
