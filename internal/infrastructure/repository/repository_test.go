package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "lms.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func intPtr(v int) *int { return &v }

func mustUser(t *testing.T, repo *UserRepository, username string, role domain.UserRole) *domain.User {
	t.Helper()
	u, err := domain.NewUser(username, username+"@lms.com", "hash", "First"+username, "Last", role)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), u))
	return u
}

func mustCourse(t *testing.T, repo *CourseRepository, code string, instructorID uuid.UUID, published bool, max *int) *domain.Course {
	t.Helper()
	c, err := domain.NewCourse("Course "+code, "About "+code, code, instructorID)
	require.NoError(t, err)
	c.Published = published
	c.MaxEnrollments = max
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func TestUserRepository_SaveAndLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u := mustUser(t, repo, "alice", domain.RoleStudent)
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "alice@lms.com", got.Email)

	got, err = repo.GetByEmail(ctx, "alice@lms.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	exists, err := repo.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByEmail(ctx, "nobody@lms.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_UpdateBumpsUpdatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return base }

	u := mustUser(t, repo, "bob", domain.RoleInstructor)

	repo.now = func() time.Time { return base.Add(time.Hour) }
	u.Bio = "Teaches Go"
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teaches Go", got.Bio)
	assert.True(t, got.CreatedAt.Equal(base))
	assert.True(t, got.UpdatedAt.Equal(base.Add(time.Hour)))
}

func TestUserRepository_RoleFiltersAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	mustUser(t, repo, "student1", domain.RoleStudent)
	s2 := mustUser(t, repo, "student2", domain.RoleStudent)
	mustUser(t, repo, "prof", domain.RoleInstructor)
	s2.Active = false
	s2.FirstName = "Zed"
	require.NoError(t, repo.Save(ctx, s2))

	students, err := repo.ListByRole(ctx, domain.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	active, err := repo.ListByRoleAndActive(ctx, domain.RoleStudent)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "student1", active[0].Username)

	all, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := repo.SearchByName(ctx, "zE")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, s2.ID, found[0].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestCourseRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	c := mustCourse(t, courses, "JAVA101", inst.ID, true, intPtr(50))

	got, err := courses.GetByCode(ctx, "JAVA101")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, 50, *got.MaxEnrollments)
	assert.EqualValues(t, 0, got.EnrollmentCount)

	got.Title = "Java Basics"
	require.NoError(t, courses.Save(ctx, got))
	got, err = courses.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Java Basics", got.Title)

	exists, err := courses.ExistsByCode(ctx, "JAVA101")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, courses.Delete(ctx, c.ID))
	_, err = courses.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	assert.ErrorIs(t, courses.Delete(ctx, c.ID), domain.ErrCourseNotFound)
}

func TestCourseRepository_FiltersAndSlots(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	enrollments := NewEnrollmentRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	other := mustUser(t, users, "other", domain.RoleInstructor)
	stu := mustUser(t, users, "stud", domain.RoleStudent)

	full := mustCourse(t, courses, "FULL1", inst.ID, true, intPtr(1))
	open := mustCourse(t, courses, "OPEN1", inst.ID, true, nil)
	mustCourse(t, courses, "DRAFT1", other.ID, false, nil)
	inactive := mustCourse(t, courses, "OLD1", other.ID, true, nil)
	inactive.Active = false
	require.NoError(t, courses.Save(ctx, inactive))

	require.NoError(t, enrollments.Save(ctx, domain.NewEnrollment(stu.ID, full.ID, time.Now().UTC())))

	published, err := courses.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, published, 3)

	catalog, err := courses.ListPublishedAndActive(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)

	available, err := courses.ListWithAvailableSlots(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, open.ID, available[0].ID)

	byInst, err := courses.ListByInstructor(ctx, inst.ID)
	require.NoError(t, err)
	assert.Len(t, byInst, 2)

	got, err := courses.GetByID(ctx, full.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.EnrollmentCount)
	assert.True(t, got.IsEnrollmentFull())

	found, err := courses.Search(ctx, "about open")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, open.ID, found[0].ID)
}

func TestCourseRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	modules := NewModuleRepository(db)
	lessons := NewLessonRepository(db)
	assignments := NewAssignmentRepository(db)
	enrollments := NewEnrollmentRepository(db)
	submissions := NewSubmissionRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	stu := mustUser(t, users, "stud", domain.RoleStudent)
	c := mustCourse(t, courses, "CS1", inst.ID, true, nil)

	m, err := domain.NewModule(c.ID, "Intro", "", 0)
	require.NoError(t, err)
	require.NoError(t, modules.Save(ctx, m))
	l, err := domain.NewLesson(m.ID, "Hello", "", 0)
	require.NoError(t, err)
	require.NoError(t, lessons.Save(ctx, l))
	a, err := domain.NewAssignment(c.ID, "HW1", "")
	require.NoError(t, err)
	require.NoError(t, assignments.Save(ctx, a))
	s, err := domain.NewSubmission(stu.ID, a, "answer", "", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, submissions.Save(ctx, s))
	require.NoError(t, enrollments.Save(ctx, domain.NewEnrollment(stu.ID, c.ID, time.Now().UTC())))

	require.NoError(t, courses.Delete(ctx, c.ID))

	_, err = modules.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrModuleNotFound)
	_, err = lessons.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)
	_, err = assignments.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
	_, err = submissions.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
	remaining, err := enrollments.ListByUser(ctx, stu.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// the student survives
	_, err = users.GetByID(ctx, stu.ID)
	assert.NoError(t, err)
}

func TestUserRepository_DeleteCascadesInstructedCourses(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	enrollments := NewEnrollmentRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	stu := mustUser(t, users, "stud", domain.RoleStudent)
	c := mustCourse(t, courses, "CS2", inst.ID, true, nil)
	require.NoError(t, enrollments.Save(ctx, domain.NewEnrollment(stu.ID, c.ID, time.Now().UTC())))

	require.NoError(t, users.Delete(ctx, inst.ID))

	_, err := courses.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	count, err := enrollments.CountByCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, users.Delete(ctx, inst.ID), domain.ErrUserNotFound)
}

func TestModuleAndLessonRepository_Ordering(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	modules := NewModuleRepository(db)
	lessons := NewLessonRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	c := mustCourse(t, courses, "ORD1", inst.ID, true, nil)

	for _, idx := range []int{2, 0, 1} {
		m, err := domain.NewModule(c.ID, "Module", "", idx)
		require.NoError(t, err)
		m.Published = idx != 1
		require.NoError(t, modules.Save(ctx, m))
	}

	ordered, err := modules.ListByCourseOrdered(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	for i, m := range ordered {
		assert.Equal(t, i, m.OrderIndex)
	}

	published, err := modules.ListByCourseAndPublished(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, published, 2)

	first := ordered[0]
	for _, idx := range []int{1, 0} {
		l, err := domain.NewLesson(first.ID, "Lesson", "", idx)
		require.NoError(t, err)
		require.NoError(t, lessons.Save(ctx, l))
	}
	ls, err := lessons.ListByModuleOrdered(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, ls, 2)
	assert.Equal(t, 0, ls[0].OrderIndex)
	assert.Equal(t, 1, ls[1].OrderIndex)

	require.NoError(t, modules.Delete(ctx, first.ID))
	ls, err = lessons.ListByModule(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, ls)
	assert.ErrorIs(t, modules.Delete(ctx, first.ID), domain.ErrModuleNotFound)
}

func TestAssignmentRepository_DueDateOrdering(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	assignments := NewAssignmentRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	c := mustCourse(t, courses, "DUE1", inst.ID, true, nil)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	later := base.Add(48 * time.Hour)
	for _, d := range []*time.Time{&later, nil, &base} {
		a, err := domain.NewAssignment(c.ID, "HW", "")
		require.NoError(t, err)
		a.DueDate = d
		require.NoError(t, assignments.Save(ctx, a))
	}

	ordered, err := assignments.ListByCourseOrdered(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	require.NotNil(t, ordered[0].DueDate)
	require.NotNil(t, ordered[1].DueDate)
	assert.True(t, ordered[0].DueDate.Equal(base))
	assert.True(t, ordered[1].DueDate.Equal(later))
	assert.Nil(t, ordered[2].DueDate)
	assert.Equal(t, domain.DefaultMaxPoints, ordered[2].MaxPoints)
}

func TestEnrollmentRepository_EnrollWithCapacity(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	enrollments := NewEnrollmentRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	s1 := mustUser(t, users, "stu1", domain.RoleStudent)
	s2 := mustUser(t, users, "stu2", domain.RoleStudent)
	c := mustCourse(t, courses, "CAP1", inst.ID, true, intPtr(1))

	e1 := domain.NewEnrollment(s1.ID, c.ID, time.Now().UTC())
	require.NoError(t, enrollments.EnrollWithCapacity(ctx, e1))
	assert.NotEqual(t, uuid.Nil, e1.ID)

	err := enrollments.EnrollWithCapacity(ctx, domain.NewEnrollment(s1.ID, c.ID, time.Now().UTC()))
	assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)

	err = enrollments.EnrollWithCapacity(ctx, domain.NewEnrollment(s2.ID, c.ID, time.Now().UTC()))
	assert.ErrorIs(t, err, domain.ErrCourseFull)
	assert.ErrorIs(t, err, domain.ErrConflict)

	count, err := enrollments.CountByCourse(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	draft := mustCourse(t, courses, "DRAFT2", inst.ID, false, intPtr(1))
	require.NoError(t, enrollments.EnrollWithCapacity(ctx, domain.NewEnrollment(s2.ID, draft.ID, time.Now().UTC())))

	err = enrollments.EnrollWithCapacity(ctx, domain.NewEnrollment(s2.ID, uuid.New(), time.Now().UTC()))
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestEnrollmentRepository_LookupsAndEnrolledUsers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	enrollments := NewEnrollmentRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	s1 := mustUser(t, users, "stu1", domain.RoleStudent)
	mustUser(t, users, "stu2", domain.RoleStudent)
	c := mustCourse(t, courses, "ENR1", inst.ID, true, nil)

	e := domain.NewEnrollment(s1.ID, c.ID, time.Now().UTC())
	require.NoError(t, enrollments.Save(ctx, e))

	got, err := enrollments.GetByUserAndCourse(ctx, s1.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, domain.EnrollmentActive, got.Status)

	_, err = enrollments.GetByUserAndCourse(ctx, inst.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)

	enrolled, err := users.ListEnrolledInCourse(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, s1.ID, enrolled[0].ID)

	require.NoError(t, got.SetProgress(40))
	require.NoError(t, enrollments.Save(ctx, got))
	got, err = enrollments.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.ProgressPercentage)

	require.NoError(t, enrollments.Delete(ctx, e.ID))
	assert.ErrorIs(t, enrollments.Delete(ctx, e.ID), domain.ErrEnrollmentNotFound)
}

func TestSubmissionRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	assignments := NewAssignmentRepository(db)
	submissions := NewSubmissionRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	stu := mustUser(t, users, "stud", domain.RoleStudent)
	c := mustCourse(t, courses, "SUB1", inst.ID, true, nil)
	a, err := domain.NewAssignment(c.ID, "HW", "")
	require.NoError(t, err)
	require.NoError(t, assignments.Save(ctx, a))

	now := time.Now().UTC()
	s, err := domain.NewSubmission(stu.ID, a, "my answer", "", now)
	require.NoError(t, err)
	require.NoError(t, submissions.Save(ctx, s))

	require.NoError(t, s.Grade(a, 45, "good", now))
	require.NoError(t, submissions.Save(ctx, s))

	got, err := submissions.GetByUserAndAssignment(ctx, stu.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionGraded, got.Status)
	require.NotNil(t, got.Score)
	assert.Equal(t, 45.0, *got.Score)
	pct, ok := got.PercentageScore()
	assert.True(t, ok)
	assert.InDelta(t, 45.0, pct, 0.001)

	byAssignment, err := submissions.ListByAssignment(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, byAssignment, 1)
	byUser, err := submissions.ListByUser(ctx, stu.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, assignments.Delete(ctx, a.ID))
	_, err = submissions.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSubmissionNotFound)
}

func TestSubmissionRepository_OnePerUserAndAssignment(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	assignments := NewAssignmentRepository(db)
	submissions := NewSubmissionRepository(db)

	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	stu := mustUser(t, users, "stud", domain.RoleStudent)
	c := mustCourse(t, courses, "SUB2", inst.ID, true, nil)
	a, err := domain.NewAssignment(c.ID, "HW", "")
	require.NoError(t, err)
	require.NoError(t, assignments.Save(ctx, a))

	now := time.Now().UTC()
	first, err := domain.NewSubmission(stu.ID, a, "v1", "", now)
	require.NoError(t, err)
	require.NoError(t, submissions.Save(ctx, first))

	second, err := domain.NewSubmission(stu.ID, a, "v2", "", now)
	require.NoError(t, err)
	err = submissions.Save(ctx, second)
	assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)
	assert.ErrorIs(t, err, domain.ErrConflict)

	all, err := submissions.ListByAssignment(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "v1", all[0].Content)
}

func TestCourseRepository_DuplicateCodeConflicts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	mustCourse(t, courses, "DUPC", inst.ID, true, nil)

	again, err := domain.NewCourse("Other", "", "DUPC", inst.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, courses.Save(ctx, again), domain.ErrCourseCodeTaken)
}

func TestSearch_WildcardsMatchLiterally(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	inst := mustUser(t, users, "inst", domain.RoleInstructor)

	pct, err := domain.NewCourse("Go 100% Done", "", "PCT1", inst.ID)
	require.NoError(t, err)
	require.NoError(t, courses.Save(ctx, pct))
	mustCourse(t, courses, "PLAIN1", inst.ID, true, nil)

	found, err := courses.Search(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, found)

	found, err = courses.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "PCT1", found[0].Code)

	found, err = courses.Search(ctx, `\`)
	require.NoError(t, err)
	assert.Empty(t, found)

	people, err := users.SearchByName(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestUserRepository_ListEnrolledInCourseHonorsContext(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	courses := NewCourseRepository(db)
	inst := mustUser(t, users, "inst", domain.RoleInstructor)
	c := mustCourse(t, courses, "CTX1", inst.ID, true, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := users.ListEnrolledInCourse(ctx, c.ID)
	assert.ErrorIs(t, err, context.Canceled)
}
