package usecase

import (
	"context"
	"testing"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentUseCase_RejectPolicyHonorsCapacity(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.enrollmentUseCase(CapacityReject)
	inst := env.mustUser(t, "inst", domain.RoleInstructor)
	s1 := env.mustUser(t, "stu1", domain.RoleStudent)
	s2 := env.mustUser(t, "stu2", domain.RoleStudent)
	c := env.mustCourse(t, "JAVA101", inst.ID, intPtr(1))

	e, err := uc.Enroll(ctx, c.ID, s1.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentActive, e.Status)
	assert.Zero(t, e.ProgressPercentage)

	_, err = uc.Enroll(ctx, c.ID, s2.ID)
	assert.ErrorIs(t, err, domain.ErrCourseFull)

	course, err := env.courses.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, course.EnrollmentCount)
	assert.True(t, course.IsEnrollmentFull())
	assert.False(t, course.IsEnrollmentOpen())
}

func TestEnrollmentUseCase_AllowPolicyOverfills(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.enrollmentUseCase(CapacityAllow)
	inst := env.mustUser(t, "inst", domain.RoleInstructor)
	s1 := env.mustUser(t, "stu1", domain.RoleStudent)
	s2 := env.mustUser(t, "stu2", domain.RoleStudent)
	c := env.mustCourse(t, "JAVA101", inst.ID, intPtr(1))

	_, err := uc.Enroll(ctx, c.ID, s1.ID)
	require.NoError(t, err)
	_, err = uc.Enroll(ctx, c.ID, s2.ID)
	require.NoError(t, err)

	course, err := env.courses.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, course.EnrollmentCount)
	assert.True(t, course.IsEnrollmentFull())

	students, err := uc.Students(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func TestEnrollmentUseCase_DuplicateRejectedUnderBothPolicies(t *testing.T) {
	for _, policy := range []CapacityPolicy{CapacityReject, CapacityAllow} {
		t.Run(string(policy), func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)
			uc := env.enrollmentUseCase(policy)
			inst := env.mustUser(t, "inst", domain.RoleInstructor)
			s1 := env.mustUser(t, "stu1", domain.RoleStudent)
			c := env.mustCourse(t, "DUP1", inst.ID, nil)

			_, err := uc.Enroll(ctx, c.ID, s1.ID)
			require.NoError(t, err)
			_, err = uc.Enroll(ctx, c.ID, s1.ID)
			assert.ErrorIs(t, err, domain.ErrAlreadyEnrolled)
		})
	}
}

func TestEnrollmentUseCase_UnknownParties(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.enrollmentUseCase(CapacityReject)
	s1 := env.mustUser(t, "stu1", domain.RoleStudent)

	_, err := uc.Enroll(ctx, uuid.New(), s1.ID)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
	_, err = uc.Enroll(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnrollmentUseCase_Lifecycle(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.enrollmentUseCase(CapacityReject)
	inst := env.mustUser(t, "inst", domain.RoleInstructor)
	s1 := env.mustUser(t, "stu1", domain.RoleStudent)
	c := env.mustCourse(t, "LIFE1", inst.ID, nil)

	e, err := uc.Enroll(ctx, c.ID, s1.ID)
	require.NoError(t, err)

	e, err = uc.UpdateProgress(ctx, e.ID, 55)
	require.NoError(t, err)
	assert.Equal(t, 55.0, e.ProgressPercentage)

	_, err = uc.UpdateProgress(ctx, e.ID, 101)
	assert.True(t, domain.IsValidation(err))

	e, err = uc.Complete(ctx, e.ID, strPtr("A"))
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentCompleted, e.Status)
	assert.Equal(t, 100.0, e.ProgressPercentage)
	require.NotNil(t, e.CompletedAt)
	require.NotNil(t, e.Grade)
	assert.Equal(t, "A", *e.Grade)

	e, err = uc.Drop(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentDropped, e.Status)

	mine, err := uc.ListByUser(ctx, s1.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, uc.Delete(ctx, e.ID))
	_, err = uc.Get(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)
}

func TestEnrollmentUseCase_DefaultCourseFillsUp(t *testing.T) {
	for _, policy := range []CapacityPolicy{CapacityReject, CapacityAllow} {
		t.Run(string(policy), func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)
			uc := env.enrollmentUseCase(policy)
			student := env.mustUser(t, "stu1", domain.RoleStudent)
			c, err := env.courseUseCase().Create(ctx, CourseInput{
				Title:          strPtr("Intro to Java"),
				Code:           strPtr("JAVA101"),
				MaxEnrollments: intPtr(1),
			})
			require.NoError(t, err)
			require.False(t, c.Published)

			_, err = uc.Enroll(ctx, c.ID, student.ID)
			require.NoError(t, err)

			course, err := env.courses.GetByID(ctx, c.ID)
			require.NoError(t, err)
			assert.EqualValues(t, 1, course.EnrollmentCount)
			assert.True(t, course.IsEnrollmentFull())
		})
	}
}
