package usecase

import (
	"context"
	"testing"
	"time"

	"lmsplatform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentUseCase_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.assignmentUseCase()
	inst := env.mustUser(t, "inst", domain.RoleInstructor)
	c := env.mustCourse(t, "HW1", inst.ID, nil)

	a, err := uc.Create(ctx, c.ID, AssignmentInput{Title: strPtr("Essay")})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxPoints, a.MaxPoints)
	assert.Equal(t, domain.DefaultLatePenaltyPercentage, a.LatePenaltyPercentage)
	assert.False(t, a.Published)

	_, err = uc.Create(ctx, c.ID, AssignmentInput{Title: strPtr("Bad"), LatePenaltyPercentage: floatPtr(150)})
	assert.True(t, domain.IsValidation(err))

	updated, err := uc.Update(ctx, a.ID, AssignmentInput{Published: boolPtr(true), MaxPoints: intPtr(50)})
	require.NoError(t, err)
	assert.True(t, updated.Published)
	assert.Equal(t, 50, updated.MaxPoints)

	published, err := uc.List(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Len(t, published, 1)
}

func TestAssignmentUseCase_SubmitGradeReturn(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.assignmentUseCase()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	inst := env.mustUser(t, "inst", domain.RoleInstructor)
	stu := env.mustUser(t, "stud", domain.RoleStudent)
	c := env.mustCourse(t, "HW2", inst.ID, nil)
	a, err := uc.Create(ctx, c.ID, AssignmentInput{
		Title:     strPtr("Hello World"),
		DueDate:   timePtr(now.Add(24 * time.Hour)),
		MaxPoints: intPtr(50),
	})
	require.NoError(t, err)

	s, _, err := uc.Submit(ctx, a.ID, SubmissionInput{UserID: stu.ID, Content: "print"})
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionSubmitted, s.Status)
	assert.True(t, s.SubmittedAt.Equal(now))

	_, _, err = uc.Submit(ctx, a.ID, SubmissionInput{UserID: stu.ID, Content: "again"})
	assert.ErrorIs(t, err, domain.ErrAlreadySubmitted)

	_, _, err = uc.Grade(ctx, s.ID, 60, "too much")
	assert.True(t, domain.IsValidation(err))

	graded, _, err := uc.Grade(ctx, s.ID, 45, "nice")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionGraded, graded.Status)
	assert.True(t, graded.IsGraded())
	pct, ok := graded.PercentageScore()
	require.True(t, ok)
	assert.InDelta(t, 90.0, pct, 0.001)

	returned, _, err := uc.Return(ctx, s.ID, "see comments")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionReturned, returned.Status)
	assert.Equal(t, "see comments", returned.Feedback)

	subs, listed, err := uc.ListSubmissions(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
	assert.Equal(t, a.ID, listed.ID)

	mine, byID, err := uc.ListUserSubmissions(ctx, stu.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Contains(t, byID, a.ID)
}

func TestAssignmentUseCase_LateSubmission(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.assignmentUseCase()
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	inst := env.mustUser(t, "inst", domain.RoleInstructor)
	stu := env.mustUser(t, "stud", domain.RoleStudent)
	c := env.mustCourse(t, "HW3", inst.ID, nil)
	a, err := uc.Create(ctx, c.ID, AssignmentInput{
		Title:               strPtr("Overdue"),
		DueDate:             timePtr(now.Add(-time.Hour)),
		AllowLateSubmission: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, a.IsOverdue(now))

	s, _, err := uc.Submit(ctx, a.ID, SubmissionInput{UserID: stu.ID, Content: "sorry"})
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionLate, s.Status)

	graded, _, err := uc.Grade(ctx, s.ID, 80, "")
	require.NoError(t, err)
	adjusted, ok := graded.LateAdjustedScore(a)
	require.True(t, ok)
	assert.InDelta(t, 72.0, adjusted, 0.001)
}

func floatPtr(f float64) *float64 { return &f }
