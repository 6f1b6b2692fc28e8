package usecase

import (
	"context"
	"log"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
)

type AssignmentUseCase struct {
	courses     CourseRepository
	assignments AssignmentRepository
	submissions SubmissionRepository
	users       UserRepository
	now         func() time.Time
}

func NewAssignmentUseCase(cr CourseRepository, ar AssignmentRepository, sr SubmissionRepository, ur UserRepository) *AssignmentUseCase {
	return &AssignmentUseCase{
		courses:     cr,
		assignments: ar,
		submissions: sr,
		users:       ur,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type AssignmentInput struct {
	Title                 *string
	Description           *string
	DueDate               *time.Time
	MaxPoints             *int
	Published             *bool
	AllowLateSubmission   *bool
	LatePenaltyPercentage *float64
}

func (in AssignmentInput) apply(a *domain.Assignment) {
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.DueDate != nil {
		a.DueDate = in.DueDate
	}
	if in.MaxPoints != nil {
		a.MaxPoints = *in.MaxPoints
	}
	if in.Published != nil {
		a.Published = *in.Published
	}
	if in.AllowLateSubmission != nil {
		a.AllowLateSubmission = *in.AllowLateSubmission
	}
	if in.LatePenaltyPercentage != nil {
		a.LatePenaltyPercentage = *in.LatePenaltyPercentage
	}
}

// Now is the clock the use case stamps and evaluates deadlines with.
func (uc *AssignmentUseCase) Now() time.Time {
	return uc.now()
}

// List returns the course's assignments by due date, undated ones last.
func (uc *AssignmentUseCase) List(ctx context.Context, courseID uuid.UUID, publishedOnly bool) ([]domain.Assignment, error) {
	if _, err := uc.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	if publishedOnly {
		return uc.assignments.ListByCourseAndPublished(ctx, courseID)
	}
	return uc.assignments.ListByCourseOrdered(ctx, courseID)
}

func (uc *AssignmentUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	return uc.assignments.GetByID(ctx, id)
}

func (uc *AssignmentUseCase) Create(ctx context.Context, courseID uuid.UUID, in AssignmentInput) (*domain.Assignment, error) {
	if _, err := uc.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	a := &domain.Assignment{
		CourseID:              courseID,
		MaxPoints:             domain.DefaultMaxPoints,
		LatePenaltyPercentage: domain.DefaultLatePenaltyPercentage,
	}
	in.apply(a)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := uc.assignments.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *AssignmentUseCase) Update(ctx context.Context, id uuid.UUID, in AssignmentInput) (*domain.Assignment, error) {
	a, err := uc.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(a)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := uc.assignments.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *AssignmentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.assignments.Delete(ctx, id)
}

type SubmissionInput struct {
	UserID        uuid.UUID
	Content       string
	AttachmentURL string
}

// Submit records one submission per (user, assignment). Work past the due
// date is accepted and marked LATE even when the assignment disallows it.
func (uc *AssignmentUseCase) Submit(ctx context.Context, assignmentID uuid.UUID, in SubmissionInput) (*domain.Submission, *domain.Assignment, error) {
	a, err := uc.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := uc.users.GetByID(ctx, in.UserID); err != nil {
		return nil, nil, err
	}
	if _, err := uc.submissions.GetByUserAndAssignment(ctx, in.UserID, assignmentID); err == nil {
		return nil, nil, domain.ErrAlreadySubmitted
	} else if !isNotFound(err) {
		return nil, nil, err
	}

	s, err := domain.NewSubmission(in.UserID, a, in.Content, in.AttachmentURL, uc.now())
	if err != nil {
		return nil, nil, err
	}
	if s.Status == domain.SubmissionLate && !a.AllowLateSubmission {
		log.Printf("late submission to %s accepted although late work is disallowed", a.ID)
	}
	if err := uc.submissions.Save(ctx, s); err != nil {
		return nil, nil, err
	}
	return s, a, nil
}

func (uc *AssignmentUseCase) ListSubmissions(ctx context.Context, assignmentID uuid.UUID) ([]domain.Submission, *domain.Assignment, error) {
	a, err := uc.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	subs, err := uc.submissions.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	return subs, a, nil
}

// ListUserSubmissions returns the user's submissions and the assignments
// they answer, keyed by assignment id.
func (uc *AssignmentUseCase) ListUserSubmissions(ctx context.Context, userID uuid.UUID) ([]domain.Submission, map[uuid.UUID]*domain.Assignment, error) {
	if _, err := uc.users.GetByID(ctx, userID); err != nil {
		return nil, nil, err
	}
	subs, err := uc.submissions.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	assignments := make(map[uuid.UUID]*domain.Assignment)
	for _, s := range subs {
		if _, ok := assignments[s.AssignmentID]; ok {
			continue
		}
		a, err := uc.assignments.GetByID(ctx, s.AssignmentID)
		if err != nil {
			return nil, nil, err
		}
		assignments[s.AssignmentID] = a
	}
	return subs, assignments, nil
}

// GetSubmission returns the submission together with its assignment, which
// the derived late and adjusted-score values depend on.
func (uc *AssignmentUseCase) GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, *domain.Assignment, error) {
	s, err := uc.submissions.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	a, err := uc.assignments.GetByID(ctx, s.AssignmentID)
	if err != nil {
		return nil, nil, err
	}
	return s, a, nil
}

func (uc *AssignmentUseCase) Grade(ctx context.Context, id uuid.UUID, score float64, feedback string) (*domain.Submission, *domain.Assignment, error) {
	s, a, err := uc.GetSubmission(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Grade(a, score, feedback, uc.now()); err != nil {
		return nil, nil, err
	}
	if err := uc.submissions.Save(ctx, s); err != nil {
		return nil, nil, err
	}
	return s, a, nil
}

func (uc *AssignmentUseCase) Return(ctx context.Context, id uuid.UUID, feedback string) (*domain.Submission, *domain.Assignment, error) {
	s, a, err := uc.GetSubmission(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Return(feedback); err != nil {
		return nil, nil, err
	}
	if err := uc.submissions.Save(ctx, s); err != nil {
		return nil, nil, err
	}
	return s, a, nil
}
