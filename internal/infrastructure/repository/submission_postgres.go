package repository

import (
	"context"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db, now: utcNow}
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	var s domain.Submission
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrSubmissionNotFound)
	}
	return &s, nil
}

func (r *SubmissionRepository) GetByUserAndAssignment(ctx context.Context, userID, assignmentID uuid.UUID) (*domain.Submission, error) {
	var s domain.Submission
	err := r.db.WithContext(ctx).Where("user_id = ? AND assignment_id = ?", userID, assignmentID).First(&s).Error
	if err != nil {
		return nil, notFound(err, domain.ErrSubmissionNotFound)
	}
	return &s, nil
}

func (r *SubmissionRepository) List(ctx context.Context) ([]domain.Submission, error) {
	var subs []domain.Submission
	err := r.db.WithContext(ctx).Order("submitted_at ASC, id ASC").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]domain.Submission, error) {
	var subs []domain.Submission
	err := r.db.WithContext(ctx).Where("assignment_id = ?", assignmentID).Order("submitted_at ASC, id ASC").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Submission, error) {
	var subs []domain.Submission
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("submitted_at ASC, id ASC").Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) Save(ctx context.Context, s *domain.Submission) error {
	now := r.now()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
		s.CreatedAt = now
		s.UpdatedAt = now
		if s.SubmittedAt.IsZero() {
			s.SubmittedAt = now
		}
		return conflict(r.db.WithContext(ctx).Create(s).Error, domain.ErrAlreadySubmitted)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	return conflict(r.db.WithContext(ctx).Save(s).Error, domain.ErrAlreadySubmitted)
}

func (r *SubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&domain.Submission{}, "id = ?", id), domain.ErrSubmissionNotFound)
}
