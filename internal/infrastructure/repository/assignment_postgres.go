package repository

import (
	"context"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Due dates sort ascending with unset due dates last, then by id.
const dueDateOrder = "CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, id ASC"

type AssignmentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db, now: utcNow}
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Assignment, error) {
	var a domain.Assignment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrAssignmentNotFound)
	}
	return &a, nil
}

func (r *AssignmentRepository) List(ctx context.Context) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	err := r.db.WithContext(ctx).Order(dueDateOrder).Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByCourseAndPublished(ctx context.Context, courseID uuid.UUID) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND published = ?", courseID, true).
		Order(dueDateOrder).
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByCourseOrdered(ctx context.Context, courseID uuid.UUID) ([]domain.Assignment, error) {
	var assignments []domain.Assignment
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order(dueDateOrder).
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Assignment{}).Count(&count).Error
	return count, err
}

func (r *AssignmentRepository) Save(ctx context.Context, a *domain.Assignment) error {
	now := r.now()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
		a.CreatedAt = now
		a.UpdatedAt = now
		return r.db.WithContext(ctx).Create(a).Error
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete removes the assignment and its submissions.
func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("assignment_id = ?", id).Delete(&domain.Submission{}).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&domain.Assignment{}, "id = ?", id), domain.ErrAssignmentNotFound)
	})
}
