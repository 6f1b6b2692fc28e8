package repository

import (
	"context"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, now: utcNow}
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enrollment, error) {
	var e domain.Enrollment
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrEnrollmentNotFound)
	}
	return &e, nil
}

func (r *EnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if err != nil {
		return nil, notFound(err, domain.ErrEnrollmentNotFound)
	}
	return &e, nil
}

func (r *EnrollmentRepository) List(ctx context.Context) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).Order("enrolled_at ASC, id ASC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("enrolled_at ASC, id ASC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Enrollment, error) {
	var enrollments []domain.Enrollment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("enrolled_at ASC, id ASC").Find(&enrollments).Error
	return enrollments, err
}

// CountByCourse counts every enrollment row of the course, whatever its status.
func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID uuid.UUID) (int64, error) {
	return countEnrollments(r.db.WithContext(ctx), courseID)
}

func countEnrollments(db *gorm.DB, courseID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&domain.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) Save(ctx context.Context, e *domain.Enrollment) error {
	return r.save(r.db.WithContext(ctx), e)
}

func (r *EnrollmentRepository) save(db *gorm.DB, e *domain.Enrollment) error {
	now := r.now()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
		e.CreatedAt = now
		e.UpdatedAt = now
		if e.EnrolledAt.IsZero() {
			e.EnrolledAt = now
		}
		return conflict(db.Create(e).Error, domain.ErrAlreadyEnrolled)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	return conflict(db.Save(e).Error, domain.ErrAlreadyEnrolled)
}

// EnrollWithCapacity inserts e while holding a row lock on its course, so
// concurrent enrollments cannot push the course past maxEnrollments.
func (r *EnrollmentRepository) EnrollWithCapacity(ctx context.Context, e *domain.Enrollment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course domain.Course
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&course, "id = ?", e.CourseID).Error
		if err != nil {
			return notFound(err, domain.ErrCourseNotFound)
		}

		var dup int64
		err = tx.Model(&domain.Enrollment{}).
			Where("user_id = ? AND course_id = ?", e.UserID, e.CourseID).
			Count(&dup).Error
		if err != nil {
			return err
		}
		if dup > 0 {
			return domain.ErrAlreadyEnrolled
		}

		if course.EnrollmentCount, err = countEnrollments(tx, course.ID); err != nil {
			return err
		}
		if course.IsEnrollmentFull() {
			return domain.ErrCourseFull
		}
		return r.save(tx, e)
	})
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&domain.Enrollment{}, "id = ?", id), domain.ErrEnrollmentNotFound)
}
