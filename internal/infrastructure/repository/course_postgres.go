package repository

import (
	"context"
	"strings"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db, now: utcNow}
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrCourseNotFound)
	}
	if err := r.fillCounts(ctx, []*domain.Course{&course}); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	var course domain.Course
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&course).Error; err != nil {
		return nil, notFound(err, domain.ErrCourseNotFound)
	}
	if err := r.fillCounts(ctx, []*domain.Course{&course}); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Count(&count).Error
	return count, err
}

func (r *CourseRepository) List(ctx context.Context) ([]domain.Course, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]domain.Course, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("instructor_id = ?", instructorID))
}

func (r *CourseRepository) ListPublished(ctx context.Context) ([]domain.Course, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("published = ?", true))
}

func (r *CourseRepository) ListActive(ctx context.Context) ([]domain.Course, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("active = ?", true))
}

func (r *CourseRepository) ListPublishedAndActive(ctx context.Context) ([]domain.Course, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("published = ? AND active = ?", true, true))
}

// Search matches a case-insensitive substring of title or description.
func (r *CourseRepository) Search(ctx context.Context, term string) ([]domain.Course, error) {
	p := likePattern(strings.ToLower(term))
	return r.find(ctx, r.db.WithContext(ctx).
		Where("LOWER(title) "+likeClause+" OR LOWER(description) "+likeClause, p, p))
}

// ListWithAvailableSlots returns active, published courses that are either
// unlimited or below their enrollment ceiling.
func (r *CourseRepository) ListWithAvailableSlots(ctx context.Context) ([]domain.Course, error) {
	return r.find(ctx, r.db.WithContext(ctx).
		Where("active = ? AND published = ?", true, true).
		Where("(max_enrollments IS NULL OR max_enrollments > (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = courses.id))"))
}

func (r *CourseRepository) find(ctx context.Context, q *gorm.DB) ([]domain.Course, error) {
	var courses []domain.Course
	if err := q.Order("created_at ASC, id ASC").Find(&courses).Error; err != nil {
		return nil, err
	}
	ptrs := make([]*domain.Course, len(courses))
	for i := range courses {
		ptrs[i] = &courses[i]
	}
	if err := r.fillCounts(ctx, ptrs); err != nil {
		return nil, err
	}
	return courses, nil
}

type courseCount struct {
	CourseID uuid.UUID
	Total    int64
}

// fillCounts materializes EnrollmentCount with one grouped query.
func (r *CourseRepository) fillCounts(ctx context.Context, courses []*domain.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}

	var rows []courseCount
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Select("course_id, COUNT(*) AS total").
		Where("course_id IN ?", ids).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	totals := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		totals[row.CourseID] = row.Total
	}
	for _, c := range courses {
		c.EnrollmentCount = totals[c.ID]
	}
	return nil
}

// Save inserts when the course has no id yet and updates otherwise.
func (r *CourseRepository) Save(ctx context.Context, course *domain.Course) error {
	now := r.now()
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
		course.CreatedAt = now
		course.UpdatedAt = now
		return conflict(r.db.WithContext(ctx).Create(course).Error, domain.ErrCourseCodeTaken)
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	return conflict(r.db.WithContext(ctx).Save(course).Error, domain.ErrCourseCodeTaken)
}

// Delete removes the course with its modules, lessons, assignments,
// submissions and enrollments in one transaction.
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCourseTree(tx, id)
	})
}

func deleteCourseTree(tx *gorm.DB, courseID uuid.UUID) error {
	var assignmentIDs []uuid.UUID
	if err := tx.Model(&domain.Assignment{}).Where("course_id = ?", courseID).Pluck("id", &assignmentIDs).Error; err != nil {
		return err
	}
	if len(assignmentIDs) > 0 {
		if err := tx.Where("assignment_id IN ?", assignmentIDs).Delete(&domain.Submission{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("course_id = ?", courseID).Delete(&domain.Assignment{}).Error; err != nil {
		return err
	}

	var moduleIDs []uuid.UUID
	if err := tx.Model(&domain.Module{}).Where("course_id = ?", courseID).Pluck("id", &moduleIDs).Error; err != nil {
		return err
	}
	if len(moduleIDs) > 0 {
		if err := tx.Where("module_id IN ?", moduleIDs).Delete(&domain.Lesson{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("course_id = ?", courseID).Delete(&domain.Module{}).Error; err != nil {
		return err
	}
	if err := tx.Where("course_id = ?", courseID).Delete(&domain.Enrollment{}).Error; err != nil {
		return err
	}
	return deleted(tx.Delete(&domain.Course{}, "id = ?", courseID), domain.ErrCourseNotFound)
}
