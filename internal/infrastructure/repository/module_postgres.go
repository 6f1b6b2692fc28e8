package repository

import (
	"context"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ModuleRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{db: db, now: utcNow}
}

func (r *ModuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Module, error) {
	var m domain.Module
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrModuleNotFound)
	}
	return &m, nil
}

func (r *ModuleRepository) List(ctx context.Context) ([]domain.Module, error) {
	var modules []domain.Module
	err := r.db.WithContext(ctx).Order("course_id ASC, order_index ASC, id ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]domain.Module, error) {
	var modules []domain.Module
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) ListByCourseAndPublished(ctx context.Context, courseID uuid.UUID) ([]domain.Module, error) {
	var modules []domain.Module
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND published = ?", courseID, true).
		Order("order_index ASC, id ASC").
		Find(&modules).Error
	return modules, err
}

// ListByCourseOrdered sorts by orderIndex, breaking ties by id.
func (r *ModuleRepository) ListByCourseOrdered(ctx context.Context, courseID uuid.UUID) ([]domain.Module, error) {
	var modules []domain.Module
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_index ASC, id ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Module{}).Count(&count).Error
	return count, err
}

func (r *ModuleRepository) Save(ctx context.Context, m *domain.Module) error {
	now := r.now()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
		m.CreatedAt = now
		m.UpdatedAt = now
		return r.db.WithContext(ctx).Create(m).Error
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete removes the module and its lessons.
func (r *ModuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", id).Delete(&domain.Lesson{}).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&domain.Module{}, "id = ?", id), domain.ErrModuleNotFound)
	})
}

type LessonRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db, now: utcNow}
}

func (r *LessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	var l domain.Lesson
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrLessonNotFound)
	}
	return &l, nil
}

func (r *LessonRepository) List(ctx context.Context) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).Order("module_id ASC, order_index ASC, id ASC").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListByModule(ctx context.Context, moduleID uuid.UUID) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).Where("module_id = ?", moduleID).Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListByModuleAndPublished(ctx context.Context, moduleID uuid.UUID) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Where("module_id = ? AND published = ?", moduleID, true).
		Order("order_index ASC, id ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListByModuleOrdered(ctx context.Context, moduleID uuid.UUID) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("order_index ASC, id ASC").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Lesson{}).Count(&count).Error
	return count, err
}

func (r *LessonRepository) Save(ctx context.Context, l *domain.Lesson) error {
	now := r.now()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
		l.CreatedAt = now
		l.UpdatedAt = now
		return r.db.WithContext(ctx).Create(l).Error
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleted(r.db.WithContext(ctx).Delete(&domain.Lesson{}, "id = ?", id), domain.ErrLessonNotFound)
}
