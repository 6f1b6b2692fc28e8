package usecase

import (
	"context"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
)

// ContentUseCase manages the module and lesson tree beneath a course.
type ContentUseCase struct {
	courses CourseRepository
	modules ModuleRepository
	lessons LessonRepository
}

func NewContentUseCase(cr CourseRepository, mr ModuleRepository, lr LessonRepository) *ContentUseCase {
	return &ContentUseCase{courses: cr, modules: mr, lessons: lr}
}

type ModuleInput struct {
	Title                    *string
	Description              *string
	OrderIndex               *int
	Published                *bool
	EstimatedDurationMinutes *int
}

type LessonInput struct {
	Title                    *string
	Content                  *string
	OrderIndex               *int
	Published                *bool
	EstimatedDurationMinutes *int
	VideoURL                 *string
	AttachmentURL            *string
}

func (in ModuleInput) apply(m *domain.Module) {
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.OrderIndex != nil {
		m.OrderIndex = *in.OrderIndex
	}
	if in.Published != nil {
		m.Published = *in.Published
	}
	if in.EstimatedDurationMinutes != nil {
		m.EstimatedDurationMinutes = in.EstimatedDurationMinutes
	}
}

func (in LessonInput) apply(l *domain.Lesson) {
	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.Content != nil {
		l.Content = *in.Content
	}
	if in.OrderIndex != nil {
		l.OrderIndex = *in.OrderIndex
	}
	if in.Published != nil {
		l.Published = *in.Published
	}
	if in.EstimatedDurationMinutes != nil {
		l.EstimatedDurationMinutes = in.EstimatedDurationMinutes
	}
	if in.VideoURL != nil {
		l.VideoURL = *in.VideoURL
	}
	if in.AttachmentURL != nil {
		l.AttachmentURL = *in.AttachmentURL
	}
}

// ListModules returns the course's modules by orderIndex.
func (uc *ContentUseCase) ListModules(ctx context.Context, courseID uuid.UUID, publishedOnly bool) ([]domain.Module, error) {
	if _, err := uc.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	if publishedOnly {
		return uc.modules.ListByCourseAndPublished(ctx, courseID)
	}
	return uc.modules.ListByCourseOrdered(ctx, courseID)
}

func (uc *ContentUseCase) GetModule(ctx context.Context, id uuid.UUID) (*domain.Module, error) {
	return uc.modules.GetByID(ctx, id)
}

func (uc *ContentUseCase) CreateModule(ctx context.Context, courseID uuid.UUID, in ModuleInput) (*domain.Module, error) {
	if _, err := uc.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	m := &domain.Module{CourseID: courseID}
	in.apply(m)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := uc.modules.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *ContentUseCase) UpdateModule(ctx context.Context, id uuid.UUID, in ModuleInput) (*domain.Module, error) {
	m, err := uc.modules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(m)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := uc.modules.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *ContentUseCase) DeleteModule(ctx context.Context, id uuid.UUID) error {
	return uc.modules.Delete(ctx, id)
}

func (uc *ContentUseCase) ListLessons(ctx context.Context, moduleID uuid.UUID, publishedOnly bool) ([]domain.Lesson, error) {
	if _, err := uc.modules.GetByID(ctx, moduleID); err != nil {
		return nil, err
	}
	if publishedOnly {
		return uc.lessons.ListByModuleAndPublished(ctx, moduleID)
	}
	return uc.lessons.ListByModuleOrdered(ctx, moduleID)
}

func (uc *ContentUseCase) GetLesson(ctx context.Context, id uuid.UUID) (*domain.Lesson, error) {
	return uc.lessons.GetByID(ctx, id)
}

func (uc *ContentUseCase) CreateLesson(ctx context.Context, moduleID uuid.UUID, in LessonInput) (*domain.Lesson, error) {
	if _, err := uc.modules.GetByID(ctx, moduleID); err != nil {
		return nil, err
	}
	l := &domain.Lesson{ModuleID: moduleID}
	in.apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := uc.lessons.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *ContentUseCase) UpdateLesson(ctx context.Context, id uuid.UUID, in LessonInput) (*domain.Lesson, error) {
	l, err := uc.lessons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(l)
	if err := l.Validate(); err != nil {
		return nil, err
	}
	if err := uc.lessons.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *ContentUseCase) DeleteLesson(ctx context.Context, id uuid.UUID) error {
	return uc.lessons.Delete(ctx, id)
}
