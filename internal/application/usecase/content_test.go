package usecase

import (
	"context"
	"testing"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentUseCase_ModulesAndLessons(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := NewContentUseCase(env.courses, env.modules, env.lessons)
	inst := env.mustUser(t, "inst", domain.RoleInstructor)
	c := env.mustCourse(t, "MOD1", inst.ID, nil)

	second, err := uc.CreateModule(ctx, c.ID, ModuleInput{Title: strPtr("Second"), OrderIndex: intPtr(2)})
	require.NoError(t, err)
	first, err := uc.CreateModule(ctx, c.ID, ModuleInput{Title: strPtr("First"), OrderIndex: intPtr(1), Published: boolPtr(true)})
	require.NoError(t, err)

	modules, err := uc.ListModules(ctx, c.ID, false)
	require.NoError(t, err)
	require.Len(t, modules, 2)
	assert.Equal(t, first.ID, modules[0].ID)
	assert.Equal(t, second.ID, modules[1].ID)

	published, err := uc.ListModules(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Len(t, published, 1)

	_, err = uc.CreateModule(ctx, uuid.New(), ModuleInput{Title: strPtr("Orphan")})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	_, err = uc.CreateModule(ctx, c.ID, ModuleInput{Title: strPtr("Neg"), OrderIndex: intPtr(-1)})
	assert.True(t, domain.IsValidation(err))

	l, err := uc.CreateLesson(ctx, first.ID, LessonInput{Title: strPtr("Intro"), Content: strPtr("Welcome")})
	require.NoError(t, err)
	l, err = uc.UpdateLesson(ctx, l.ID, LessonInput{VideoURL: strPtr("https://video")})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", l.Content)
	assert.Equal(t, "https://video", l.VideoURL)

	lessons, err := uc.ListLessons(ctx, first.ID, false)
	require.NoError(t, err)
	assert.Len(t, lessons, 1)

	require.NoError(t, uc.DeleteModule(ctx, first.ID))
	_, err = uc.GetLesson(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrLessonNotFound)
	assert.ErrorIs(t, uc.DeleteModule(ctx, first.ID), domain.ErrModuleNotFound)
}
