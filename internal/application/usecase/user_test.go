package usecase

import (
	"context"
	"testing"

	"lmsplatform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserUseCase_CreateThenGetByUsername(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.userUseCase()

	created := env.mustUser(t, "alice", domain.RoleStudent)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.True(t, created.Active)

	got, err := uc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice@lms.com", got.Email)
	assert.NoError(t, env.hasher.Compare(got.PasswordHash, "secret123"))
}

func TestUserUseCase_DuplicateUsernameKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.userUseCase()
	first := env.mustUser(t, "admin", domain.RoleAdmin)

	_, err := uc.Create(ctx, UserInput{
		Username:  strPtr("admin"),
		Email:     strPtr("other@lms.com"),
		Password:  strPtr("another1"),
		FirstName: strPtr("Eve"),
		LastName:  strPtr("Intruder"),
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := uc.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "admin@lms.com", got.Email)
	assert.Equal(t, domain.RoleAdmin, got.Role)

	_, err = uc.Create(ctx, UserInput{
		Username:  strPtr("admin2"),
		Email:     strPtr("admin@lms.com"),
		Password:  strPtr("another1"),
		FirstName: strPtr("Eve"),
		LastName:  strPtr("Intruder"),
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestUserUseCase_PasswordRules(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.userUseCase()

	_, err := uc.Create(ctx, UserInput{
		Username:  strPtr("bob"),
		Email:     strPtr("bob@lms.com"),
		Password:  strPtr("123"),
		FirstName: strPtr("Bob"),
		LastName:  strPtr("Smith"),
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "password", ve.Fields[0].Field)

	u := env.mustUser(t, "carol", domain.RoleStudent)
	updated, err := uc.Update(ctx, u.ID, UserInput{Password: strPtr("newsecret"), Bio: strPtr("hi")})
	require.NoError(t, err)
	assert.NoError(t, env.hasher.Compare(updated.PasswordHash, "newsecret"))
	assert.Equal(t, "hi", updated.Bio)
}

func TestUserUseCase_ListFilters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.userUseCase()
	env.mustUser(t, "stu1", domain.RoleStudent)
	s2 := env.mustUser(t, "stu2", domain.RoleStudent)
	env.mustUser(t, "inst1", domain.RoleInstructor)
	_, err := uc.Update(ctx, s2.ID, UserInput{Active: boolPtr(false)})
	require.NoError(t, err)

	role := domain.RoleStudent
	all, err := uc.List(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	students, err := uc.List(ctx, UserFilter{Role: &role})
	require.NoError(t, err)
	assert.Len(t, students, 2)

	activeStudents, err := uc.List(ctx, UserFilter{Role: &role, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, activeStudents, 1)

	active, err := uc.List(ctx, UserFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestUserUseCase_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	uc := env.userUseCase()
	u := env.mustUser(t, "dave", domain.RoleStudent)

	require.NoError(t, uc.Delete(ctx, u.ID))
	assert.ErrorIs(t, uc.Delete(ctx, u.ID), domain.ErrUserNotFound)
	_, err := uc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
