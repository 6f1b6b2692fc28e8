package repository

import (
	"context"
	"strings"
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, now: utcNow}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *UserRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	return r.find(r.db.WithContext(ctx).Where("role = ?", role))
}

func (r *UserRepository) ListActive(ctx context.Context) ([]domain.User, error) {
	return r.find(r.db.WithContext(ctx).Where("active = ?", true))
}

func (r *UserRepository) ListByRoleAndActive(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	return r.find(r.db.WithContext(ctx).Where("role = ? AND active = ?", role, true))
}

// SearchByName matches a case-insensitive substring of first or last name.
func (r *UserRepository) SearchByName(ctx context.Context, term string) ([]domain.User, error) {
	p := likePattern(strings.ToLower(term))
	return r.find(r.db.WithContext(ctx).
		Where("LOWER(first_name) "+likeClause+" OR LOWER(last_name) "+likeClause, p, p))
}

// ListEnrolledInCourse returns each user with at least one enrollment row
// for the course, once.
func (r *UserRepository) ListEnrolledInCourse(ctx context.Context, courseID uuid.UUID) ([]domain.User, error) {
	db := r.db.WithContext(ctx)
	sub := db.Model(&domain.Enrollment{}).Select("user_id").Where("course_id = ?", courseID)
	return r.find(db.Where("id IN (?)", sub))
}

func (r *UserRepository) find(q *gorm.DB) ([]domain.User, error) {
	var users []domain.User
	err := q.Order("username ASC, id ASC").Find(&users).Error
	return users, err
}

// Save inserts when the user has no id yet and updates otherwise.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	now := r.now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
		user.CreatedAt = now
		user.UpdatedAt = now
		return conflict(r.db.WithContext(ctx).Create(user).Error, domain.ErrUserAlreadyExists)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return conflict(r.db.WithContext(ctx).Save(user).Error, domain.ErrUserAlreadyExists)
}

// Delete removes the user together with their submissions, enrollments and
// every course they instruct.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var courseIDs []uuid.UUID
		if err := tx.Model(&domain.Course{}).Where("instructor_id = ?", id).Pluck("id", &courseIDs).Error; err != nil {
			return err
		}
		for _, courseID := range courseIDs {
			if err := deleteCourseTree(tx, courseID); err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Enrollment{}).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&domain.User{}, "id = ?", id), domain.ErrUserNotFound)
	})
}
