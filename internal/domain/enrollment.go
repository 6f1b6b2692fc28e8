package domain

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
	EnrollmentSuspended EnrollmentStatus = "SUSPENDED"
)

// Enrollment links one user to one course. The (user, course) pair is unique.
type Enrollment struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course;index" json:"courseId"`
	Status             EnrollmentStatus `gorm:"type:varchar(20);not null" json:"status" validate:"oneof=ACTIVE COMPLETED DROPPED SUSPENDED"`
	EnrolledAt         time.Time        `gorm:"not null" json:"enrolledAt"`
	CompletedAt        *time.Time       `json:"completedAt"`
	Grade              *string          `gorm:"size:10" json:"grade" validate:"omitempty,max=10"`
	ProgressPercentage float64          `gorm:"not null" json:"progressPercentage" validate:"gte=0,lte=100"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func NewEnrollment(userID, courseID uuid.UUID, now time.Time) *Enrollment {
	return &Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     EnrollmentActive,
		EnrolledAt: now,
	}
}

func (e *Enrollment) Validate() error {
	return Validate(e)
}

// SetProgress rejects values outside 0..100.
func (e *Enrollment) SetProgress(p float64) error {
	if p < 0 || p > 100 {
		return NewValidationError("progressPercentage", "must be between 0 and 100")
	}
	e.ProgressPercentage = p
	return nil
}

func (e *Enrollment) Complete(now time.Time, grade *string) error {
	e.Status = EnrollmentCompleted
	e.CompletedAt = &now
	e.ProgressPercentage = 100
	if grade != nil {
		e.Grade = grade
	}
	return e.Validate()
}

func (e *Enrollment) Drop() {
	e.Status = EnrollmentDropped
}
