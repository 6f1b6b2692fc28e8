package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMaxPoints             = 100
	DefaultLatePenaltyPercentage = 10.0
)

type Assignment struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID              uuid.UUID  `gorm:"type:uuid;index;not null" json:"courseId"`
	Title                 string     `gorm:"size:200;not null" json:"title" validate:"notblank,max=200"`
	Description           string     `gorm:"type:text" json:"description" validate:"max=2000"`
	DueDate               *time.Time `json:"dueDate"`
	MaxPoints             int        `gorm:"not null" json:"maxPoints" validate:"gte=0"`
	Published             bool       `gorm:"not null" json:"published"`
	AllowLateSubmission   bool       `gorm:"not null" json:"allowLateSubmission"`
	LatePenaltyPercentage float64    `gorm:"not null" json:"latePenaltyPercentage" validate:"gte=0,lte=100"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func NewAssignment(courseID uuid.UUID, title, description string) (*Assignment, error) {
	a := &Assignment{
		CourseID:              courseID,
		Title:                 title,
		Description:           description,
		MaxPoints:             DefaultMaxPoints,
		LatePenaltyPercentage: DefaultLatePenaltyPercentage,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Assignment) Validate() error {
	return Validate(a)
}

func (a *Assignment) IsOverdue(now time.Time) bool {
	return a.DueDate != nil && now.After(*a.DueDate)
}

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionGraded    SubmissionStatus = "GRADED"
	SubmissionReturned  SubmissionStatus = "RETURNED"
	SubmissionLate      SubmissionStatus = "LATE"
)

type Submission struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_submission_user_assignment" json:"userId"`
	AssignmentID  uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_submission_user_assignment;index" json:"assignmentId"`
	Content       string           `gorm:"type:text" json:"content" validate:"max=5000"`
	AttachmentURL string           `json:"attachmentUrl,omitempty" validate:"max=500"`
	SubmittedAt   time.Time        `gorm:"not null" json:"submittedAt"`
	GradedAt      *time.Time       `json:"gradedAt"`
	Score         *float64         `json:"score" validate:"omitempty,gte=0"`
	MaxScore      *float64         `json:"maxScore" validate:"omitempty,gte=0"`
	Feedback      string           `gorm:"type:text" json:"feedback,omitempty" validate:"max=1000"`
	Status        SubmissionStatus `gorm:"type:varchar(20);not null" json:"status" validate:"oneof=SUBMITTED GRADED RETURNED LATE"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (Submission) TableName() string {
	return "assignment_submissions"
}

// NewSubmission stamps submittedAt and marks the submission LATE when it
// arrives after the assignment's due date.
func NewSubmission(userID uuid.UUID, a *Assignment, content, attachmentURL string, now time.Time) (*Submission, error) {
	s := &Submission{
		UserID:        userID,
		AssignmentID:  a.ID,
		Content:       content,
		AttachmentURL: attachmentURL,
		SubmittedAt:   now,
		Status:        SubmissionSubmitted,
	}
	if s.IsLate(a) {
		s.Status = SubmissionLate
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Submission) Validate() error {
	return Validate(s)
}

func (s *Submission) IsLate(a *Assignment) bool {
	return a != nil && a.DueDate != nil && s.SubmittedAt.After(*a.DueDate)
}

func (s *Submission) IsGraded() bool {
	return s.Score != nil && s.GradedAt != nil
}

// PercentageScore is undefined (ok == false) unless both scores are set and
// maxScore is non-zero.
func (s *Submission) PercentageScore() (pct float64, ok bool) {
	if s.Score == nil || s.MaxScore == nil || *s.MaxScore == 0 {
		return 0, false
	}
	return *s.Score / *s.MaxScore * 100, true
}

// LateAdjustedScore applies the assignment's late penalty to a graded late
// submission. On-time submissions keep their raw score.
func (s *Submission) LateAdjustedScore(a *Assignment) (score float64, ok bool) {
	if !s.IsGraded() {
		return 0, false
	}
	if !s.IsLate(a) || !a.AllowLateSubmission {
		return *s.Score, true
	}
	return *s.Score * (1 - a.LatePenaltyPercentage/100), true
}

// Grade records score out of the assignment's maxPoints.
func (s *Submission) Grade(a *Assignment, score float64, feedback string, now time.Time) error {
	if score < 0 || score > float64(a.MaxPoints) {
		return NewValidationError("score", "must be between 0 and maxPoints")
	}
	maxScore := float64(a.MaxPoints)
	s.Score = &score
	s.MaxScore = &maxScore
	s.Feedback = feedback
	s.GradedAt = &now
	s.Status = SubmissionGraded
	return s.Validate()
}

func (s *Submission) Return(feedback string) error {
	s.Status = SubmissionReturned
	if feedback != "" {
		s.Feedback = feedback
	}
	return s.Validate()
}
