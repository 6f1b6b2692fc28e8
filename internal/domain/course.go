package domain

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string     `gorm:"size:200;not null;index" json:"title" validate:"notblank,max=200"`
	Description    string     `gorm:"type:text" json:"description" validate:"max=1000"`
	Code           string     `gorm:"size:100;uniqueIndex;not null" json:"code" validate:"notblank,max=100"`
	Active         bool       `gorm:"not null" json:"active"`
	Published      bool       `gorm:"not null" json:"published"`
	MaxEnrollments *int       `json:"maxEnrollments" validate:"omitempty,gte=0"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	ThumbnailURL   string     `json:"thumbnailUrl,omitempty" validate:"max=500"`
	InstructorID   uuid.UUID  `gorm:"type:uuid;index" json:"-"`

	// Filled by the repository from the enrollments table; never stored.
	EnrollmentCount int64 `gorm:"-" json:"enrollmentCount"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// NewCourse builds an active, unpublished course.
func NewCourse(title, description, code string, instructorID uuid.UUID) (*Course, error) {
	c := &Course{
		Title:        title,
		Description:  description,
		Code:         code,
		Active:       true,
		InstructorID: instructorID,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Course) Validate() error {
	err := Validate(c)
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		err = merge(err, FieldError{Field: "endDate", Message: "must not be before startDate"})
	}
	return err
}

// IsEnrollmentFull counts every enrollment row regardless of status.
func (c *Course) IsEnrollmentFull() bool {
	return c.MaxEnrollments != nil && c.EnrollmentCount >= int64(*c.MaxEnrollments)
}

func (c *Course) IsEnrollmentOpen() bool {
	return c.Active && c.Published && !c.IsEnrollmentFull()
}

type Module struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID                 uuid.UUID `gorm:"type:uuid;index;not null" json:"courseId"`
	Title                    string    `gorm:"size:200;not null" json:"title" validate:"notblank,max=200"`
	Description              string    `gorm:"type:text" json:"description" validate:"max=1000"`
	OrderIndex               int       `gorm:"not null" json:"orderIndex" validate:"gte=0"`
	Published                bool      `gorm:"not null" json:"published"`
	EstimatedDurationMinutes *int      `json:"estimatedDurationMinutes,omitempty" validate:"omitempty,gte=0"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func NewModule(courseID uuid.UUID, title, description string, orderIndex int) (*Module, error) {
	m := &Module{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		OrderIndex:  orderIndex,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Module) Validate() error {
	return Validate(m)
}

type Lesson struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID                 uuid.UUID `gorm:"type:uuid;index;not null" json:"moduleId"`
	Title                    string    `gorm:"size:200;not null" json:"title" validate:"notblank,max=200"`
	Content                  string    `gorm:"type:text" json:"content" validate:"max=2000"`
	OrderIndex               int       `gorm:"not null" json:"orderIndex" validate:"gte=0"`
	Published                bool      `gorm:"not null" json:"published"`
	EstimatedDurationMinutes *int      `json:"estimatedDurationMinutes,omitempty" validate:"omitempty,gte=0"`
	VideoURL                 string    `json:"videoUrl,omitempty" validate:"max=500"`
	AttachmentURL            string    `json:"attachmentUrl,omitempty" validate:"max=500"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func NewLesson(moduleID uuid.UUID, title, content string, orderIndex int) (*Lesson, error) {
	l := &Lesson{
		ModuleID:   moduleID,
		Title:      title,
		Content:    content,
		OrderIndex: orderIndex,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lesson) Validate() error {
	return Validate(l)
}
