package handlers

import (
	"net/http"
	"time"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courses *usecase.CourseUseCase
}

func NewCourseHandler(cu *usecase.CourseUseCase) *CourseHandler {
	return &CourseHandler{courses: cu}
}

type courseRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Code           *string    `json:"code"`
	Active         *bool      `json:"active"`
	Published      *bool      `json:"published"`
	MaxEnrollments *int       `json:"maxEnrollments"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	ThumbnailURL   *string    `json:"thumbnailUrl"`
	InstructorID   *uuid.UUID `json:"instructorId"`
}

func (r courseRequest) input() usecase.CourseInput {
	return usecase.CourseInput{
		Title:          r.Title,
		Description:    r.Description,
		Code:           r.Code,
		Active:         r.Active,
		Published:      r.Published,
		MaxEnrollments: r.MaxEnrollments,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		ThumbnailURL:   r.ThumbnailURL,
		InstructorID:   r.InstructorID,
	}
}

// GET /courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.Catalog(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponses(courses))
}

// GET /courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	course, err := h.courses.Get(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponse(course))
}

// GET /courses/code/:code
func (h *CourseHandler) GetByCode(c *gin.Context) {
	course, err := h.courses.GetByCode(c, c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponse(course))
}

// GET /courses/search?q=
func (h *CourseHandler) Search(c *gin.Context) {
	courses, err := h.courses.Search(c, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponses(courses))
}

// GET /courses/available
func (h *CourseHandler) Available(c *gin.Context) {
	courses, err := h.courses.Available(c)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponses(courses))
}

// GET /courses/instructor/:instructorId
func (h *CourseHandler) ListByInstructor(c *gin.Context) {
	id, ok := pathID(c, "instructorId")
	if !ok {
		return
	}
	courses, err := h.courses.ListByInstructor(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponses(courses))
}

// POST /courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	// An authenticated caller owns the course unless another instructor is named.
	if req.InstructorID == nil {
		if caller, err := uuid.Parse(c.GetString(middleware.ContextUserID)); err == nil {
			req.InstructorID = &caller
		}
	}
	course, err := h.courses.Create(c, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponse(course))
}

// PUT /courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	course, err := h.courses.Update(c, id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCourseResponse(course))
}

// DELETE /courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.courses.Delete(c, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
