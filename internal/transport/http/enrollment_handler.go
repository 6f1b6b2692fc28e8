package handlers

import (
	"net/http"

	"lmsplatform/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EnrollmentHandler struct {
	enrollments *usecase.EnrollmentUseCase
}

func NewEnrollmentHandler(eu *usecase.EnrollmentUseCase) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: eu}
}

type enrollRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

type progressRequest struct {
	ProgressPercentage *float64 `json:"progressPercentage" binding:"required"`
}

type completeRequest struct {
	Grade *string `json:"grade"`
}

// POST /courses/:id/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := h.enrollments.Enroll(c, courseID, req.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// GET /courses/:id/enrollments
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	enrollments, err := h.enrollments.ListByCourse(c, courseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

// GET /courses/:id/students
func (h *EnrollmentHandler) Students(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.enrollments.Students(c, courseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

// GET /enrollments/:id
func (h *EnrollmentHandler) GetOne(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.enrollments.Get(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// PUT /enrollments/:id/progress
func (h *EnrollmentHandler) UpdateProgress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := h.enrollments.UpdateProgress(c, id, *req.ProgressPercentage)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// POST /enrollments/:id/complete
func (h *EnrollmentHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req completeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	e, err := h.enrollments.Complete(c, id, req.Grade)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// POST /enrollments/:id/drop
func (h *EnrollmentHandler) Drop(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.enrollments.Drop(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DELETE /enrollments/:id
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.enrollments.Delete(c, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
