package handlers

import (
	"net/http"
	"time"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AssignmentHandler struct {
	assignments *usecase.AssignmentUseCase
}

func NewAssignmentHandler(au *usecase.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{assignments: au}
}

type assignmentRequest struct {
	Title                 *string    `json:"title"`
	Description           *string    `json:"description"`
	DueDate               *time.Time `json:"dueDate"`
	MaxPoints             *int       `json:"maxPoints"`
	Published             *bool      `json:"published"`
	AllowLateSubmission   *bool      `json:"allowLateSubmission"`
	LatePenaltyPercentage *float64   `json:"latePenaltyPercentage"`
}

func (r assignmentRequest) input() usecase.AssignmentInput {
	return usecase.AssignmentInput{
		Title:                 r.Title,
		Description:           r.Description,
		DueDate:               r.DueDate,
		MaxPoints:             r.MaxPoints,
		Published:             r.Published,
		AllowLateSubmission:   r.AllowLateSubmission,
		LatePenaltyPercentage: r.LatePenaltyPercentage,
	}
}

type submitRequest struct {
	UserID        uuid.UUID `json:"userId" binding:"required"`
	Content       string    `json:"content"`
	AttachmentURL string    `json:"attachmentUrl"`
}

type gradeRequest struct {
	Score    *float64 `json:"score" binding:"required"`
	Feedback string   `json:"feedback"`
}

type returnRequest struct {
	Feedback string `json:"feedback"`
}

// GET /courses/:id/assignments?published=true
func (h *AssignmentHandler) List(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	as, err := h.assignments.List(c, courseID, c.Query("published") == "true")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAssignmentResponses(as, h.assignments.Now()))
}

// POST /courses/:id/assignments
func (h *AssignmentHandler) Create(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.assignments.Create(c, courseID, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAssignmentResponse(a, h.assignments.Now()))
}

// GET /assignments/:id
func (h *AssignmentHandler) GetOne(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.assignments.Get(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAssignmentResponse(a, h.assignments.Now()))
}

// PUT /assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req assignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.assignments.Update(c, id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAssignmentResponse(a, h.assignments.Now()))
}

// DELETE /assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.assignments.Delete(c, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// POST /assignments/:id/submissions
func (h *AssignmentHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, a, err := h.assignments.Submit(c, id, usecase.SubmissionInput{
		UserID:        req.UserID,
		Content:       req.Content,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubmissionResponse(s, a))
}

// GET /assignments/:id/submissions
func (h *AssignmentHandler) ListSubmissions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	subs, a, err := h.assignments.ListSubmissions(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubmissionResponses(subs, map[uuid.UUID]*domain.Assignment{a.ID: a}))
}

// GET /submissions/:id
func (h *AssignmentHandler) GetSubmission(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	s, a, err := h.assignments.GetSubmission(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubmissionResponse(s, a))
}

// POST /submissions/:id/grade
func (h *AssignmentHandler) Grade(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, a, err := h.assignments.Grade(c, id, *req.Score, req.Feedback)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubmissionResponse(s, a))
}

// POST /submissions/:id/return
func (h *AssignmentHandler) Return(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req returnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	s, a, err := h.assignments.Return(c, id, req.Feedback)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubmissionResponse(s, a))
}
