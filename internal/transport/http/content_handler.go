package handlers

import (
	"net/http"

	"lmsplatform/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	content *usecase.ContentUseCase
}

func NewContentHandler(cu *usecase.ContentUseCase) *ContentHandler {
	return &ContentHandler{content: cu}
}

type moduleRequest struct {
	Title                    *string `json:"title"`
	Description              *string `json:"description"`
	OrderIndex               *int    `json:"orderIndex"`
	Published                *bool   `json:"published"`
	EstimatedDurationMinutes *int    `json:"estimatedDurationMinutes"`
}

func (r moduleRequest) input() usecase.ModuleInput {
	return usecase.ModuleInput{
		Title:                    r.Title,
		Description:              r.Description,
		OrderIndex:               r.OrderIndex,
		Published:                r.Published,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
	}
}

type lessonRequest struct {
	Title                    *string `json:"title"`
	Content                  *string `json:"content"`
	OrderIndex               *int    `json:"orderIndex"`
	Published                *bool   `json:"published"`
	EstimatedDurationMinutes *int    `json:"estimatedDurationMinutes"`
	VideoURL                 *string `json:"videoUrl"`
	AttachmentURL            *string `json:"attachmentUrl"`
}

func (r lessonRequest) input() usecase.LessonInput {
	return usecase.LessonInput{
		Title:                    r.Title,
		Content:                  r.Content,
		OrderIndex:               r.OrderIndex,
		Published:                r.Published,
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		VideoURL:                 r.VideoURL,
		AttachmentURL:            r.AttachmentURL,
	}
}

// GET /courses/:id/modules?published=true
func (h *ContentHandler) ListModules(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	modules, err := h.content.ListModules(c, courseID, c.Query("published") == "true")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

// POST /courses/:id/modules
func (h *ContentHandler) CreateModule(c *gin.Context) {
	courseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req moduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	module, err := h.content.CreateModule(c, courseID, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// GET /modules/:id
func (h *ContentHandler) GetModule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	module, err := h.content.GetModule(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// PUT /modules/:id
func (h *ContentHandler) UpdateModule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req moduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	module, err := h.content.UpdateModule(c, id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// DELETE /modules/:id
func (h *ContentHandler) DeleteModule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteModule(c, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GET /modules/:id/lessons?published=true
func (h *ContentHandler) ListLessons(c *gin.Context) {
	moduleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lessons, err := h.content.ListLessons(c, moduleID, c.Query("published") == "true")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// POST /modules/:id/lessons
func (h *ContentHandler) CreateLesson(c *gin.Context) {
	moduleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lesson, err := h.content.CreateLesson(c, moduleID, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// GET /lessons/:id
func (h *ContentHandler) GetLesson(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	lesson, err := h.content.GetLesson(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// PUT /lessons/:id
func (h *ContentHandler) UpdateLesson(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req lessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lesson, err := h.content.UpdateLesson(c, id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// DELETE /lessons/:id
func (h *ContentHandler) DeleteLesson(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.content.DeleteLesson(c, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
