package handlers

import (
	"net/http"
	"strconv"

	"lmsplatform/internal/application/usecase"
	"lmsplatform/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users       *usecase.UserUseCase
	enrollments *usecase.EnrollmentUseCase
	assignments *usecase.AssignmentUseCase
}

func NewUserHandler(uu *usecase.UserUseCase, eu *usecase.EnrollmentUseCase, au *usecase.AssignmentUseCase) *UserHandler {
	return &UserHandler{users: uu, enrollments: eu, assignments: au}
}

type userRequest struct {
	Username       *string          `json:"username"`
	Email          *string          `json:"email"`
	Password       *string          `json:"password"`
	FirstName      *string          `json:"firstName"`
	LastName       *string          `json:"lastName"`
	Role           *domain.UserRole `json:"role"`
	Active         *bool            `json:"active"`
	ProfilePicture *string          `json:"profilePicture"`
	Bio            *string          `json:"bio"`
}

func (r userRequest) input() usecase.UserInput {
	return usecase.UserInput{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Role:           r.Role,
		Active:         r.Active,
		ProfilePicture: r.ProfilePicture,
		Bio:            r.Bio,
	}
}

// GET /users?role=&active=
func (h *UserHandler) List(c *gin.Context) {
	var f usecase.UserFilter
	if raw := c.Query("role"); raw != "" {
		role := domain.UserRole(raw)
		if !role.Valid() {
			writeError(c, domain.NewValidationError("role", "must be one of [STUDENT INSTRUCTOR ADMIN]"))
			return
		}
		f.Role = &role
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, domain.NewValidationError("active", "must be a boolean"))
			return
		}
		f.ActiveOnly = active
	}
	users, err := h.users.List(c, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

// GET /users/:id
func (h *UserHandler) GetOne(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// GET /users/username/:username
func (h *UserHandler) GetByUsername(c *gin.Context) {
	user, err := h.users.GetByUsername(c, c.Param("username"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// GET /users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	users, err := h.users.Search(c, c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.Create(c, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// PUT /users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	user, err := h.users.Update(c, id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c, id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GET /users/:id/enrollments
func (h *UserHandler) Enrollments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	enrollments, err := h.enrollments.ListByUser(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

// GET /users/:id/submissions
func (h *UserHandler) Submissions(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	subs, assignments, err := h.assignments.ListUserSubmissions(c, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSubmissionResponses(subs, assignments))
}
