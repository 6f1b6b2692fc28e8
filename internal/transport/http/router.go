package handlers

import (
	"time"

	"lmsplatform/internal/domain"
	"lmsplatform/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowedOrigins []string
	// AuthEnabled puts every mutating route behind a bearer token and
	// limits course authoring and grading to instructors and admins.
	AuthEnabled bool
}

type Handlers struct {
	Courses     *CourseHandler
	Users       *UserHandler
	Content     *ContentHandler
	Assignments *AssignmentHandler
	Enrollments *EnrollmentHandler
	// Auth and Validator may be nil when authentication is disabled.
	Auth      *AuthHandler
	Validator middleware.AccessValidator
	Limiter   *middleware.RateLimiter
}

// NewRouter serves every route at the root and again under /api/v1.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = cfg.AllowedOrigins
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	pass := func(c *gin.Context) { c.Next() }
	write, staff := pass, pass
	if cfg.AuthEnabled && h.Validator != nil {
		write = middleware.AuthMiddleware(h.Validator)
		staff = middleware.RequireRole(string(domain.RoleInstructor), string(domain.RoleAdmin))
	}

	register(r, h, write, staff)
	register(r.Group("/api/v1"), h, write, staff)
	return r
}

// register mounts every route on g. write authenticates mutations; staff
// follows write on course authoring and grading routes.
func register(g gin.IRoutes, h Handlers, write, staff gin.HandlerFunc) {
	if h.Auth != nil {
		g.POST("/auth/login", h.Limiter.Limit("login", 5, 1*time.Minute), h.Auth.Login)
		g.POST("/auth/refresh", h.Auth.Refresh)
		g.POST("/auth/logout", h.Auth.Logout)
	}

	g.GET("/courses", h.Courses.List)
	g.GET("/courses/search", h.Courses.Search)
	g.GET("/courses/available", h.Courses.Available)
	g.GET("/courses/code/:code", h.Courses.GetByCode)
	g.GET("/courses/instructor/:instructorId", h.Courses.ListByInstructor)
	g.GET("/courses/:id", h.Courses.GetOne)
	g.POST("/courses", write, staff, h.Courses.Create)
	g.PUT("/courses/:id", write, staff, h.Courses.Update)
	g.DELETE("/courses/:id", write, staff, h.Courses.Delete)

	g.GET("/courses/:id/modules", h.Content.ListModules)
	g.POST("/courses/:id/modules", write, staff, h.Content.CreateModule)
	g.GET("/modules/:id", h.Content.GetModule)
	g.PUT("/modules/:id", write, staff, h.Content.UpdateModule)
	g.DELETE("/modules/:id", write, staff, h.Content.DeleteModule)
	g.GET("/modules/:id/lessons", h.Content.ListLessons)
	g.POST("/modules/:id/lessons", write, staff, h.Content.CreateLesson)
	g.GET("/lessons/:id", h.Content.GetLesson)
	g.PUT("/lessons/:id", write, staff, h.Content.UpdateLesson)
	g.DELETE("/lessons/:id", write, staff, h.Content.DeleteLesson)

	g.GET("/courses/:id/assignments", h.Assignments.List)
	g.POST("/courses/:id/assignments", write, staff, h.Assignments.Create)
	g.GET("/assignments/:id", h.Assignments.GetOne)
	g.PUT("/assignments/:id", write, staff, h.Assignments.Update)
	g.DELETE("/assignments/:id", write, staff, h.Assignments.Delete)
	g.GET("/assignments/:id/submissions", h.Assignments.ListSubmissions)
	g.POST("/assignments/:id/submissions", write, h.Assignments.Submit)
	g.GET("/submissions/:id", h.Assignments.GetSubmission)
	g.POST("/submissions/:id/grade", write, staff, h.Assignments.Grade)
	g.POST("/submissions/:id/return", write, staff, h.Assignments.Return)

	g.POST("/courses/:id/enrollments", write, h.Enrollments.Enroll)
	g.GET("/courses/:id/enrollments", h.Enrollments.ListByCourse)
	g.GET("/courses/:id/students", h.Enrollments.Students)
	g.GET("/enrollments/:id", h.Enrollments.GetOne)
	g.PUT("/enrollments/:id/progress", write, h.Enrollments.UpdateProgress)
	g.POST("/enrollments/:id/complete", write, h.Enrollments.Complete)
	g.POST("/enrollments/:id/drop", write, h.Enrollments.Drop)
	g.DELETE("/enrollments/:id", write, h.Enrollments.Delete)

	g.GET("/users", h.Users.List)
	g.GET("/users/search", h.Users.Search)
	g.GET("/users/username/:username", h.Users.GetByUsername)
	g.GET("/users/:id", h.Users.GetOne)
	g.GET("/users/:id/enrollments", h.Users.Enrollments)
	g.GET("/users/:id/submissions", h.Users.Submissions)
	g.POST("/users", write, h.Users.Create)
	g.PUT("/users/:id", write, h.Users.Update)
	g.DELETE("/users/:id", write, h.Users.Delete)
}
