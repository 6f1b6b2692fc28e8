package handlers

import (
	"time"

	"lmsplatform/internal/domain"

	"github.com/google/uuid"
)

type courseResponse struct {
	domain.Course
	EnrollmentFull bool `json:"enrollmentFull"`
	EnrollmentOpen bool `json:"enrollmentOpen"`
}

func newCourseResponse(c *domain.Course) courseResponse {
	return courseResponse{
		Course:         *c,
		EnrollmentFull: c.IsEnrollmentFull(),
		EnrollmentOpen: c.IsEnrollmentOpen(),
	}
}

func newCourseResponses(courses []domain.Course) []courseResponse {
	out := make([]courseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, newCourseResponse(&courses[i]))
	}
	return out
}

type userResponse struct {
	domain.User
	FullName string `json:"fullName"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{User: *u, FullName: u.FullName()}
}

func newUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}

type assignmentResponse struct {
	domain.Assignment
	Overdue bool `json:"overdue"`
}

func newAssignmentResponse(a *domain.Assignment, now time.Time) assignmentResponse {
	return assignmentResponse{Assignment: *a, Overdue: a.IsOverdue(now)}
}

func newAssignmentResponses(as []domain.Assignment, now time.Time) []assignmentResponse {
	out := make([]assignmentResponse, 0, len(as))
	for i := range as {
		out = append(out, newAssignmentResponse(&as[i], now))
	}
	return out
}

type submissionResponse struct {
	domain.Submission
	Late              bool     `json:"late"`
	Graded            bool     `json:"graded"`
	PercentageScore   *float64 `json:"percentageScore"`
	LateAdjustedScore *float64 `json:"lateAdjustedScore"`
}

func newSubmissionResponse(s *domain.Submission, a *domain.Assignment) submissionResponse {
	resp := submissionResponse{
		Submission: *s,
		Late:       s.IsLate(a),
		Graded:     s.IsGraded(),
	}
	if pct, ok := s.PercentageScore(); ok {
		resp.PercentageScore = &pct
	}
	if a != nil {
		if adj, ok := s.LateAdjustedScore(a); ok {
			resp.LateAdjustedScore = &adj
		}
	}
	return resp
}

func newSubmissionResponses(subs []domain.Submission, assignments map[uuid.UUID]*domain.Assignment) []submissionResponse {
	out := make([]submissionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, newSubmissionResponse(&subs[i], assignments[subs[i].AssignmentID]))
	}
	return out
}
