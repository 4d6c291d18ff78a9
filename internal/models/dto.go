package models

import "time"

// AdminRequestRow is a training request enriched at read time with the owner's
// profile and the course title. Missing joins stay nil.
type AdminRequestRow struct {
	TrainingRequest
	CourseTitle      *string         `json:"course_title"`
	UserFullName     *string         `json:"user_full_name"`
	UserDepartment   *string         `json:"user_department"`
	SuggestedActions []RequestStatus `json:"suggested_actions"`
}

// OwnRequestRow is what a member sees about their own requests. It carries no
// admin fields.
type OwnRequestRow struct {
	ID          string        `json:"id"`
	CreatedAt   time.Time     `json:"created_at"`
	Status      RequestStatus `json:"status"`
	CourseID    string        `json:"course_id"`
	CourseTitle *string       `json:"course_title"`
}

type TopicDetail struct {
	Topic   *Topic    `json:"topic"`
	Courses []*Course `json:"courses"`
}

type CallerProfile struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	FullName   *string  `json:"full_name"`
	Department *string  `json:"department"`
	Role       UserRole `json:"role"`
}

// ===== RESPONSES =====

// ActionResult is returned by every mutation entry point.
type ActionResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

type ErrorResponse struct {
	Error            string                    `json:"error"`
	Message          string                    `json:"message"`
	Details          interface{}               `json:"details,omitempty"`
	Timestamp        time.Time                 `json:"timestamp"`
	Path             string                    `json:"path"`
	ValidationErrors []ValidationErrorResponse `json:"validation_errors,omitempty"`
}
