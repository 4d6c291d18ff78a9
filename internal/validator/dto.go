package validator

// StatusChangeRequest is the admin console's status transition input
type StatusChangeRequest struct {
	RequestID string `json:"-" validate:"required,course_ref"`
	Status    string `json:"status" validate:"required,request_status"`
}

// NoteRequest sets or clears the admin note; an empty note is allowed
type NoteRequest struct {
	RequestID string `json:"-" validate:"required,course_ref"`
	Note      string `json:"note" validate:"max=10000"`
}

// InquiryRequest is what a signed-in user sends to ask for a course
type InquiryRequest struct {
	CourseID    string `json:"course_id" validate:"required,course_ref"`
	CourseTitle string `json:"course_title" validate:"required,course_ref,max=200"`
}
