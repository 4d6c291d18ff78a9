package models

import (
	"fmt"
	"time"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
)

var RequestStatuses = []RequestStatus{RequestPending, RequestApproved, RequestRejected, RequestCompleted}

// StatusTransitions lists, per current status, the statuses an admin may move a
// request to. Every status is reachable from every other one.
var StatusTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:   RequestStatuses,
	RequestApproved:  RequestStatuses,
	RequestRejected:  RequestStatuses,
	RequestCompleted: RequestStatuses,
}

func ParseRequestStatus(raw string) (RequestStatus, error) {
	s := RequestStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid request status %q", raw)
	}
	return s, nil
}

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestCompleted:
		return true
	}
	return false
}

func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range StatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SuggestedActions is what the admin console offers for a request in this
// status: approve/reject while pending, otherwise a reset back to pending.
func (s RequestStatus) SuggestedActions() []RequestStatus {
	switch s {
	case RequestPending:
		return []RequestStatus{RequestApproved, RequestRejected}
	case RequestApproved, RequestRejected, RequestCompleted:
		return []RequestStatus{RequestPending}
	default:
		return nil
	}
}

type TrainingRequest struct {
	ID          string        `json:"id" gorm:"primaryKey;size:255"`
	CreatedAt   time.Time     `json:"created_at" gorm:"not null;index"`
	UserID      string        `json:"user_id" gorm:"not null;index;size:255"`
	CourseID    string        `json:"course_id" gorm:"not null;index;size:255"`
	Status      RequestStatus `json:"status" gorm:"not null;default:pending;size:20;index"`
	AdminNotes  *string       `json:"admin_notes" gorm:"type:text"`
	ProcessedAt *time.Time    `json:"processed_at"`
}

func (TrainingRequest) TableName() string {
	return "training_requests"
}
