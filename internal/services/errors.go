package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated  = errors.New("not signed in")
	ErrForbidden        = errors.New("permission denied")
	ErrValidationFailed = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")

	ErrRequestNotFound = fmt.Errorf("training request %w", ErrNotFound)
	ErrCourseNotFound  = fmt.Errorf("course %w", ErrNotFound)
	ErrTopicNotFound   = fmt.Errorf("topic %w", ErrNotFound)
)

// PermissionError describes a denied privileged operation. It matches ErrForbidden.
type PermissionError struct {
	UserID   string
	Resource string
	Action   string
	Reason   string
}

func NewPermissionError(userID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Unwrap() error {
	return ErrForbidden
}

// invalidInput tags err as a validation failure while keeping it inspectable
func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}
