package services

import (
	"context"
	"errors"
	"testing"

	"github.com/seminar-portal/portal-service/internal/events"
	"github.com/seminar-portal/portal-service/internal/models"
)

func TestInquiry_CreateRequestTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.inquiry.CreateRequest(ctx, f.as(memberUser), "course-123")
	if err != nil {
		t.Fatalf("first CreateRequest() error = %v", err)
	}
	second, err := f.inquiry.CreateRequest(ctx, f.as(memberUser), "course-123")
	if err != nil {
		t.Fatalf("second CreateRequest() error = %v", err)
	}

	if first.ID == "" || first.ID == second.ID {
		t.Fatalf("expected two distinct ids, got %q and %q", first.ID, second.ID)
	}

	for _, id := range []string{first.ID, second.ID} {
		stored := f.load(t, id)
		if stored.Status != models.RequestPending {
			t.Errorf("%s: status = %s, want pending", id, stored.Status)
		}
		if stored.ProcessedAt != nil || stored.AdminNotes != nil {
			t.Errorf("%s: processed_at/admin_notes should be null: %+v", id, stored)
		}
		if stored.UserID != memberUser.ID || stored.CourseID != "course-123" {
			t.Errorf("%s: owner/course = %s/%s", id, stored.UserID, stored.CourseID)
		}
		if !stored.CreatedAt.Equal(fixedNow) {
			t.Errorf("%s: created_at = %v, want %v", id, stored.CreatedAt, fixedNow)
		}
	}

	published := f.events.GetPublishedEvents()
	if len(published) != 2 || published[0].Type != events.TypeRequestCreated {
		t.Errorf("expected two created events, got %+v", published)
	}
}

func TestInquiry_AdminIsNotRequired(t *testing.T) {
	f := newFixture(t)
	for _, caller := range []*models.Identity{memberUser, adminUser, otherUser} {
		if _, err := f.inquiry.CreateRequest(context.Background(), f.as(caller), "course-456"); err != nil {
			t.Errorf("CreateRequest() as %s error = %v", caller.ID, err)
		}
	}
}

func TestInquiry_CreateRequest_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		caller   *models.Identity
		courseID string
		wantErr  []error
	}{
		{name: "anonymous", caller: nil, courseID: "course-123", wantErr: []error{ErrUnauthenticated}},
		{name: "blank course", caller: memberUser, courseID: "   ", wantErr: []error{ErrValidationFailed}},
		{name: "unknown course", caller: memberUser, courseID: "course-999", wantErr: []error{ErrValidationFailed, ErrCourseNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.inquiry.CreateRequest(ctx, f.as(tt.caller), tt.courseID)
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("CreateRequest() error = %v, want %v", err, want)
				}
			}
		})
	}

	var count int64
	f.db.Model(&models.TrainingRequest{}).Count(&count)
	if count != 0 {
		t.Errorf("failed calls inserted %d rows", count)
	}
}

func TestInquiry_SubmitInquiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  *models.Identity
		req     *InquiryRequest
		wantErr error
	}{
		{name: "ok", caller: memberUser, req: &InquiryRequest{CourseID: "course-123", CourseTitle: "Go Basics"}},
		{name: "anonymous gets a message, not a validation error", caller: nil, req: &InquiryRequest{}, wantErr: ErrUnauthenticated},
		{name: "missing title", caller: memberUser, req: &InquiryRequest{CourseID: "course-123"}, wantErr: ErrValidationFailed},
		{name: "missing course", caller: memberUser, req: &InquiryRequest{CourseTitle: "Go Basics"}, wantErr: ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.inquiry.SubmitInquiry(ctx, f.as(tt.caller), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SubmitInquiry() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SubmitInquiry() error = %v", err)
			}
			if got.Status != models.RequestPending {
				t.Errorf("status = %s", got.Status)
			}
		})
	}
}
