package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/seminar-portal/portal-service/internal/models"
)

const exportSheet = "Requests"

var exportHeaders = []string{"Created", "User", "Department", "Course", "Status", "Processed", "Notes"}

type adminService struct {
	gate   AccessGate
	logger *slog.Logger
}

func NewAdminService(gate AccessGate, logger *slog.Logger) AdminService {
	return &adminService{
		gate:   gate,
		logger: logger,
	}
}

// ListAllRequests returns every request newest first. Owner and course details
// are joined with one batch lookup each; rows whose owner or course is gone keep
// nil display values.
func (s *adminService) ListAllRequests(ctx context.Context, rc RequestContext) ([]*models.AdminRequestRow, error) {
	if _, err := s.gate.RequireAdmin(ctx, rc); err != nil {
		return nil, err
	}

	requests, err := rc.Repo.TrainingRequest().ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list training requests: %w", err)
	}

	userIDs := make([]string, 0, len(requests))
	courseIDs := make([]string, 0, len(requests))
	for _, r := range requests {
		userIDs = append(userIDs, r.UserID)
		courseIDs = append(courseIDs, r.CourseID)
	}

	profiles, err := rc.Repo.Profile().GetByIDs(ctx, nil, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	courses, err := rc.Repo.Catalog().GetCoursesByIDs(ctx, nil, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	profileByID := make(map[string]*models.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}
	courseByID := make(map[string]*models.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}

	rows := make([]*models.AdminRequestRow, 0, len(requests))
	for _, r := range requests {
		row := &models.AdminRequestRow{
			TrainingRequest:  *r,
			SuggestedActions: r.Status.SuggestedActions(),
		}
		if p, ok := profileByID[r.UserID]; ok {
			row.UserFullName = p.FullName
			row.UserDepartment = p.Department
		}
		if c, ok := courseByID[r.CourseID]; ok {
			title := c.Title
			row.CourseTitle = &title
		}
		rows = append(rows, row)
	}

	s.logger.DebugContext(ctx, "Listed training requests", "count", len(rows), "profiles", len(profiles), "courses", len(courses))
	return rows, nil
}

// ExportAllRequests renders the admin listing as an xlsx workbook
func (s *adminService) ExportAllRequests(ctx context.Context, rc RequestContext) ([]byte, error) {
	rows, err := s.ListAllRequests(ctx, rc)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to prepare sheet: %w", err)
	}

	if err := writeExportSheet(f, exportSheet, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "Exported training requests", "count", len(rows), "admin_id", rc.callerID())
	return buf.Bytes(), nil
}

func writeExportSheet(f *excelize.File, sheet string, rows []*models.AdminRequestRow) error {
	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.CreatedAt.Format(time.RFC3339),
			derefOr(row.UserFullName, row.UserID),
			derefOr(row.UserDepartment, ""),
			derefOr(row.CourseTitle, row.CourseID),
			string(row.Status),
			formatOptionalTime(row.ProcessedAt),
			derefOr(row.AdminNotes, ""),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return nil
}

func derefOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
