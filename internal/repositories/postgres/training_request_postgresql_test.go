package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/seminar-portal/portal-service/internal/models"
	"github.com/seminar-portal/portal-service/internal/repositories"
	"github.com/seminar-portal/portal-service/internal/testutil"
)

func TestTrainingRequestPostgreSQL_ListAllNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTrainingRequestPostgreSQL(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	testutil.SeedRequest(t, db, "r1", "u1", "c1", models.RequestPending, base)
	testutil.SeedRequest(t, db, "r3", "u2", "c1", models.RequestApproved, base.Add(2*time.Hour))
	testutil.SeedRequest(t, db, "r2", "u1", "c2", models.RequestRejected, base.Add(time.Hour))

	got, err := repo.ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	want := []string{"r3", "r2", "r1"}
	if len(got) != len(want) {
		t.Fatalf("ListAll() returned %d rows, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("ListAll()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestTrainingRequestPostgreSQL_ListByUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTrainingRequestPostgreSQL(db)
	ctx := context.Background()

	testutil.SeedTopic(t, db, "t1", "go", "Go")
	testutil.SeedCourse(t, db, "c1", "t1", "Go Basics", true)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	testutil.SeedRequest(t, db, "mine-old", "u1", "c1", models.RequestPending, base)
	testutil.SeedRequest(t, db, "theirs", "u2", "c1", models.RequestPending, base.Add(time.Minute))
	testutil.SeedRequest(t, db, "mine-new", "u1", "gone", models.RequestCompleted, base.Add(2*time.Minute))

	got, err := repo.ListByUser(ctx, nil, "u1")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByUser() returned %d rows, want 2", len(got))
	}
	if got[0].ID != "mine-new" || got[1].ID != "mine-old" {
		t.Errorf("ListByUser() order = [%s %s]", got[0].ID, got[1].ID)
	}
	if got[0].CourseTitle != nil {
		t.Errorf("missing course should join to nil title, got %q", *got[0].CourseTitle)
	}
	if got[1].CourseTitle == nil || *got[1].CourseTitle != "Go Basics" {
		t.Errorf("course title not joined: %v", got[1].CourseTitle)
	}
}

func TestTrainingRequestPostgreSQL_UpdateStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTrainingRequestPostgreSQL(db)
	ctx := context.Background()

	testutil.SeedRequest(t, db, "r1", "u1", "c1", models.RequestPending, time.Now())
	if err := repo.UpdateNotes(ctx, nil, "r1", "keep me"); err != nil {
		t.Fatalf("UpdateNotes() error = %v", err)
	}

	processed := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	if err := repo.UpdateStatus(ctx, nil, "r1", models.RequestApproved, processed); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	got, err := repo.GetByID(ctx, nil, "r1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != models.RequestApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}
	if got.ProcessedAt == nil || !got.ProcessedAt.Equal(processed) {
		t.Errorf("processed_at = %v, want %v", got.ProcessedAt, processed)
	}
	if got.AdminNotes == nil || *got.AdminNotes != "keep me" {
		t.Errorf("admin_notes changed: %v", got.AdminNotes)
	}
}

func TestTrainingRequestPostgreSQL_UpdateMissingRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTrainingRequestPostgreSQL(db)
	ctx := context.Background()

	err := repo.UpdateStatus(ctx, nil, "nope", models.RequestApproved, time.Now())
	if !repositories.IsNotFoundError(err) {
		t.Errorf("UpdateStatus() on missing row error = %v, want not found", err)
	}
	err = repo.UpdateNotes(ctx, nil, "nope", "x")
	if !repositories.IsNotFoundError(err) {
		t.Errorf("UpdateNotes() on missing row error = %v, want not found", err)
	}
	if _, err := repo.GetByID(ctx, nil, "nope"); !repositories.IsNotFoundError(err) {
		t.Errorf("GetByID() on missing row error = %v, want not found", err)
	}
}

func TestTrainingRequestPostgreSQL_EmptyNoteIsStored(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewTrainingRequestPostgreSQL(db)
	ctx := context.Background()

	testutil.SeedRequest(t, db, "r1", "u1", "c1", models.RequestPending, time.Now())
	if err := repo.UpdateNotes(ctx, nil, "r1", ""); err != nil {
		t.Fatalf("UpdateNotes() error = %v", err)
	}
	got, _ := repo.GetByID(ctx, nil, "r1")
	if got.AdminNotes == nil || *got.AdminNotes != "" {
		t.Errorf("empty note should be stored as empty string, got %v", got.AdminNotes)
	}
	if got.ProcessedAt != nil {
		t.Errorf("note edit must not touch processed_at")
	}
}
