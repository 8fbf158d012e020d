package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-backup-vault/internal/logger"
	"github.com/MKhiriev/go-backup-vault/models"
)

func newTestCatalogRepo(t *testing.T) (*catalogRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &catalogRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestRecordRun_Success(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	run := models.BackupRun{
		RunID:         "9f27c6d2-1b7e-4a41-8c5f-2d90f1b3a771",
		ArtifactID:    "2026-08-23_14-05-09",
		CreatedAt:     time.Date(2026, 8, 23, 14, 5, 9, 0, time.UTC),
		EncryptedSize: 250_000_000,
		Chunked:       true,
		ChunkCount:    3,
	}

	mock.ExpectExec("INSERT INTO backup_runs").
		WithArgs(run.RunID, string(run.ArtifactID), run.CreatedAt, run.EncryptedSize, run.Chunked, run.ChunkCount, run.Pushed).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.RecordRun(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRecordRun_DBError(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO backup_runs").
		WillReturnError(errors.New("db network error"))

	err := repo.RecordRun(context.Background(), models.BackupRun{RunID: "x", ArtifactID: "2026-08-23_14-05-09"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestMarkPushed_Success(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE backup_runs").
		WithArgs("2026-08-23_14-05-09").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.MarkPushed(context.Background(), "2026-08-23_14-05-09"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListRuns_Success(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	created := time.Date(2026, 8, 23, 14, 5, 9, 0, time.UTC)
	rows := sqlmock.
		NewRows([]string{"run_id", "artifact_id", "created_at", "encrypted_size", "chunked", "chunk_count", "pushed"}).
		AddRow("run-1", "2026-08-22_10-00-00", created.AddDate(0, 0, -1), int64(1024), false, 0, true).
		AddRow("run-2", "2026-08-23_14-05-09", created, int64(250_000_000), true, 3, false)

	mock.ExpectQuery("SELECT (.+) FROM backup_runs").
		WillReturnRows(rows)

	runs, err := repo.ListRuns(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ArtifactID != "2026-08-22_10-00-00" || !runs[0].Pushed {
		t.Errorf("run 0 = %+v", runs[0])
	}
	if runs[1].ChunkCount != 3 || !runs[1].Chunked {
		t.Errorf("run 1 = %+v", runs[1])
	}
}

func TestListRuns_DBError(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM backup_runs").
		WillReturnError(errors.New("db network error"))

	_, err := repo.ListRuns(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestDeleteRun_Success(t *testing.T) {
	repo, mock, db := newTestCatalogRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM backup_runs").
		WithArgs("2026-08-22_10-00-00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteRun(context.Background(), "2026-08-22_10-00-00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
