package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestHistory_Record(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	h := &History{db: gormDB}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `run_history`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rec := &RunRecord{
		Fingerprint: "abc123",
		StartedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		DurationMS:  42,
		DetailRows:  3,
		SummaryRows: 1,
	}
	require.NoError(t, h.Record(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory_Last(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	h := &History{db: gormDB}

	rows := sqlmock.NewRows([]string{
		"id", "fingerprint", "started_at", "duration_ms", "detail_rows", "summary_rows",
	}).AddRow(7, "abc123", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), 42, 3, 1)
	mock.ExpectQuery("SELECT \\* FROM `run_history`").WillReturnRows(rows)

	rec, err := h.Last(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "abc123", rec.Fingerprint)
	assert.Equal(t, 3, rec.DetailRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory_Last_Empty(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	h := &History{db: gormDB}

	mock.ExpectQuery("SELECT \\* FROM `run_history`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec, err := h.Last(context.Background())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestHistory_NilIsSafe(t *testing.T) {
	var h *History

	assert.NoError(t, h.Record(context.Background(), &RunRecord{}))
	rec, err := h.Last(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, rec)
}
