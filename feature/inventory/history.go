package inventory

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RunRecord is one persisted pipeline run.
type RunRecord struct {
	ID          uint      `gorm:"primaryKey"`
	Fingerprint string    `gorm:"size:64;index"`
	StartedAt   time.Time `gorm:"index"`
	DurationMS  int64
	DetailRows  int
	SummaryRows int
}

// TableName fixes the history table name.
func (RunRecord) TableName() string { return "run_history" }

// History persists run records. It is optional end to end: a nil *History
// is valid and records nothing.
type History struct {
	db *gorm.DB
}

// NewHistory creates the history store and ensures its table exists.
func NewHistory(db *gorm.DB) (*History, error) {
	if err := db.AutoMigrate(&RunRecord{}); err != nil {
		return nil, err
	}
	return &History{db: db}, nil
}

// Record inserts one run record.
func (h *History) Record(ctx context.Context, rec *RunRecord) error {
	if h == nil {
		return nil
	}
	return h.db.WithContext(ctx).Create(rec).Error
}

// Last returns the most recent run record, or nil when none exist.
func (h *History) Last(ctx context.Context) (*RunRecord, error) {
	if h == nil {
		return nil, nil
	}
	var rec RunRecord
	err := h.db.WithContext(ctx).Order("started_at DESC").First(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
