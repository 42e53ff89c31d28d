package models

import (
	"time"

	"gorm.io/gorm"
)

// IntervalRecord is the SQLite row shape for an ActivityInterval.
// Column names avoid the END keyword so raw range predicates stay portable.
type IntervalRecord struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Start       time.Time      `gorm:"column:start_ts;not null;index" json:"start"`
	End         time.Time      `gorm:"column:end_ts;not null" json:"end"`
	AppName     string         `gorm:"not null;index" json:"app_name"`
	WindowTitle string         `gorm:"not null" json:"window_title"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Interval converts the row back into its domain form.
func (r IntervalRecord) Interval() ActivityInterval {
	return ActivityInterval{
		Start:   r.Start,
		End:     r.End,
		AppName: r.AppName,
		Title:   r.WindowTitle,
	}
}

// NewIntervalRecord builds a row from a closed interval.
func NewIntervalRecord(iv ActivityInterval) *IntervalRecord {
	return &IntervalRecord{
		Start:       iv.Start,
		End:         iv.End,
		AppName:     iv.AppName,
		WindowTitle: iv.Title,
	}
}
