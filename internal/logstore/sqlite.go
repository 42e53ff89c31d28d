package logstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hugo/focustrack/internal/models"
)

// SQLiteStore persists intervals in a SQLite database. Schema migration
// runs on open; rows are never corrupted by a mid-write interruption, so
// the skipped count is always zero for this backend.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens the database and migrates the interval schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if err := db.AutoMigrate(&models.IntervalRecord{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate interval schema")
	}

	return &SQLiteStore{db: db}, nil
}

// Append inserts one interval row.
func (s *SQLiteStore) Append(iv models.ActivityInterval) error {
	result := s.db.Create(models.NewIntervalRecord(iv))
	return errors.Wrap(result.Error, "failed to insert interval")
}

// ReadAll returns every interval ordered by start time.
func (s *SQLiteStore) ReadAll() ([]models.ActivityInterval, int, error) {
	return s.read(s.db)
}

// ReadRange returns intervals overlapping [from, to), filtered in SQL.
func (s *SQLiteStore) ReadRange(from, to time.Time) ([]models.ActivityInterval, int, error) {
	tx := s.db
	if !from.IsZero() {
		tx = tx.Where("end_ts > ?", from)
	}
	if !to.IsZero() {
		tx = tx.Where("start_ts < ?", to)
	}
	return s.read(tx)
}

// Close closes the underlying connection pool.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) read(tx *gorm.DB) ([]models.ActivityInterval, int, error) {
	var records []models.IntervalRecord
	result := tx.Order("start_ts ASC").Find(&records)
	if result.Error != nil {
		return nil, 0, errors.Wrap(result.Error, "failed to query intervals")
	}

	intervals := make([]models.ActivityInterval, 0, len(records))
	for _, r := range records {
		intervals = append(intervals, r.Interval())
	}
	return intervals, 0, nil
}
