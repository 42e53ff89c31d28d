package logstore

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/hugo/focustrack/internal/models"
)

var csvHeader = []string{"start", "end", "app_name", "window_title"}

// CSVStore persists intervals as rows of a CSV file. The file format is
// the compatibility contract: a header row, then one record per interval
// with RFC-3339 timestamps. Epoch-second timestamps are accepted on read
// for logs written by older trackers.
type CSVStore struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// OpenCSV opens or creates the log file, writing the header row on first use.
func OpenCSV(path string) (*CSVStore, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open activity log")
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, "failed to stat activity log")
	}

	s := &CSVStore{path: path, file: file}

	if info.Size() == 0 {
		if err := s.writeRecord(csvHeader); err != nil {
			file.Close()
			return nil, errors.Wrap(err, "failed to write log header")
		}
	}

	return s, nil
}

// Append writes one interval as a single record and syncs it to disk.
func (s *CSVStore) Append(iv models.ActivityInterval) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := []string{
		iv.Start.Format(time.RFC3339),
		iv.End.Format(time.RFC3339),
		iv.AppName,
		iv.Title,
	}

	if err := s.writeRecord(record); err != nil {
		return errors.Wrap(err, "failed to append interval")
	}
	return errors.Wrap(s.file.Sync(), "failed to sync activity log")
}

// ReadAll parses the whole log, skipping the header and any malformed
// rows. The skipped count lets callers report read-path damage without
// aborting the analysis.
func (s *CSVStore) ReadAll() ([]models.ActivityInterval, int, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to open activity log for reading")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var intervals []models.ActivityInterval
	skipped := 0
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				skipped++
				continue
			}
			return nil, skipped, errors.Wrap(err, "failed to read activity log")
		}

		if first {
			first = false
			if isHeader(record) {
				continue
			}
		}

		iv, ok := parseRecord(record)
		if !ok {
			skipped++
			continue
		}
		intervals = append(intervals, iv)
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return intervals, skipped, nil
}

// ReadRange returns intervals overlapping [from, to) in start-time order.
func (s *CSVStore) ReadRange(from, to time.Time) ([]models.ActivityInterval, int, error) {
	intervals, skipped, err := s.ReadAll()
	if err != nil {
		return nil, skipped, err
	}
	return filterRange(intervals, from, to), skipped, nil
}

// Close releases the append handle.
func (s *CSVStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

func (s *CSVStore) writeRecord(record []string) error {
	w := csv.NewWriter(s.file)
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "start")
}

// parseRecord accepts records with at least the four contract fields;
// extra trailing fields from newer writers are ignored.
func parseRecord(record []string) (models.ActivityInterval, bool) {
	if len(record) < 4 {
		return models.ActivityInterval{}, false
	}

	start, ok := parseTimestamp(record[0])
	if !ok {
		return models.ActivityInterval{}, false
	}
	end, ok := parseTimestamp(record[1])
	if !ok || !end.After(start) {
		return models.ActivityInterval{}, false
	}

	return models.ActivityInterval{
		Start:   start,
		End:     end,
		AppName: record[2],
		Title:   record[3],
	}, true
}

func parseTimestamp(field string) (time.Time, bool) {
	field = strings.TrimSpace(field)
	if field == "" {
		return time.Time{}, false
	}

	if ts, err := time.Parse(time.RFC3339, field); err == nil {
		return ts, true
	}

	if epoch, err := strconv.ParseInt(field, 10, 64); err == nil && epoch > 0 {
		return time.Unix(epoch, 0), true
	}

	return time.Time{}, false
}
