package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/m-mizutani/goerr/v2"
)

// Source reads the catalogue export from a CSV file.
// It implements dataset.Source.
type Source struct {
	path       string
	footerRows int
	logger     *slog.Logger
}

// NewSource creates a Source for path that drops the last footerRows rows.
func NewSource(path string, footerRows int, logger *slog.Logger) *Source {
	return &Source{path: path, footerRows: footerRows, logger: logger}
}

// Extract reads every data row of the file.
func (s *Source) Extract(_ context.Context) ([]domain.RawRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := ReadRecords(f, s.footerRows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	s.logger.Info("dataset file read", "path", s.path, "rows", len(records))
	return records, nil
}

// ReadRecords parses a CSV with a header row into raw records. Columns are
// matched by header name; extra columns are ignored and every column in
// domain.RequiredColumns must be present. The last footerRows rows are
// dropped. Rows may have any number of fields so footers do not break parsing.
func ReadRecords(r io.Reader, footerRows int) ([]domain.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, goerr.New("empty file")
	}
	if err != nil {
		return nil, goerr.Wrap(err, "read header")
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, goerr.New("missing column", goerr.V("column", col))
		}
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, goerr.Wrap(err, "read rows")
	}
	if footerRows >= len(rows) {
		return []domain.RawRecord{}, nil
	}
	rows = rows[:len(rows)-footerRows]

	field := func(row []string, col string) string {
		if i := index[col]; i < len(row) {
			return row[i]
		}
		return ""
	}

	records := make([]domain.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.RawRecord{
			DateTime:   field(row, "date_time"),
			Country:    field(row, "country"),
			Latitude:   field(row, "latitude"),
			Longitude:  field(row, "longitude"),
			Magnitude:  field(row, "magnitude"),
			Depth:      field(row, "depth"),
			DepthLabel: field(row, "depth_label"),
		})
	}
	return records, nil
}
