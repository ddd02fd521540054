package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"spacex-dashboard/internal/model"
)

// Column names expected in the launch CSV header
const (
	ColumnLaunchSite      = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnBoosterCategory = "Booster Version Category"
	ColumnClass           = "class"

	columnFlightNumber   = "Flight Number"
	columnBoosterVersion = "Booster Version"
)

// RequiredColumns lists the header cells every launch file must carry
var RequiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMass,
	ColumnBoosterCategory,
	ColumnClass,
}

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidValue  = errors.New("invalid value")
	ErrEmptyDataset  = model.ErrEmptyDataset
)

// LoadError reports why a dataset could not be loaded. Line is the 1-based
// CSV line (0 when the failure is not tied to a row).
type LoadError struct {
	Path   string
	Line   int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s", e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads launch files from disk or over HTTP
type Loader struct {
	log    *zap.Logger
	client *http.Client
}

// NewLoader creates a loader that logs through log
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		log:    log,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load reads the whole dataset from a file path or an http(s) URL.
func (l *Loader) Load(ctx context.Context, pathOrURL string) (*model.Dataset, error) {
	start := time.Now()
	l.log.Info("loading launch dataset", zap.String("source", pathOrURL))

	var reader io.Reader
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
		if err != nil {
			return nil, &LoadError{Path: pathOrURL, Err: fmt.Errorf("build request: %w", err)}
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, &LoadError{Path: pathOrURL, Err: fmt.Errorf("failed to GET CSV: %w", err)}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, &LoadError{Path: pathOrURL, Err: fmt.Errorf("failed to GET CSV: status %s", resp.Status)}
		}
		reader = resp.Body
	} else {
		file, err := os.Open(pathOrURL)
		if err != nil {
			return nil, &LoadError{Path: pathOrURL, Err: fmt.Errorf("failed to open CSV file: %w", err)}
		}
		defer file.Close()
		reader = file
	}

	ds, err := Parse(reader, pathOrURL)
	if err != nil {
		l.log.Error("dataset load failed", zap.String("source", pathOrURL), zap.Error(err))
		return nil, err
	}

	l.log.Info("launch dataset loaded",
		zap.String("source", pathOrURL),
		zap.Int("records", ds.Len()),
		zap.Strings("sites", ds.Sites()),
		zap.Float64("min_payload", ds.MinPayload()),
		zap.Float64("max_payload", ds.MaxPayload()),
		zap.Duration("took", time.Since(start)),
	)
	return ds, nil
}

// Parse reads a launch CSV from r. source only labels errors.
func Parse(r io.Reader, source string) (*model.Dataset, error) {
	csvReader := csv.NewReader(r)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: source, Err: fmt.Errorf("missing CSV header: %w", ErrEmptyDataset)}
	}
	if err != nil {
		return nil, &LoadError{Path: source, Line: 1, Err: fmt.Errorf("failed to read CSV header: %w", err)}
	}

	cols, cerr := resolveColumns(headers)
	if cerr != nil {
		return nil, &LoadError{Path: source, Line: 1, Column: cerr.column, Err: cerr.err}
	}

	var records []model.LaunchRecord
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var line int
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &LoadError{Path: source, Line: line, Err: fmt.Errorf("CSV read error: %w", err)}
		}
		line, _ := csvReader.FieldPos(0)
		if isBlankRow(row) {
			continue
		}

		rec, ferr := cols.record(row)
		if ferr != nil {
			return nil, &LoadError{Path: source, Line: line, Column: ferr.column, Err: ferr.err}
		}
		records = append(records, rec)
	}

	ds, err := model.NewDataset(source, records)
	if err != nil {
		return nil, &LoadError{Path: source, Err: err}
	}
	return ds, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
