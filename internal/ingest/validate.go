package ingest

import (
	"fmt"
	"strings"

	"spacex-dashboard/internal/model"
	"spacex-dashboard/pkg/utils"
)

// fieldError ties a validation failure to the column that caused it
type fieldError struct {
	column string
	err    error
}

func invalid(column, format string, args ...any) *fieldError {
	return &fieldError{column: column, err: fmt.Errorf("%w: %s", ErrInvalidValue, fmt.Sprintf(format, args...))}
}

// columns maps the header cells we care about to their row index.
// Optional columns are -1 when absent.
type columns struct {
	site, payload, category, class int
	flightNumber, boosterVersion   int
}

func resolveColumns(headers []string) (columns, *fieldError) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		clean := utils.CleanHeader(h)
		if _, dup := index[clean]; !dup {
			index[clean] = i
		}
	}

	for _, name := range RequiredColumns {
		if _, ok := index[name]; !ok {
			return columns{}, &fieldError{column: name, err: ErrMissingColumn}
		}
	}

	optional := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		return -1
	}

	return columns{
		site:           index[ColumnLaunchSite],
		payload:        index[ColumnPayloadMass],
		category:       index[ColumnBoosterCategory],
		class:          index[ColumnClass],
		flightNumber:   optional(columnFlightNumber),
		boosterVersion: optional(columnBoosterVersion),
	}, nil
}

func cell(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

// record validates a data row and converts it into a typed launch record.
func (c columns) record(row []string) (model.LaunchRecord, *fieldError) {
	var rec model.LaunchRecord

	site, ok := cell(row, c.site)
	if !ok || site == "" {
		return rec, invalid(ColumnLaunchSite, "launch site is empty")
	}
	rec.LaunchSite = site

	raw, ok := cell(row, c.payload)
	if !ok {
		return rec, invalid(ColumnPayloadMass, "value missing")
	}
	mass, err := utils.ParseFloat(raw)
	if err != nil {
		return rec, invalid(ColumnPayloadMass, "%v", err)
	}
	if mass < 0 {
		return rec, invalid(ColumnPayloadMass, "payload below minimum: got %v, want ≥ 0", mass)
	}
	rec.PayloadMassKg = mass

	category, ok := cell(row, c.category)
	if !ok {
		return rec, invalid(ColumnBoosterCategory, "value missing")
	}
	rec.BoosterVersionCategory = category

	raw, ok = cell(row, c.class)
	if !ok {
		return rec, invalid(ColumnClass, "value missing")
	}
	class, err := utils.ParseInt(raw)
	if err != nil {
		return rec, invalid(ColumnClass, "%v", err)
	}
	if class != model.OutcomeSuccess && class != model.OutcomeFailure {
		return rec, invalid(ColumnClass, "class must be 0 or 1, got %d", class)
	}
	rec.OutcomeClass = class

	if raw, ok := cell(row, c.flightNumber); ok && raw != "" {
		if n, err := utils.ParseInt(raw); err == nil {
			rec.FlightNumber = n
		}
	}
	if raw, ok := cell(row, c.boosterVersion); ok {
		rec.BoosterVersion = raw
	}

	return rec, nil
}
