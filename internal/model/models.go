package model

import (
	"errors"
	"fmt"
)

// AllSites is the selector value that means "every launch site"
const AllSites = "ALL"

// Outcome classes as stored in the class column
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// ErrEmptyDataset is returned when a dataset would hold no records
var ErrEmptyDataset = errors.New("dataset has no records")

// LaunchRecord represents a single launch row
type LaunchRecord struct {
	FlightNumber           int     `json:"flight_number,omitempty"`
	LaunchSite             string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	BoosterVersion         string  `json:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category"`
	OutcomeClass           int     `json:"class"`
}

// Succeeded reports whether the launch outcome is a success
func (r LaunchRecord) Succeeded() bool {
	return r.OutcomeClass == OutcomeSuccess
}

// Dataset is the immutable, non-empty table of launches loaded at startup.
// Payload bounds are computed once by NewDataset.
type Dataset struct {
	source     string
	records    []LaunchRecord
	minPayload float64
	maxPayload float64
	sites      []string
	categories []string
}

// NewDataset copies records into a dataset and derives its payload bounds.
func NewDataset(source string, records []LaunchRecord) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{
		source:     source,
		records:    make([]LaunchRecord, len(records)),
		minPayload: records[0].PayloadMassKg,
		maxPayload: records[0].PayloadMassKg,
	}
	copy(ds.records, records)

	seenSites := make(map[string]bool)
	seenCategories := make(map[string]bool)
	for i, rec := range ds.records {
		if rec.OutcomeClass != OutcomeSuccess && rec.OutcomeClass != OutcomeFailure {
			return nil, fmt.Errorf("record %d: class must be 0 or 1, got %d", i, rec.OutcomeClass)
		}
		if rec.PayloadMassKg < ds.minPayload {
			ds.minPayload = rec.PayloadMassKg
		}
		if rec.PayloadMassKg > ds.maxPayload {
			ds.maxPayload = rec.PayloadMassKg
		}
		if !seenSites[rec.LaunchSite] {
			seenSites[rec.LaunchSite] = true
			ds.sites = append(ds.sites, rec.LaunchSite)
		}
		if !seenCategories[rec.BoosterVersionCategory] {
			seenCategories[rec.BoosterVersionCategory] = true
			ds.categories = append(ds.categories, rec.BoosterVersionCategory)
		}
	}

	return ds, nil
}

// Source returns the path or name the dataset was loaded from
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in load order
func (d *Dataset) Records() []LaunchRecord {
	out := make([]LaunchRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying the table.
func (d *Dataset) Each(fn func(LaunchRecord)) {
	for _, rec := range d.records {
		fn(rec)
	}
}

// Sites returns the distinct launch sites in order of first appearance
func (d *Dataset) Sites() []string {
	return append([]string(nil), d.sites...)
}

// HasSite reports whether any record was launched from site
func (d *Dataset) HasSite(site string) bool {
	for _, s := range d.sites {
		if s == site {
			return true
		}
	}
	return false
}

// BoosterCategories returns the distinct booster version categories in order of first appearance
func (d *Dataset) BoosterCategories() []string {
	return append([]string(nil), d.categories...)
}

func (d *Dataset) MinPayload() float64 { return d.minPayload }
func (d *Dataset) MaxPayload() float64 { return d.maxPayload }

// PayloadBounds returns [MinPayload, MaxPayload] as a range
func (d *Dataset) PayloadBounds() PayloadRange {
	return PayloadRange{Low: d.minPayload, High: d.maxPayload}
}
