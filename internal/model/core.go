package model

import "fmt"

// PayloadRange is an inclusive payload mass interval in kg.
// Low > High is allowed and matches nothing.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether mass lies in [Low, High]
func (r PayloadRange) Contains(mass float64) bool {
	return mass >= r.Low && mass <= r.High
}

// Empty reports whether the range can match no payload at all
func (r PayloadRange) Empty() bool {
	return r.Low > r.High
}

func (r PayloadRange) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}

// SelectionState is the current value of the dashboard controls
type SelectionState struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// DefaultSelection is the state a fresh page starts with: every site and the
// dataset's own payload bounds.
func DefaultSelection(ds *Dataset) SelectionState {
	return SelectionState{
		Site:    AllSites,
		Payload: ds.PayloadBounds(),
	}
}

// AllSitesSelected reports whether the selector holds the ALL sentinel
func (s SelectionState) AllSitesSelected() bool {
	return s.Site == AllSites
}
