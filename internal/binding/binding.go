package binding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"spacex-dashboard/internal/model"
)

// Control and graph identifiers shared by the page and the callback API
const (
	InputSite     = "site-dropdown"
	InputPayload  = "payload-slider"
	OutputPie     = "success-pie-chart"
	OutputScatter = "success-payload-scatter-chart"
)

var (
	ErrUnknownInput    = errors.New("unknown input")
	ErrDuplicateOutput = errors.New("output already registered")
)

// Update is a freshly computed figure for one output
type Update struct {
	Output  string                  `json:"output"`
	Title   string                  `json:"title"`
	Pie     *model.PieChartSpec     `json:"pie,omitempty"`
	Scatter *model.ScatterChartSpec `json:"scatter,omitempty"`
	SVG     string                  `json:"svg,omitempty"`
	Items   int                     `json:"items"`
}

// HandlerFunc recomputes one output from the current control state
type HandlerFunc func(ctx context.Context, state model.SelectionState) (Update, error)

// Callback binds an output to the inputs it reads
type Callback struct {
	Output string
	Inputs []string
	Fn     HandlerFunc
}

func (c Callback) dependsOn(input string) bool {
	for _, in := range c.Inputs {
		if in == input {
			return true
		}
	}
	return false
}

// ComputationError wraps a failure raised while recomputing an output
type ComputationError struct {
	Output string
	Err    error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("compute %s: %v", e.Output, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// Event describes one finished callback invocation
type Event struct {
	Output   string
	Trigger  string
	State    model.SelectionState
	Items    int
	Duration time.Duration
	Err      error
}

// Observer is notified after every callback; the audit store implements it.
type Observer interface {
	CallbackDone(ctx context.Context, ev Event)
}

// Table is the registry of callbacks, built once at startup and read-only
// afterwards.
type Table struct {
	inputs    map[string]bool
	callbacks []Callback
	observer  Observer
	log       *zap.Logger
}

// NewTable creates a table accepting the given input IDs
func NewTable(log *zap.Logger, inputs ...string) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Table{inputs: make(map[string]bool, len(inputs)), log: log}
	for _, in := range inputs {
		t.inputs[in] = true
	}
	return t
}

// Observe installs an observer for finished callbacks
func (t *Table) Observe(o Observer) { t.observer = o }

// Register binds fn to output. Every input must have been declared in
// NewTable and each output may be registered once.
func (t *Table) Register(output string, inputs []string, fn HandlerFunc) error {
	if fn == nil {
		return fmt.Errorf("register %s: nil handler", output)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("register %s: no inputs", output)
	}
	for _, cb := range t.callbacks {
		if cb.Output == output {
			return fmt.Errorf("register %s: %w", output, ErrDuplicateOutput)
		}
	}
	for _, in := range inputs {
		if !t.inputs[in] {
			return fmt.Errorf("register %s: %w: %s", output, ErrUnknownInput, in)
		}
	}
	t.callbacks = append(t.callbacks, Callback{
		Output: output,
		Inputs: append([]string(nil), inputs...),
		Fn:     fn,
	})
	t.log.Debug("callback registered", zap.String("output", output), zap.Strings("inputs", inputs))
	return nil
}

// Outputs returns the registered outputs in registration order
func (t *Table) Outputs() []string {
	out := make([]string, len(t.callbacks))
	for i, cb := range t.callbacks {
		out[i] = cb.Output
	}
	return out
}

// Dependents returns the callbacks that read input
func (t *Table) Dependents(input string) []Callback {
	var out []Callback
	for _, cb := range t.callbacks {
		if cb.dependsOn(input) {
			out = append(out, cb)
		}
	}
	return out
}

// HasInput reports whether input was declared
func (t *Table) HasInput(input string) bool { return t.inputs[input] }

// Change is one control event: the input that moved and its new value.
// Only the field matching Input is read.
type Change struct {
	Input   string             `json:"input"`
	Site    string             `json:"site,omitempty"`
	Payload model.PayloadRange `json:"payload,omitempty"`
}

// Session owns the selection of one client. Events on a session are applied
// one at a time.
type Session struct {
	mu    sync.Mutex
	table *Table
	state model.SelectionState
}

// NewSession starts a session in state
func (t *Table) NewSession(state model.SelectionState) *Session {
	return &Session{table: t, state: state}
}

// State returns the current selection
func (s *Session) State() model.SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Initial computes every registered output for the current state.
func (s *Session) Initial(ctx context.Context) ([]Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, "", s.table.callbacks)
}

// Apply stores the changed control value and recomputes, once each, only the
// outputs that depend on that control.
func (s *Session) Apply(ctx context.Context, ch Change) ([]Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.table.HasInput(ch.Input) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, ch.Input)
	}
	switch ch.Input {
	case InputSite:
		s.state.Site = ch.Site
	case InputPayload:
		s.state.Payload = ch.Payload
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownInput, ch.Input)
	}

	return s.run(ctx, ch.Input, s.table.Dependents(ch.Input))
}

func (s *Session) run(ctx context.Context, trigger string, callbacks []Callback) ([]Update, error) {
	updates := make([]Update, 0, len(callbacks))
	for _, cb := range callbacks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		upd, err := cb.Fn(ctx, s.state)
		ev := Event{
			Output:   cb.Output,
			Trigger:  trigger,
			State:    s.state,
			Items:    upd.Items,
			Duration: time.Since(start),
			Err:      err,
		}
		if s.table.observer != nil {
			s.table.observer.CallbackDone(ctx, ev)
		}
		if err != nil {
			s.table.log.Error("callback failed",
				zap.String("output", cb.Output),
				zap.String("trigger", trigger),
				zap.Error(err))
			return nil, &ComputationError{Output: cb.Output, Err: err}
		}

		upd.Output = cb.Output
		updates = append(updates, upd)
		s.table.log.Debug("callback done",
			zap.String("output", cb.Output),
			zap.String("trigger", trigger),
			zap.String("site", s.state.Site),
			zap.Stringer("payload", s.state.Payload),
			zap.Int("items", upd.Items),
			zap.Duration("took", ev.Duration))
	}
	return updates, nil
}
