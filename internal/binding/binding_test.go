package binding

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spacex-dashboard/internal/aggregate"
	"spacex-dashboard/internal/model"
	"spacex-dashboard/internal/render"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) CallbackDone(_ context.Context, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func noop(context.Context, model.SelectionState) (Update, error) { return Update{}, nil }

func testDataset(t *testing.T) *model.Dataset {
	t.Helper()
	ds, err := model.NewDataset("test", []model.LaunchRecord{
		{LaunchSite: "A", PayloadMassKg: 500, BoosterVersionCategory: "v1.0", OutcomeClass: 1},
		{LaunchSite: "A", PayloadMassKg: 1500, BoosterVersionCategory: "FT", OutcomeClass: 0},
		{LaunchSite: "B", PayloadMassKg: 3000, BoosterVersionCategory: "FT", OutcomeClass: 1},
	})
	require.NoError(t, err)
	return ds
}

func outputs(updates []Update) []string {
	out := make([]string, len(updates))
	for i, u := range updates {
		out[i] = u.Output
	}
	return out
}

func TestRegister(t *testing.T) {
	tbl := NewTable(zap.NewNop(), InputSite, InputPayload)

	require.NoError(t, tbl.Register(OutputPie, []string{InputSite}, noop))

	err := tbl.Register(OutputPie, []string{InputPayload}, noop)
	assert.ErrorIs(t, err, ErrDuplicateOutput)

	err = tbl.Register(OutputScatter, []string{"zoom"}, noop)
	assert.ErrorIs(t, err, ErrUnknownInput)

	assert.Error(t, tbl.Register(OutputScatter, nil, noop))
	assert.Error(t, tbl.Register(OutputScatter, []string{InputSite}, nil))

	assert.Equal(t, []string{OutputPie}, tbl.Outputs())
	assert.True(t, tbl.HasInput(InputPayload))
	assert.False(t, tbl.HasInput("zoom"))
}

func TestDependents(t *testing.T) {
	tbl, err := NewDashboardTable(testDataset(t), nil, nil)
	require.NoError(t, err)

	names := func(cbs []Callback) []string {
		var out []string
		for _, cb := range cbs {
			out = append(out, cb.Output)
		}
		return out
	}
	assert.Equal(t, []string{OutputPie, OutputScatter}, names(tbl.Dependents(InputSite)))
	assert.Equal(t, []string{OutputScatter}, names(tbl.Dependents(InputPayload)))
	assert.Empty(t, tbl.Dependents("zoom"))
}

func TestSessionInitial(t *testing.T) {
	ds := testDataset(t)
	tbl, err := NewDashboardTable(ds, nil, zap.NewNop())
	require.NoError(t, err)

	updates, err := tbl.NewSession(model.DefaultSelection(ds)).Initial(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{OutputPie, OutputScatter}, outputs(updates))

	pie := updates[0]
	require.NotNil(t, pie.Pie)
	assert.Equal(t, aggregate.PieTitleAllSites, pie.Title)
	assert.Equal(t, 2, pie.Items)
	assert.Empty(t, pie.SVG)

	scatter := updates[1]
	require.NotNil(t, scatter.Scatter)
	assert.Len(t, scatter.Scatter.Points, 3)
	assert.Equal(t, 3, scatter.Items)
}

func TestSessionApplySite(t *testing.T) {
	ds := testDataset(t)
	tbl, err := NewDashboardTable(ds, render.New(400, 300), zap.NewNop())
	require.NoError(t, err)
	s := tbl.NewSession(model.DefaultSelection(ds))

	updates, err := s.Apply(context.Background(), Change{Input: InputSite, Site: "A"})
	require.NoError(t, err)
	require.Equal(t, []string{OutputPie, OutputScatter}, outputs(updates))

	assert.Equal(t, "Total Success Launches for site A", updates[0].Title)
	assert.Equal(t, []model.PieSlice{
		{Label: aggregate.LabelSuccess, Value: 1},
		{Label: aggregate.LabelFailure, Value: 1},
	}, updates[0].Pie.Slices)
	assert.Len(t, updates[1].Scatter.Points, 2)
	assert.Contains(t, updates[0].SVG, "<svg")
	assert.Contains(t, updates[1].SVG, "<svg")

	assert.Equal(t, "A", s.State().Site)
	assert.Equal(t, ds.PayloadBounds(), s.State().Payload)
}

func TestSessionApplyPayload(t *testing.T) {
	ds := testDataset(t)
	tbl, err := NewDashboardTable(ds, nil, zap.NewNop())
	require.NoError(t, err)
	s := tbl.NewSession(model.DefaultSelection(ds))

	rng := model.PayloadRange{Low: 0, High: 2000}
	updates, err := s.Apply(context.Background(), Change{Input: InputPayload, Payload: rng})
	require.NoError(t, err)
	require.Equal(t, []string{OutputScatter}, outputs(updates))
	assert.Len(t, updates[0].Scatter.Points, 2)
	assert.Equal(t, rng, s.State().Payload)
	assert.Equal(t, model.AllSites, s.State().Site)

	updates, err = s.Apply(context.Background(), Change{Input: InputPayload, Payload: model.PayloadRange{Low: 5000, High: 1000}})
	require.NoError(t, err)
	assert.Empty(t, updates[0].Scatter.Points)
}

func TestSessionApplyUnknownInput(t *testing.T) {
	ds := testDataset(t)
	tbl, err := NewDashboardTable(ds, nil, zap.NewNop())
	require.NoError(t, err)
	s := tbl.NewSession(model.DefaultSelection(ds))

	_, err = s.Apply(context.Background(), Change{Input: "zoom"})
	assert.ErrorIs(t, err, ErrUnknownInput)
	assert.Equal(t, model.DefaultSelection(ds), s.State())
}

func TestComputationErrorAndObserver(t *testing.T) {
	boom := errors.New("boom")
	tbl := NewTable(zap.NewNop(), InputSite)
	rec := &recorder{}
	tbl.Observe(rec)

	require.NoError(t, tbl.Register(OutputPie, []string{InputSite}, func(context.Context, model.SelectionState) (Update, error) {
		return Update{Items: 4}, nil
	}))
	require.NoError(t, tbl.Register(OutputScatter, []string{InputSite}, func(context.Context, model.SelectionState) (Update, error) {
		return Update{}, boom
	}))

	s := tbl.NewSession(model.SelectionState{Site: model.AllSites})
	_, err := s.Apply(context.Background(), Change{Input: InputSite, Site: "B"})
	require.Error(t, err)

	var ce *ComputationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, OutputScatter, ce.Output)
	assert.ErrorIs(t, err, boom)

	require.Len(t, rec.events, 2)
	assert.Equal(t, OutputPie, rec.events[0].Output)
	assert.Equal(t, InputSite, rec.events[0].Trigger)
	assert.Equal(t, "B", rec.events[0].State.Site)
	assert.Equal(t, 4, rec.events[0].Items)
	assert.NoError(t, rec.events[0].Err)
	assert.ErrorIs(t, rec.events[1].Err, boom)
}

func TestSessionCancelledContext(t *testing.T) {
	ds := testDataset(t)
	tbl, err := NewDashboardTable(ds, nil, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tbl.NewSession(model.DefaultSelection(ds)).Initial(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionsAreIndependent(t *testing.T) {
	ds := testDataset(t)
	tbl, err := NewDashboardTable(ds, nil, zap.NewNop())
	require.NoError(t, err)

	a := tbl.NewSession(model.DefaultSelection(ds))
	b := tbl.NewSession(model.DefaultSelection(ds))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := a.Apply(context.Background(), Change{Input: InputSite, Site: "A"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := b.Apply(context.Background(), Change{Input: InputPayload, Payload: model.PayloadRange{Low: 0, High: 1000}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, "A", a.State().Site)
	assert.Equal(t, ds.PayloadBounds(), a.State().Payload)
	assert.Equal(t, model.AllSites, b.State().Site)
	assert.Equal(t, model.PayloadRange{Low: 0, High: 1000}, b.State().Payload)
}
