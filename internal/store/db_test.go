package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spacex-dashboard/internal/binding"
	"spacex-dashboard/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dashboard.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testDataset(t *testing.T) *model.Dataset {
	t.Helper()
	ds, err := model.NewDataset("launches.csv", []model.LaunchRecord{
		{LaunchSite: "A", PayloadMassKg: 500, BoosterVersionCategory: "FT", OutcomeClass: 1},
		{LaunchSite: "B", PayloadMassKg: 3000, BoosterVersionCategory: "FT", OutcomeClass: 0},
	})
	require.NoError(t, err)
	return ds
}

func TestSaveLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	assert.Empty(t, s.LoadID())
	id, err := s.SaveLoad(ctx, testDataset(t))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, s.LoadID())

	failedID, err := s.SaveLoadError(ctx, "broken.csv", errors.New("missing required column"))
	require.NoError(t, err)
	assert.NotEqual(t, id, failedID)
	assert.Equal(t, id, s.LoadID(), "a failed load does not replace the current one")

	loads, err := s.ListLoads(ctx)
	require.NoError(t, err)
	require.Len(t, loads, 2)

	byID := map[string]Load{}
	for _, l := range loads {
		byID[l.ID] = l
	}
	ok := byID[id]
	assert.Equal(t, StatusLoaded, ok.Status)
	assert.Equal(t, "launches.csv", ok.Source)
	assert.Equal(t, 2, ok.RecordCount)
	assert.Equal(t, 500.0, ok.MinPayload)
	assert.Equal(t, 3000.0, ok.MaxPayload)
	assert.Empty(t, ok.Error)
	assert.WithinDuration(t, time.Now(), ok.CreatedAt, time.Minute)

	failed := byID[failedID]
	assert.Equal(t, StatusFailed, failed.Status)
	assert.Equal(t, "missing required column", failed.Error)
}

func TestSaveLoadErrorNil(t *testing.T) {
	id, err := openStore(t).SaveLoadError(context.Background(), "x.csv", nil)
	assert.NoError(t, err)
	assert.Empty(t, id)
}

func TestCallbackEvents(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	loadID, err := s.SaveLoad(ctx, testDataset(t))
	require.NoError(t, err)

	state := model.SelectionState{Site: "A", Payload: model.PayloadRange{Low: 1000, High: 4000}}
	s.CallbackDone(ctx, binding.Event{
		Output:   binding.OutputPie,
		Trigger:  binding.InputSite,
		State:    state,
		Items:    2,
		Duration: 1500 * time.Microsecond,
	})
	require.NoError(t, s.SaveCallbackEvent(ctx, binding.Event{
		Output:  binding.OutputScatter,
		Trigger: binding.InputSite,
		State:   state,
		Err:     errors.New("boom"),
	}))

	events, err := s.ListCallbackEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	newest, oldest := events[0], events[1]
	assert.Equal(t, binding.OutputScatter, newest.Output)
	assert.Equal(t, "boom", newest.Error)

	assert.Equal(t, loadID, oldest.LoadID)
	assert.Equal(t, binding.OutputPie, oldest.Output)
	assert.Equal(t, binding.InputSite, oldest.Trigger)
	assert.Equal(t, "A", oldest.Site)
	assert.Equal(t, 1000.0, oldest.PayloadLow)
	assert.Equal(t, 4000.0, oldest.PayloadHigh)
	assert.Equal(t, 2, oldest.Items)
	assert.Equal(t, int64(1500), oldest.DurationUS)
	assert.Empty(t, oldest.Error)

	events, err = s.ListCallbackEvents(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestObserverOnTable(t *testing.T) {
	s := openStore(t)
	ds := testDataset(t)

	tbl, err := binding.NewDashboardTable(ds, nil, zap.NewNop())
	require.NoError(t, err)
	tbl.Observe(s)

	_, err = tbl.NewSession(model.DefaultSelection(ds)).Initial(context.Background())
	require.NoError(t, err)

	events, err := s.ListCallbackEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	_, err = s.SaveLoad(context.Background(), testDataset(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	loads, err := s.ListLoads(context.Background())
	require.NoError(t, err)
	assert.Len(t, loads, 1)
	assert.Empty(t, s.LoadID())
}
