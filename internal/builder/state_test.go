package builder_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/kode4food/testgen/internal/builder"
	"github.com/kode4food/testgen/pkg/api"
)

type recorder struct {
	events []*api.ChangeEvent
	mu     sync.Mutex
}

func (r *recorder) Notify(ev *api.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) types() []api.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]api.EventType, len(r.events))
	for i, ev := range r.events {
		res[i] = ev.Type
	}
	return res
}

func testCatalog() *api.Catalog {
	return &api.Catalog{
		Steps: []api.StepTemplate{
			{ID: "Open login page", Label: "Open login page"},
			{ID: "Enter credentials", Label: "Enter credentials"},
			{ID: "Click save", Label: "Click save"},
		},
		Parameters: []api.ParameterTemplate{
			{ID: "username", Label: "username", DefaultValue: "default"},
			{ID: "password", Label: "password", DefaultValue: "default"},
			{ID: "timeout", Label: "timeout", DefaultValue: "30"},
		},
	}
}

func newState(opts ...builder.Option) *builder.State {
	opts = append([]builder.Option{
		builder.WithIDs(builder.NewCounterIDs("t")),
	}, opts...)
	return builder.New(testCatalog(), opts...)
}

func TestNewStateIsEmpty(t *testing.T) {
	s := newState()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int64(0), s.Version())
	assert.Equal(t, "", s.Description())
	assert.Empty(t, s.ParametersPayload())

	js, err := s.PayloadJSON()
	assert.NoError(t, err)
	assert.Equal(t, "[]", js)
}

func TestNilCatalogRefusesTemplates(t *testing.T) {
	s := builder.New(nil)
	assert.False(t, s.AddStep("Open login page"))
	assert.NotNil(t, s.Catalog())
	assert.Equal(t, 0, s.Len())
}

func TestDescriptionNumbersInOrder(t *testing.T) {
	s := newState()
	s.AddStep("Open login page")
	s.AddStep("Enter credentials")
	s.AddStep("Click save")

	assert.Equal(t,
		"1. Open login page\n2. Enter credentials\n3. Click save",
		s.Description(),
	)
}

func TestViewsAreIdempotent(t *testing.T) {
	s := newState()
	s.AddStep("Open login page")
	s.AddParameterByID(0, "timeout")

	d1, d2 := s.Description(), s.Description()
	assert.Equal(t, d1, d2)

	p1, p2 := s.ParametersPayload(), s.ParametersPayload()
	assert.Equal(t, p1, p2)

	j1, err := s.PayloadJSON()
	require.NoError(t, err)
	j2, err := s.PayloadJSON()
	require.NoError(t, err)
	assert.Equal(t, j1, j2)
}

func TestPayloadIsACopy(t *testing.T) {
	s := newState()
	s.AddStep("Open login page")
	s.AddParameterByID(0, "username")

	p := s.ParametersPayload()
	p[0].StepLabel = "changed"
	p[0].Parameters.Set("username", "mallory")

	fresh := s.ParametersPayload()
	assert.Equal(t, "Open login page", fresh[0].StepLabel)
	v, _ := fresh[0].Parameters.Get("username")
	assert.Equal(t, "default", v)
}

func TestPayloadJSONFormat(t *testing.T) {
	s := newState()
	s.AddStep("Open login page")
	s.AddParameterByID(0, "username")
	s.AddParameterByID(0, "timeout")
	vt := api.ValueNumber
	s.UpdateParameter(0, "timeout", api.ParameterChanges{ValueType: &vt})

	js, err := s.PayloadJSON()
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "stepText": "Open login page",
    "parameters": {
      "username": "default",
      "timeout": 30
    }
  }
]`, js)
	assert.Equal(t, int64(30), gjson.Get(js, "0.parameters.timeout").Int())
}

func TestArtifacts(t *testing.T) {
	s := newState()
	s.AddStep("Open login page")
	s.AddStep("Click save")
	s.AddParameterByID(0, "username")

	art, err := s.Artifacts()
	require.NoError(t, err)
	assert.Equal(t, s.Version(), art.Version)
	assert.Equal(t, s.Description(), art.Description)
	js, err := s.PayloadJSON()
	require.NoError(t, err)
	assert.Equal(t, js, art.JSON)

	s.RemoveStep(1)
	assert.Equal(t, "1. Open login page\n2. Click save", art.Description)
	assert.Equal(t, int64(2), gjson.Get(art.JSON, "#").Int())
}

func TestSnapshotIsImmutable(t *testing.T) {
	s := newState()
	s.AddStep("Open login page")
	s.AddParameterByID(0, "username")

	snap := s.Snapshot()
	snap.Selection[0].Label = "mutated"
	snap.Selection[0].Parameters[0].DefaultValue = "mutated"
	snap.Selection = append(snap.Selection, &api.SelectedStep{})

	fresh := s.Snapshot()
	assert.Len(t, fresh.Selection, 1)
	assert.Equal(t, "Open login page", fresh.Selection[0].Label)
	assert.Equal(t, "default", fresh.Selection[0].Parameters[0].DefaultValue)
}

func TestSnapshotUnchangedByLaterMutation(t *testing.T) {
	s := newState()
	s.AddStep("Open login page")
	s.AddStep("Click save")

	before := s.Snapshot()
	s.ReorderSteps(0, 1)
	s.ToggleExpand(0)

	assert.Equal(t, "Open login page", before.Selection[0].Label)
	assert.True(t, before.Selection[0].Expanded)
	assert.Equal(t, int64(2), before.Version)
	assert.Equal(t, int64(4), s.Version())
}

func TestNotifyOnlyOnChange(t *testing.T) {
	rec := &recorder{}
	s := newState(
		builder.WithNotifier(rec), builder.WithSessionID("sess-1"),
	)

	assert.True(t, s.AddStep("Open login page"))
	assert.False(t, s.AddStep("missing"))
	assert.False(t, s.RemoveStep(5))
	assert.False(t, s.ReorderSteps(0, 0))
	assert.True(t, s.AddParameterByID(0, "username"))
	assert.False(t, s.AddParameterByID(0, "username"))
	assert.True(t, s.ToggleExpand(0))
	assert.True(t, s.ClearAll())
	assert.False(t, s.ClearAll())

	assert.Equal(t, []api.EventType{
		api.EventTypeStepAdded,
		api.EventTypeParameterAdded,
		api.EventTypeStepToggled,
		api.EventTypeSelectionCleared,
	}, rec.types())

	for i, ev := range rec.events {
		assert.Equal(t, api.SessionID("sess-1"), ev.SessionID)
		assert.Equal(t, int64(i+1), ev.Version)
	}
	assert.Len(t, rec.events[1].Selection[0].Parameters, 1)
	assert.Empty(t, rec.events[3].Selection)
}

func TestNotifiedSelectionIsACopy(t *testing.T) {
	var got *api.ChangeEvent
	s := newState(builder.WithNotifier(
		builder.NotifierFunc(func(ev *api.ChangeEvent) { got = ev }),
	))
	s.AddStep("Click save")

	require.NotNil(t, got)
	got.Selection[0].Label = "mutated"
	assert.Equal(t, "1. Click save", s.Description())
}

func TestNotifierMayReadState(t *testing.T) {
	var s *builder.State
	var seen []string
	s = newState(builder.WithNotifier(
		builder.NotifierFunc(func(*api.ChangeEvent) {
			seen = append(seen, s.Description())
		}),
	))

	s.AddStep("Open login page")
	s.AddStep("Click save")
	assert.Equal(t, []string{
		"1. Open login page",
		"1. Open login page\n2. Click save",
	}, seen)
}

func TestConcurrentMutations(t *testing.T) {
	rec := &recorder{}
	s := newState(builder.WithNotifier(rec))

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			s.AddStep("Click save")
		})
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
	assert.Equal(t, int64(20), s.Version())
	assert.Len(t, rec.events, 20)
	for i, ev := range rec.events {
		assert.Equal(t, int64(i+1), ev.Version)
	}
}
