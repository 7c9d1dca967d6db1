package builder_test

import (
	"testing"

	"github.com/kode4food/testgen/internal/assert"
	"github.com/kode4food/testgen/internal/builder"
	"github.com/kode4food/testgen/pkg/api"
)

func TestAddStepPermitsDuplicates(t *testing.T) {
	as := assert.New(t)

	s := newState()
	as.True(s.AddStep("Click save"))
	as.True(s.AddStep("Click save"))

	snap := s.Snapshot()
	as.Len(snap.Selection, 2)
	as.NotEqual(
		snap.Selection[0].InstanceID, snap.Selection[1].InstanceID,
	)
	as.Equal(snap.Selection[0].Label, snap.Selection[1].Label)
	as.Equal("Click save", snap.Selection[1].TemplateID)
	as.Empty(snap.Selection[0].Parameters)
}

func TestAddStepUnknownTemplate(t *testing.T) {
	as := assert.New(t)

	s := newState()
	as.False(s.AddStep("Not in catalog"))
	as.Equal(0, s.Len())
}

func TestAddStepExpandPolicy(t *testing.T) {
	as := assert.New(t)

	s := newState()
	s.AddStep("Click save")
	as.True(s.Snapshot().Selection[0].Expanded)

	c := newState(builder.WithExpandPolicy(api.ExpandPolicyCollapsed))
	c.AddStep("Click save")
	as.False(c.Snapshot().Selection[0].Expanded)
}

func TestRemoveStep(t *testing.T) {
	as := assert.New(t)

	s := newState()
	s.AddStep("Open login page")
	s.AddStep("Enter credentials")
	s.AddStep("Click save")
	s.AddParameterByID(2, "timeout")
	before := s.Snapshot()

	as.True(s.RemoveStep(1))
	after := s.Snapshot()
	as.Len(after.Selection, 2)
	as.Equal(before.Selection[0], after.Selection[0])
	as.Equal(before.Selection[2], after.Selection[1])
	as.Equal("1. Open login page\n2. Click save", s.Description())
}

func TestRemoveStepOutOfRange(t *testing.T) {
	as := assert.New(t)

	s := newState()
	s.AddStep("Click save")

	for _, idx := range []int{-1, 1, 100} {
		as.False(s.RemoveStep(idx))
	}
	as.Equal(1, s.Len())
}

func TestReorderSteps(t *testing.T) {
	open, enter, save := "Open login page", "Enter credentials", "Click save"

	tests := []struct {
		name    string
		from    int
		to      int
		want    []string
		changed bool
	}{
		{
			name:    "first_to_last",
			from:    0,
			to:      2,
			want:    []string{enter, save, open},
			changed: true,
		},
		{
			name:    "last_to_first",
			from:    2,
			to:      0,
			want:    []string{save, open, enter},
			changed: true,
		},
		{
			name:    "to_clamped",
			from:    0,
			to:      10,
			want:    []string{enter, save, open},
			changed: true,
		},
		{
			name: "from_out_of_range",
			from: 3,
			to:   0,
			want: []string{open, enter, save},
		},
		{
			name: "same_position",
			from: 1,
			to:   1,
			want: []string{open, enter, save},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as := assert.New(t)
			s := newState()
			s.AddStep(open)
			s.AddStep(enter)
			s.AddStep(save)
			before := s.Snapshot().Selection

			as.Equal(tt.changed, s.ReorderSteps(tt.from, tt.to))
			after := s.Snapshot().Selection
			as.StepLabels(after, tt.want...)
			as.SameSteps(before, after)
			as.SelectionIntact(after)
		})
	}
}

func TestToggleExpand(t *testing.T) {
	as := assert.New(t)

	s := newState()
	s.AddStep("Click save")

	as.True(s.ToggleExpand(0))
	as.False(s.Snapshot().Selection[0].Expanded)
	as.True(s.ToggleExpand(0))
	as.True(s.Snapshot().Selection[0].Expanded)
	as.False(s.ToggleExpand(1))
}

func TestClearAll(t *testing.T) {
	as := assert.New(t)

	s := newState()
	s.AddStep("Open login page")
	s.AddStep("Click save")
	s.AddParameter(0, nil)

	as.True(s.ClearAll())
	as.Equal("", s.Description())
	as.Empty(s.ParametersPayload())
	as.False(s.ClearAll())
}
