package builder

import (
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/util"
)

// AddStep appends a new instance of the step template. The same template
// may be added any number of times; each addition gets its own instance ID
func (s *State) AddStep(templateID string) bool {
	tmpl, ok := s.catalog.Step(templateID)
	if !ok {
		return false
	}
	return s.apply(api.EventTypeStepAdded,
		func(sel api.Selection) (api.Selection, bool) {
			st := &api.SelectedStep{
				InstanceID: s.ids.NextInstanceID(),
				TemplateID: tmpl.ID,
				Label:      tmpl.Label,
				Parameters: []*api.ParameterInstance{},
				Expanded:   s.expand == api.ExpandPolicyExpanded,
			}
			return util.Append(sel, st), true
		},
	)
}

// RemoveStep deletes the step at index
func (s *State) RemoveStep(index int) bool {
	return s.apply(api.EventTypeStepRemoved,
		func(sel api.Selection) (api.Selection, bool) {
			res, _, ok := util.RemoveAt(sel, index)
			return res, ok
		},
	)
}

// ReorderSteps moves the step at from to position to, shifting the steps
// in between. to is clamped into range; an invalid from is ignored
func (s *State) ReorderSteps(from, to int) bool {
	return s.apply(api.EventTypeStepsReordered,
		func(sel api.Selection) (api.Selection, bool) {
			return util.Move(sel, from, to)
		},
	)
}

// ToggleExpand flips the expanded flag of the step at index
func (s *State) ToggleExpand(index int) bool {
	return s.apply(api.EventTypeStepToggled,
		func(sel api.Selection) (api.Selection, bool) {
			if !util.InRange(index, len(sel)) {
				return sel, false
			}
			st := *sel[index]
			st.Expanded = !st.Expanded
			return util.ReplaceAt(sel, index, &st), true
		},
	)
}

// ClearAll empties the selection
func (s *State) ClearAll() bool {
	return s.apply(api.EventTypeSelectionCleared,
		func(sel api.Selection) (api.Selection, bool) {
			if len(sel) == 0 {
				return sel, false
			}
			return api.Selection{}, true
		},
	)
}
