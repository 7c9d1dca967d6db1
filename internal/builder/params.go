package builder

import (
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/util"
)

// AddParameter appends a parameter to the step at stepIndex. A nil template
// adds a blank custom parameter with a generated ID. A template already
// attached to the step is ignored. The step is expanded so the new entry
// is visible
func (s *State) AddParameter(
	stepIndex int, tmpl *api.ParameterTemplate,
) bool {
	return s.apply(api.EventTypeParameterAdded,
		func(sel api.Selection) (api.Selection, bool) {
			if !util.InRange(stepIndex, len(sel)) {
				return sel, false
			}
			st := *sel[stepIndex]
			p := &api.ParameterInstance{ValueType: api.ValueText}
			if tmpl != nil {
				if st.ParameterIndex(tmpl.ID) >= 0 {
					return sel, false
				}
				p.ID = tmpl.ID
				p.Label = tmpl.Label
				p.DefaultValue = tmpl.DefaultValue
			} else {
				p.ID = s.ids.NextParameterID()
			}
			st.Parameters = util.Append(st.Parameters, p)
			st.Expanded = true
			return util.ReplaceAt(sel, stepIndex, &st), true
		},
	)
}

// AddParameterByID looks up a parameter template in the catalog and adds it
// to the step at stepIndex
func (s *State) AddParameterByID(stepIndex int, templateID string) bool {
	tmpl, ok := s.catalog.Parameter(templateID)
	if !ok {
		return false
	}
	return s.AddParameter(stepIndex, &tmpl)
}

// UpdateParameter merges changes into a parameter of the step at stepIndex.
// Unknown value types and changes that alter nothing are ignored
func (s *State) UpdateParameter(
	stepIndex int, paramID string, ch api.ParameterChanges,
) bool {
	if ch.IsEmpty() {
		return false
	}
	if ch.ValueType != nil && ch.ValueType.Validate() != nil {
		return false
	}
	return s.apply(api.EventTypeParameterUpdated,
		func(sel api.Selection) (api.Selection, bool) {
			if !util.InRange(stepIndex, len(sel)) {
				return sel, false
			}
			st := *sel[stepIndex]
			i := st.ParameterIndex(paramID)
			if i < 0 {
				return sel, false
			}
			p := st.Parameters[i].Apply(ch)
			if *p == *st.Parameters[i] {
				return sel, false
			}
			st.Parameters = util.ReplaceAt(st.Parameters, i, p)
			return util.ReplaceAt(sel, stepIndex, &st), true
		},
	)
}

// DeleteParameter removes a parameter from the step at stepIndex
func (s *State) DeleteParameter(stepIndex int, paramID string) bool {
	return s.apply(api.EventTypeParameterDeleted,
		func(sel api.Selection) (api.Selection, bool) {
			if !util.InRange(stepIndex, len(sel)) {
				return sel, false
			}
			st := *sel[stepIndex]
			res, _, ok := util.RemoveAt(
				st.Parameters, st.ParameterIndex(paramID),
			)
			if !ok {
				return sel, false
			}
			st.Parameters = res
			return util.ReplaceAt(sel, stepIndex, &st), true
		},
	)
}

// ReorderParameters moves a parameter within one step's list, with the same
// index rules as ReorderSteps
func (s *State) ReorderParameters(instanceID string, from, to int) bool {
	return s.apply(api.EventTypeParametersReordered,
		func(sel api.Selection) (api.Selection, bool) {
			i := sel.IndexOf(instanceID)
			if i < 0 {
				return sel, false
			}
			st := *sel[i]
			res, ok := util.Move(st.Parameters, from, to)
			if !ok {
				return sel, false
			}
			st.Parameters = res
			return util.ReplaceAt(sel, i, &st), true
		},
	)
}

// MoveParameterAcrossSteps removes a parameter from the source step and
// inserts it into the destination step at destIndex, clamped to the
// destination's bounds. The destination is not checked for a parameter with
// the same ID. Moves within a single step behave like ReorderParameters
func (s *State) MoveParameterAcrossSteps(
	srcInstanceID string, srcIndex int, dstInstanceID string, dstIndex int,
) bool {
	if srcInstanceID == dstInstanceID {
		return s.ReorderParameters(srcInstanceID, srcIndex, dstIndex)
	}
	return s.apply(api.EventTypeParameterMoved,
		func(sel api.Selection) (api.Selection, bool) {
			si := sel.IndexOf(srcInstanceID)
			di := sel.IndexOf(dstInstanceID)
			if si < 0 || di < 0 {
				return sel, false
			}
			src := *sel[si]
			dst := *sel[di]
			rest, p, ok := util.RemoveAt(src.Parameters, srcIndex)
			if !ok {
				return sel, false
			}
			src.Parameters = rest
			dst.Parameters = util.InsertAt(dst.Parameters, dstIndex, p)
			res := util.ReplaceAt(sel, si, &src)
			res[di] = &dst
			return res, true
		},
	)
}
