package builder

import "github.com/kode4food/testgen/pkg/api"

// ApplyGesture applies a completed drag reported by a gesture layer. Steps
// live in the list api.StepListID and each step's parameters in
// api.ParamListID(instanceID). A gesture without a destination was
// cancelled and changes nothing
func (s *State) ApplyGesture(g api.MoveGesture) bool {
	if g.Destination == nil {
		return false
	}
	src, dst := g.Source, *g.Destination

	if src.ListID == api.StepListID || dst.ListID == api.StepListID {
		if src.ListID != dst.ListID {
			return false
		}
		return s.ReorderSteps(src.Index, dst.Index)
	}

	srcID, ok := api.ParseParamListID(src.ListID)
	if !ok {
		return false
	}
	dstID, ok := api.ParseParamListID(dst.ListID)
	if !ok {
		return false
	}
	return s.MoveParameterAcrossSteps(srcID, src.Index, dstID, dst.Index)
}
