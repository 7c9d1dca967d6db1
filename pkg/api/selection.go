package api

import (
	"errors"
	"fmt"
)

type (
	// ValueType selects how a parameter's value is rendered in the payload
	ValueType string

	// ExpandPolicy selects whether newly added steps start expanded
	ExpandPolicy string

	// ParameterInstance is a configured parameter attached to a selected step
	ParameterInstance struct {
		ID           string    `json:"id"`
		Label        string    `json:"label"`
		DefaultValue string    `json:"defaultValue"`
		ValueType    ValueType `json:"valueType"`
	}

	// SelectedStep is one instance of a step template in the selection
	SelectedStep struct {
		InstanceID string               `json:"instanceId"`
		TemplateID string               `json:"templateId"`
		Label      string               `json:"label"`
		Parameters []*ParameterInstance `json:"parameters"`
		Expanded   bool                 `json:"expanded"`
	}

	// Selection is the ordered working set of selected steps
	Selection []*SelectedStep

	// ParameterChanges is a partial update of a parameter instance. Nil
	// fields are left untouched
	ParameterChanges struct {
		Label        *string    `json:"label,omitempty"`
		DefaultValue *string    `json:"defaultValue,omitempty"`
		ValueType    *ValueType `json:"valueType,omitempty"`
	}
)

const (
	ValueText     ValueType = "text"
	ValueNumber   ValueType = "number"
	ValueBoolean  ValueType = "boolean"
	ValueDate     ValueType = "date"
	ValuePassword ValueType = "password"
)

const (
	ExpandPolicyExpanded  ExpandPolicy = "expanded"
	ExpandPolicyCollapsed ExpandPolicy = "collapsed"
)

var (
	ErrInvalidValueType    = errors.New("invalid value type")
	ErrInvalidExpandPolicy = errors.New("invalid expand policy")
)

var valueTypes = map[ValueType]bool{
	ValueText:     true,
	ValueNumber:   true,
	ValueBoolean:  true,
	ValueDate:     true,
	ValuePassword: true,
}

// Validate returns an error if the value type is not one of the known types
func (v ValueType) Validate() error {
	if !valueTypes[v] {
		return fmt.Errorf("%w: %q", ErrInvalidValueType, v)
	}
	return nil
}

// Validate returns an error if the policy is not expanded or collapsed
func (p ExpandPolicy) Validate() error {
	switch p {
	case ExpandPolicyExpanded, ExpandPolicyCollapsed:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidExpandPolicy, p)
	}
}

// Key returns the payload key of the parameter: its label, or its ID when
// the label is empty
func (p *ParameterInstance) Key() string {
	if p.Label != "" {
		return p.Label
	}
	return p.ID
}

// Apply returns a copy of the parameter with the changes merged in
func (p *ParameterInstance) Apply(ch ParameterChanges) *ParameterInstance {
	res := *p
	if ch.Label != nil {
		res.Label = *ch.Label
	}
	if ch.DefaultValue != nil {
		res.DefaultValue = *ch.DefaultValue
	}
	if ch.ValueType != nil {
		res.ValueType = *ch.ValueType
	}
	return &res
}

// IsEmpty returns true if the changes touch no field
func (ch ParameterChanges) IsEmpty() bool {
	return ch.Label == nil && ch.DefaultValue == nil && ch.ValueType == nil
}

// ParameterIndex returns the position of the parameter with the given ID,
// or -1 if the step has no such parameter
func (s *SelectedStep) ParameterIndex(id string) int {
	for i, p := range s.Parameters {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the step
func (s *SelectedStep) Clone() *SelectedStep {
	res := *s
	res.Parameters = make([]*ParameterInstance, len(s.Parameters))
	for i, p := range s.Parameters {
		cp := *p
		res.Parameters[i] = &cp
	}
	return &res
}

// Clone returns a deep copy of the selection
func (s Selection) Clone() Selection {
	res := make(Selection, len(s))
	for i, st := range s {
		res[i] = st.Clone()
	}
	return res
}

// IndexOf returns the position of the step with the given instance ID, or
// -1 if the selection has no such step
func (s Selection) IndexOf(instanceID string) int {
	for i, st := range s {
		if st.InstanceID == instanceID {
			return i
		}
	}
	return -1
}
