package cli

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kode4food/testgen/internal/builder"
	"github.com/kode4food/testgen/pkg/api"
)

type (
	// Procedure is a scripted sequence of builder actions
	Procedure struct {
		Steps []ProcedureStep `yaml:"steps"`
	}

	// ProcedureStep selects one step template and attaches parameters to
	// the new instance
	ProcedureStep struct {
		Step       string           `yaml:"step"`
		Collapsed  bool             `yaml:"collapsed,omitempty"`
		Parameters []ProcedureParam `yaml:"parameters,omitempty"`
	}

	// ProcedureParam attaches a catalog parameter, or a custom one when
	// Template is empty, and then overrides its fields
	ProcedureParam struct {
		Template string         `yaml:"template,omitempty"`
		Label    *string        `yaml:"label,omitempty"`
		Value    *string        `yaml:"value,omitempty"`
		Type     *api.ValueType `yaml:"type,omitempty"`
	}
)

var (
	ErrEmptyProcedure    = errors.New("procedure has no steps")
	ErrUnknownStep       = errors.New("unknown step template")
	ErrParameterRejected = errors.New("parameter could not be added")
)

// LoadProcedure decodes a YAML procedure. Unknown fields are rejected
func LoadProcedure(r io.Reader) (*Procedure, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Procedure
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyProcedure
		}
		return nil, err
	}
	if len(p.Steps) == 0 {
		return nil, ErrEmptyProcedure
	}
	return &p, nil
}

// Apply replays the procedure against st, stopping at the first action the
// builder refuses
func (p *Procedure) Apply(st *builder.State) error {
	for i, step := range p.Steps {
		if err := step.apply(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (ps *ProcedureStep) apply(st *builder.State) error {
	if !st.AddStep(ps.Step) {
		return fmt.Errorf("%w: %q", ErrUnknownStep, ps.Step)
	}
	idx := st.Len() - 1

	for _, pp := range ps.Parameters {
		if err := pp.apply(st, idx); err != nil {
			return err
		}
	}

	if ps.Collapsed && st.Snapshot().Selection[idx].Expanded {
		st.ToggleExpand(idx)
	}
	return nil
}

func (pp *ProcedureParam) apply(st *builder.State, idx int) error {
	if pp.Type != nil {
		if err := pp.Type.Validate(); err != nil {
			return err
		}
	}

	var ok bool
	if pp.Template != "" {
		ok = st.AddParameterByID(idx, pp.Template)
	} else {
		ok = st.AddParameter(idx, nil)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrParameterRejected, pp.Template)
	}

	params := st.Snapshot().Selection[idx].Parameters
	id := params[len(params)-1].ID
	st.UpdateParameter(idx, id, api.ParameterChanges{
		Label:        pp.Label,
		DefaultValue: pp.Value,
		ValueType:    pp.Type,
	})
	return nil
}
