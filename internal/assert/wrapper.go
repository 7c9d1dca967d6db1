package assert

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/pkg/api"
)

// Wrapper wraps testify assertions with builder-specific helpers
type Wrapper struct {
	*testing.T
	*assert.Assertions
	Require *assert.Assertions
}

// New creates a new test assertion wrapper with both assert and require from
// testify plus builder-specific helpers
func New(t *testing.T) *Wrapper {
	return &Wrapper{
		T:          t,
		Assertions: assert.New(t),
		Require:    assert.New(t),
	}
}

// SelectionIntact asserts the structural invariants of a selection: step
// instance IDs are unique, and parameter IDs are unique within each step
func (w *Wrapper) SelectionIntact(sel api.Selection) {
	w.Helper()
	steps := map[string]bool{}
	for i, st := range sel {
		w.NotEmpty(st.InstanceID, "step %d has no instance id", i)
		w.False(steps[st.InstanceID],
			"duplicate step instance id: %s", st.InstanceID)
		steps[st.InstanceID] = true

		params := map[string]bool{}
		for _, p := range st.Parameters {
			w.False(params[p.ID],
				"duplicate parameter id %s in step %s", p.ID, st.InstanceID)
			params[p.ID] = true
		}
	}
}

// StepLabels asserts the labels of a selection, in order
func (w *Wrapper) StepLabels(sel api.Selection, expected ...string) {
	w.Helper()
	res := make([]string, len(sel))
	for i, st := range sel {
		res[i] = st.Label
	}
	if expected == nil {
		expected = []string{}
	}
	w.Equal(expected, res)
}

// SameSteps asserts that two selections hold the same step instances,
// regardless of order
func (w *Wrapper) SameSteps(before, after api.Selection) {
	w.Helper()
	w.ElementsMatch(instanceIDs(before), instanceIDs(after))
}

// ParameterIDs asserts the parameter IDs of a step, in order
func (w *Wrapper) ParameterIDs(st *api.SelectedStep, expected ...string) {
	w.Helper()
	res := make([]string, len(st.Parameters))
	for i, p := range st.Parameters {
		res[i] = p.ID
	}
	if expected == nil {
		expected = []string{}
	}
	w.Equal(expected, res)
}

// PayloadJSONEq asserts that a payload serializes to the expected JSON
func (w *Wrapper) PayloadJSONEq(payload []api.StepPayload, expected string) {
	w.Helper()
	data, err := json.Marshal(payload)
	w.NoError(err)
	w.JSONEq(expected, string(data))
}

// ConfigValid asserts that a configuration is valid
func (w *Wrapper) ConfigValid(cfg *config.Config) {
	w.Helper()
	w.NoError(cfg.Validate())
	w.True(cfg.APIPort > 0 && cfg.APIPort <= config.MaxTCPPort)
	w.True(cfg.Catalog.Timeout > 0)
	w.True(cfg.Session.CacheSize > 0)
}

// ConfigInvalid asserts that a configuration is invalid
func (w *Wrapper) ConfigInvalid(cfg *config.Config, contains string) {
	w.Helper()
	err := cfg.Validate()
	w.Error(err)
	if err != nil && contains != "" {
		w.Contains(err.Error(), contains)
	}
}

func instanceIDs(sel api.Selection) []string {
	res := make([]string, len(sel))
	for i, st := range sel {
		res[i] = st.InstanceID
	}
	return res
}
