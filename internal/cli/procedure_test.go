package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/testgen/internal/assert/helpers"
	"github.com/kode4food/testgen/internal/builder"
	"github.com/kode4food/testgen/internal/cli"
	"github.com/kode4food/testgen/pkg/api"
)

func TestLoadProcedure(t *testing.T) {
	p, err := cli.LoadProcedure(strings.NewReader(testProcedure))
	require.NoError(t, err)
	require.Len(t, p.Steps, 2)
	assert.Equal(t, "Open login page", p.Steps[0].Step)
	require.Len(t, p.Steps[0].Parameters, 2)
	assert.Equal(t, api.ValueNumber, *p.Steps[0].Parameters[1].Type)
	assert.True(t, p.Steps[1].Collapsed)
}

func TestLoadProcedureErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{name: "empty", text: "", err: cli.ErrEmptyProcedure},
		{name: "no_steps", text: "steps: []\n", err: cli.ErrEmptyProcedure},
		{name: "unknown_field", text: "stages:\n  - step: x\n"},
		{name: "malformed", text: "steps: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cli.LoadProcedure(strings.NewReader(tt.text))
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestProcedureApply(t *testing.T) {
	p, err := cli.LoadProcedure(strings.NewReader(testProcedure))
	require.NoError(t, err)

	st := builder.New(helpers.NewTestCatalog())
	require.NoError(t, p.Apply(st))

	sel := st.Snapshot().Selection
	require.Len(t, sel, 2)
	assert.True(t, sel[0].Expanded)
	assert.False(t, sel[1].Expanded)

	params := sel[0].Parameters
	require.Len(t, params, 2)
	assert.Equal(t, "username", params[0].ID)
	assert.Equal(t, "admin", params[0].DefaultValue)
	assert.Equal(t, "retries", params[1].Label)
	assert.Equal(t, api.ValueNumber, params[1].ValueType)
}

func TestProcedureApplyRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{
			name: "duplicate_template",
			text: "steps:\n  - step: Click save\n    parameters:\n" +
				"      - template: timeout\n      - template: timeout\n",
			err: cli.ErrParameterRejected,
		},
		{
			name: "unknown_template",
			text: "steps:\n  - step: Click save\n    parameters:\n" +
				"      - template: colour\n",
			err: cli.ErrParameterRejected,
		},
		{
			name: "invalid_type",
			text: "steps:\n  - step: Click save\n    parameters:\n" +
				"      - type: color\n",
			err: api.ErrInvalidValueType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := cli.LoadProcedure(strings.NewReader(tt.text))
			require.NoError(t, err)
			err = p.Apply(builder.New(helpers.NewTestCatalog()))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
