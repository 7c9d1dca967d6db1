package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/testgen/pkg/api"
)

func TestValueTypeValidate(t *testing.T) {
	for _, vt := range []api.ValueType{
		api.ValueText, api.ValueNumber, api.ValueBoolean, api.ValueDate,
		api.ValuePassword,
	} {
		assert.NoError(t, vt.Validate())
	}
	assert.ErrorIs(t,
		api.ValueType("color").Validate(), api.ErrInvalidValueType,
	)
	assert.ErrorIs(t, api.ValueType("").Validate(), api.ErrInvalidValueType)
}

func TestExpandPolicyValidate(t *testing.T) {
	assert.NoError(t, api.ExpandPolicyExpanded.Validate())
	assert.NoError(t, api.ExpandPolicyCollapsed.Validate())
	assert.ErrorIs(t,
		api.ExpandPolicy("open").Validate(), api.ErrInvalidExpandPolicy,
	)
}

func TestParameterKey(t *testing.T) {
	p := &api.ParameterInstance{ID: "p_1", Label: "username"}
	assert.Equal(t, "username", p.Key())

	p.Label = ""
	assert.Equal(t, "p_1", p.Key())
}

func TestParameterApply(t *testing.T) {
	p := &api.ParameterInstance{
		ID: "p", Label: "old", DefaultValue: "1", ValueType: api.ValueText,
	}
	label := "new"
	vt := api.ValueNumber

	res := p.Apply(api.ParameterChanges{Label: &label, ValueType: &vt})
	assert.Equal(t, "new", res.Label)
	assert.Equal(t, "1", res.DefaultValue)
	assert.Equal(t, api.ValueNumber, res.ValueType)
	assert.Equal(t, "old", p.Label)

	assert.True(t, api.ParameterChanges{}.IsEmpty())
	assert.False(t, api.ParameterChanges{Label: &label}.IsEmpty())
}

func TestSelectionClone(t *testing.T) {
	sel := api.Selection{
		{
			InstanceID: "i1",
			Label:      "open page",
			Parameters: []*api.ParameterInstance{{ID: "url", Label: "url"}},
		},
	}

	cl := sel.Clone()
	cl[0].Label = "changed"
	cl[0].Parameters[0].Label = "changed"
	cl[0].Parameters = append(cl[0].Parameters, &api.ParameterInstance{})

	assert.Equal(t, "open page", sel[0].Label)
	assert.Equal(t, "url", sel[0].Parameters[0].Label)
	assert.Len(t, sel[0].Parameters, 1)
}

func TestSelectionIndexOf(t *testing.T) {
	sel := api.Selection{{InstanceID: "a"}, {InstanceID: "b"}}
	assert.Equal(t, 1, sel.IndexOf("b"))
	assert.Equal(t, -1, sel.IndexOf("c"))

	st := &api.SelectedStep{
		Parameters: []*api.ParameterInstance{{ID: "x"}, {ID: "y"}},
	}
	assert.Equal(t, 1, st.ParameterIndex("y"))
	assert.Equal(t, -1, st.ParameterIndex("z"))
}

func TestCatalogLookup(t *testing.T) {
	cat := &api.Catalog{
		Steps:      []api.StepTemplate{{ID: "Login", Label: "Login"}},
		Parameters: []api.ParameterTemplate{{ID: "user", Label: "user"}},
	}

	st, ok := cat.Step("Login")
	assert.True(t, ok)
	assert.Equal(t, "Login", st.Label)
	_, ok = cat.Step("Logout")
	assert.False(t, ok)

	p, ok := cat.Parameter("user")
	assert.True(t, ok)
	assert.Equal(t, "user", p.Label)
	_, ok = cat.Parameter("pass")
	assert.False(t, ok)
}
