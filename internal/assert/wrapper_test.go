package assert

import (
	"testing"

	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/pkg/api"
)

func testSelection() api.Selection {
	return api.Selection{
		{
			InstanceID: "s1",
			TemplateID: "Open login page",
			Label:      "Open login page",
			Parameters: []*api.ParameterInstance{
				{ID: "username", Label: "username", DefaultValue: "qa"},
				{ID: "password", Label: "password", DefaultValue: "pw"},
			},
		},
		{
			InstanceID: "s2",
			TemplateID: "Click save",
			Label:      "Click save",
		},
	}
}

func TestNew(t *testing.T) {
	wrapper := New(t)

	if wrapper.T != t {
		t.Error("Wrapper.T should be set to the testing.T instance")
	}
	if wrapper.Assertions == nil {
		t.Error("Wrapper.Assertions should be initialized")
	}
	if wrapper.Require == nil {
		t.Error("Wrapper.Require should be initialized")
	}
}

func TestSelectionIntact(t *testing.T) {
	w := New(t)
	w.SelectionIntact(testSelection())
	w.SelectionIntact(api.Selection{})
}

func TestStepLabels(t *testing.T) {
	w := New(t)
	w.StepLabels(testSelection(), "Open login page", "Click save")
	w.StepLabels(api.Selection{})
}

func TestSameSteps(t *testing.T) {
	w := New(t)
	sel := testSelection()
	w.SameSteps(sel, api.Selection{sel[1], sel[0]})
}

func TestParameterIDs(t *testing.T) {
	w := New(t)
	sel := testSelection()
	w.ParameterIDs(sel[0], "username", "password")
	w.ParameterIDs(sel[1])
}

func TestPayloadJSONEq(t *testing.T) {
	w := New(t)
	w.PayloadJSONEq(api.PayloadOf(testSelection()), `[
		{
			"stepText": "Open login page",
			"parameters": {"username": "qa", "password": "pw"}
		},
		{"stepText": "Click save", "parameters": {}}
	]`)
}

func TestConfigValid(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() *config.Config
	}{
		{
			name: "default_config",
			cfg:  config.NewDefaultConfig,
		},
		{
			name: "custom_port",
			cfg: func() *config.Config {
				cfg := config.NewDefaultConfig()
				cfg.APIPort = 9090
				return cfg
			},
		},
		{
			name: "maximum_port",
			cfg: func() *config.Config {
				cfg := config.NewDefaultConfig()
				cfg.APIPort = 65535
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(t)
			w.ConfigValid(tt.cfg())
		})
	}
}

func TestConfigInvalid(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*config.Config)
		contains string
	}{
		{
			name:     "port_zero",
			modify:   func(c *config.Config) { c.APIPort = 0 },
			contains: "port",
		},
		{
			name:     "port_too_large",
			modify:   func(c *config.Config) { c.APIPort = 65536 },
			contains: "port",
		},
		{
			name:     "catalog_timeout_zero",
			modify:   func(c *config.Config) { c.Catalog.Timeout = 0 },
			contains: "timeout",
		},
		{
			name:     "cache_size_zero",
			modify:   func(c *config.Config) { c.Session.CacheSize = 0 },
			contains: "cache",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			tt.modify(cfg)
			w := New(t)
			w.ConfigInvalid(cfg, tt.contains)
		})
	}
}
