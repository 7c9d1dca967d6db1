package api

type (
	// StepTemplate is a catalog entry describing a reusable procedure step
	StepTemplate struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}

	// ParameterTemplate is a catalog entry describing a reusable parameter
	ParameterTemplate struct {
		ID           string `json:"id"`
		Label        string `json:"label"`
		DefaultValue string `json:"defaultValue"`
	}

	// Catalog holds the step and parameter templates a builder draws from
	Catalog struct {
		Steps      []StepTemplate      `json:"steps"`
		Parameters []ParameterTemplate `json:"parameters"`
	}

	// CatalogStatus reports the progress of the catalog load
	CatalogStatus string
)

const (
	CatalogLoading CatalogStatus = "loading"
	CatalogReady   CatalogStatus = "ready"
	CatalogFailed  CatalogStatus = "failed"
)

// Step returns the step template with the given ID
func (c *Catalog) Step(id string) (StepTemplate, bool) {
	for _, s := range c.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return StepTemplate{}, false
}

// Parameter returns the parameter template with the given ID
func (c *Catalog) Parameter(id string) (ParameterTemplate, bool) {
	for _, p := range c.Parameters {
		if p.ID == id {
			return p, true
		}
	}
	return ParameterTemplate{}, false
}
