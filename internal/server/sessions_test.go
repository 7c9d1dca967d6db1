package server_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/testgen/internal/assert/helpers"
	"github.com/kode4food/testgen/internal/catalog"
	"github.com/kode4food/testgen/pkg/api"
)

func TestSessionLifecycle(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestServerEnv) {
		r := newRouter(t, env)
		id := r.createSession()

		res := r.session(http.MethodGet, sessionPath(id, ""), nil)
		assert.Equal(t, id, res.ID)
		assert.Empty(t, res.Selection)
		assert.Empty(t, res.Description)

		w := r.do(http.MethodGet, "/api/session", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[api.SessionsListResponse](t, w)
		assert.Equal(t, []api.SessionID{id}, list.Sessions)
		assert.Equal(t, 1, list.Count)

		w = r.do(http.MethodDelete, sessionPath(id, ""), nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = r.do(http.MethodGet, sessionPath(id, ""), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = r.do(http.MethodDelete, sessionPath(id, ""), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUnknownSession(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestServerEnv) {
		r := newRouter(t, env)
		paths := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/session/missing"},
			{http.MethodPost, "/api/session/missing/step"},
			{http.MethodGet, "/api/session/missing/description"},
			{http.MethodPost, "/api/session/missing/submit"},
		}
		for _, p := range paths {
			w := r.do(p.method, p.path, `{}`)
			assert.Equal(t, http.StatusNotFound, w.Code, p.path)
		}
	})
}

func TestCreateSessionCatalogNotReady(t *testing.T) {
	cfg := helpers.NewTestConfig()
	src := helpers.NewMemSource(t, map[string]string{})
	store := catalog.NewStore(catalog.NewLoader(src, cfg))

	env := helpers.NewTestServerEnvWithStore(cfg, store)
	defer env.Cleanup()
	r := newRouter(t, env)

	w := r.do(http.MethodPost, "/api/session", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = r.do(http.MethodGet, "/health", nil)
	res := decode[api.HealthResponse](t, w)
	assert.Equal(t, "degraded", res.Status)
	assert.Equal(t, api.CatalogLoading, res.Catalog)
}

func TestDescriptionAndPayload(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestServerEnv) {
		r := newRouter(t, env)
		id := r.createSession()

		r.session(http.MethodPost, sessionPath(id, "/step"),
			api.AddStepRequest{TemplateID: "Open login page"})
		r.session(http.MethodPost, sessionPath(id, "/step"),
			api.AddStepRequest{TemplateID: "Click save"})
		r.session(http.MethodPost, sessionPath(id, "/step/0/param"),
			api.AddParameterRequest{TemplateID: "timeout"})
		vt, val := api.ValueNumber, "30"
		r.session(http.MethodPatch, sessionPath(id, "/step/0/param/timeout"),
			api.ParameterChanges{ValueType: &vt, DefaultValue: &val})

		w := r.do(http.MethodGet, sessionPath(id, "/description"), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Equal(t,
			"1. Open login page\n2. Click save", w.Body.String(),
		)

		w = r.do(http.MethodGet, sessionPath(id, "/payload"), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[
			{"stepText":"Open login page","parameters":{"timeout":30}},
			{"stepText":"Click save","parameters":{}}
		]`, w.Body.String())
	})
}
