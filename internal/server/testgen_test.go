package server_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/testgen/internal/assert/helpers"
	"github.com/kode4food/testgen/internal/catalog"
	"github.com/kode4food/testgen/pkg/api"
)

const testCase = `ID: TC_100
Title: Save settings
Groups: smoke
Category: Settings
Step 1: Open login page
Step 2: Click save
`

const testMethods = `Open login page,loginPage.open()
Click save,settingsPage.save()
`

func withMethodsEnv(t *testing.T, fn func(*helpers.TestServerEnv)) {
	t.Helper()
	cfg := helpers.NewTestConfig()
	src := helpers.NewMemSource(t, map[string]string{
		cfg.Catalog.StepsKey:      helpers.TestStepsText,
		cfg.Catalog.ParametersKey: helpers.TestParametersText,
		cfg.Catalog.MethodsKey:    testMethods,
	})
	store := catalog.NewStore(catalog.NewLoader(src, cfg))
	require.NoError(t, store.Load(context.Background()))

	env := helpers.NewTestServerEnvWithStore(cfg, store)
	defer env.Cleanup()
	fn(env)
}

func TestGenerateTest(t *testing.T) {
	withMethodsEnv(t, func(env *helpers.TestServerEnv) {
		r := newRouter(t, env)

		w := r.do(http.MethodPost, "/api/testgen",
			api.GenerateTestRequest{Description: testCase})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		res := decode[api.GenerateTestResponse](t, w)
		assert.Equal(t, "TC_100", res.TestID)
		assert.Equal(t,
			"src/test/java/com/nakivo/tests/manual/SettingsManualTest.java",
			res.Path,
		)
		assert.Contains(t, res.Content, "settingsPage.save();")
	})
}

func TestGenerateTestBadInput(t *testing.T) {
	withMethodsEnv(t, func(env *helpers.TestServerEnv) {
		r := newRouter(t, env)

		w := r.do(http.MethodPost, "/api/testgen",
			api.GenerateTestRequest{Description: "Step 1: Click save"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = r.do(http.MethodPost, "/api/testgen",
			api.GenerateTestRequest{
				Description: testCase + "Step 3: Format disk\n",
			})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGenerateTestNoMappings(t *testing.T) {
	helpers.WithTestEnv(t, func(env *helpers.TestServerEnv) {
		r := newRouter(t, env)

		w := r.do(http.MethodPost, "/api/testgen",
			api.GenerateTestRequest{Description: testCase})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
