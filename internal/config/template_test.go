package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const templatePath = "../../configs/genuka-bridge.hcl.tmpl"

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate(`port = {{var "port" 8080 false}}
name = {{var "name" "bridge" false}}
origins = [{{var "origins" "http://a" false}}]
debug = {{var "debug" false false}}
secret = {{var "secret" "" true}}`, map[string]interface{}{
		"origins": "http://a, http://b",
		"secret":  `s"3`,
	})
	require.NoError(t, err)
	require.Equal(t, `port = 8080
name = "bridge"
origins = ["http://a", "http://b"]
debug = false
secret = "s\"3"`, string(out))
}

func TestRenderTemplateMissingRequired(t *testing.T) {
	_, err := RenderTemplate(`a = {{var "b_var" "" true}}
b = {{var "a_var" "" true}}`, map[string]interface{}{"a_var": ""})
	require.EqualError(t, err, "required template variables not set: a_var, b_var")
}

func TestGenerateConfigFromTemplateRoundTrip(t *testing.T) {
	output := filepath.Join(t.TempDir(), "nested", "local.hcl")

	err := GenerateConfigFromTemplate(templatePath, output, map[string]interface{}{
		"environment":          "development",
		"db_driver":            "sqlite",
		"db_name":              "bridge.db",
		"genuka_client_id":     "client-id",
		"genuka_client_secret": "client-secret",
		"cors_allowed_origins": "http://localhost:3000,http://localhost:5173",
	})
	require.NoError(t, err)

	info, err := os.Stat(output)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	cfg, err := LoadConfig(output)
	require.NoError(t, err)
	require.Equal(t, "client-id", cfg.Genuka.ClientID)
	require.Equal(t, "/dashboard", cfg.Genuka.DefaultRedirect)
	require.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Security.CORS.AllowedOrigins)
	require.NotNil(t, cfg.Session)
	require.Empty(t, cfg.Session.Secret)
}

func TestGenerateConfigFromTemplateRequiresSecrets(t *testing.T) {
	output := filepath.Join(t.TempDir(), "local.hcl")

	err := GenerateConfigFromTemplate(templatePath, output, map[string]interface{}{})
	require.ErrorContains(t, err, "genuka_client_id, genuka_client_secret")

	_, statErr := os.Stat(output)
	require.True(t, os.IsNotExist(statErr))
}
