package cli

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"genuka-bridge/internal/services"

	"github.com/stretchr/testify/require"
)

func TestSignedCallbackURL(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	raw, err := signedCallbackURL("http://localhost:8080/", "secret", "code-1", "c1", "/dashboard?tab=a b", now)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "http://localhost:8080/api/auth/callback?"))

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	query := parsed.Query()
	require.Equal(t, "1700000000", query.Get("timestamp"))
	require.Equal(t, "/dashboard?tab=a b", query.Get("redirect_to"))

	params := services.CallbackParams(query.Get("code"), query.Get("company_id"), query.Get("redirect_to"), query.Get("timestamp"))
	require.True(t, services.NewSignatureService("secret").Verify(params, query.Get("hmac")))
	require.False(t, services.NewSignatureService("other").Verify(params, query.Get("hmac")))
}

func TestSignedCallbackURLRequiresCompany(t *testing.T) {
	_, err := signedCallbackURL("http://localhost:8080", "secret", "code", "", "/", time.Now())
	require.Error(t, err)
}

func TestGetConfigVars(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("GENUKA_CLIENT_ID", "client-id")
	t.Setenv("GENUKA_CLIENT_SECRET", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	vars := getConfigVars("production", "1.2.3")

	require.Equal(t, "production", vars["environment"])
	require.Equal(t, "1.2.3", vars["build_version"])
	require.Equal(t, "db.internal", vars["db_host"])
	require.Equal(t, 5432, vars["db_port"])
	require.Equal(t, "warn", vars["log_level"])
	require.Equal(t, "json", vars["log_format"])
	require.Equal(t, "client-id", vars["genuka_client_id"])
	require.NotContains(t, vars, "genuka_client_secret")
}

func TestNewAppCommands(t *testing.T) {
	app := NewApp()

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	require.Equal(t, []string{"configure", "server", "migrate", "sign-callback", "version"}, names)
}
