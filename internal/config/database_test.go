package config

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"genuka-bridge/internal/models"
	"genuka-bridge/internal/services"
	"genuka-bridge/migrations"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestDevelopmentSQLLogOmitsTokens(t *testing.T) {
	var buf bytes.Buffer
	previousOut, previousLevel := logrus.StandardLogger().Out, logrus.GetLevel()
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.InfoLevel)
	t.Cleanup(func() {
		logrus.SetOutput(previousOut)
		logrus.SetLevel(previousLevel)
	})

	cfg := validConfig()
	cfg.Server.Environment = "development"
	cfg.Database = DatabaseConfig{
		Driver: "sqlite",
		Name:   fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}

	db, err := OpenDatabase(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrations.Run(db))

	err = services.NewCompanyService(db).Upsert(context.Background(), &models.Company{
		ID:           "c1",
		Name:         "Acme",
		AccessToken:  "ACCESS-TOKEN-SECRET",
		RefreshToken: "REFRESH-TOKEN-SECRET",
	})
	require.NoError(t, err)

	output := buf.String()
	require.Contains(t, output, "INSERT INTO")
	require.NotContains(t, output, "ACCESS-TOKEN-SECRET")
	require.NotContains(t, output, "REFRESH-TOKEN-SECRET")
}
