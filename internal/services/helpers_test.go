package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"genuka-bridge/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-client-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Company{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func strPtr(s string) *string {
	return &s
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// fakeGenuka підміняє Genuka API в тестах оркестратора
type fakeGenuka struct {
	exchangeCalls int
	refreshCalls  int
	exchangeErr   error
	refreshErr    error
	tokens        *models.ProviderTokens
	info          *models.CompanyInfo
	lastRefresh   string
}

func (f *fakeGenuka) ExchangeCode(_ context.Context, _ string) (*models.ProviderTokens, error) {
	f.exchangeCalls++
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.tokens, nil
}

func (f *fakeGenuka) RefreshAccessToken(_ context.Context, refreshToken string) (*models.ProviderTokens, error) {
	f.refreshCalls++
	f.lastRefresh = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.tokens, nil
}

func (f *fakeGenuka) GetCompanyInfo(_ context.Context, companyID string) *models.CompanyInfo {
	if f.info != nil {
		return f.info
	}
	return &models.CompanyInfo{ID: companyID, Name: "Company " + companyID}
}

func (f *fakeGenuka) Get(context.Context, string, string, interface{}) error {
	return nil
}

func (f *fakeGenuka) Post(context.Context, string, string, interface{}, interface{}) error {
	return nil
}
