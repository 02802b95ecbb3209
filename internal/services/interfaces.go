package services

import (
	"context"

	"genuka-bridge/internal/models"
)

// OAuthService інтерфейс для OAuth потоку Genuka
type OAuthService interface {
	ValidateCallbackParams(req *models.CallbackRequest) error
	HandleCallback(ctx context.Context, req *models.CallbackRequest) (*models.Company, error)
	RefreshSession(ctx context.Context, companyID string) (*models.Company, error)
}

// CompanyService інтерфейс для роботи з компаніями в базі даних
type CompanyService interface {
	FindByID(ctx context.Context, id string) (*models.Company, error)
	FindByHandle(ctx context.Context, handle string) (*models.Company, error)
	FindByAccessToken(ctx context.Context, accessToken string) (*models.Company, error)
	FindAll(ctx context.Context) ([]models.Company, error)
	Upsert(ctx context.Context, company *models.Company) error
	UpdateByID(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, id string) error
}

// WebhookRouter інтерфейс для маршрутизації webhook подій
type WebhookRouter interface {
	Dispatch(ctx context.Context, event *models.WebhookEvent) error
	Handle(eventType EventType, handler WebhookHandlerFunc) error
}
