package services

import (
	"context"
	"errors"
	"testing"

	"genuka-bridge/internal/models"

	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	for _, known := range KnownEventTypes {
		got, ok := ParseEventType(string(known))
		require.True(t, ok)
		require.Equal(t, known, got)
	}

	_, ok := ParseEventType("foo.bar")
	require.False(t, ok)
}

func TestDispatchCompanyUpdated(t *testing.T) {
	ctx := context.Background()
	companies := NewCompanyService(newTestDB(t))
	require.NoError(t, companies.Upsert(ctx, &models.Company{ID: "t1", Name: "Old"}))

	router := NewWebhookRouter(companies)
	err := router.Dispatch(ctx, &models.WebhookEvent{
		Type:      "company.updated",
		CompanyID: "t1",
		Data:      map[string]interface{}{"name": "Acme"},
	})
	require.NoError(t, err)

	company, err := companies.FindByID(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Acme", company.Name)
	require.Nil(t, company.Description)
}

func TestDispatchCompanyUpdatedUnknownCompany(t *testing.T) {
	router := NewWebhookRouter(NewCompanyService(newTestDB(t)))

	err := router.Dispatch(context.Background(), &models.WebhookEvent{
		Type:      "company.updated",
		CompanyID: "ghost",
		Data:      map[string]interface{}{"name": "Acme"},
	})
	require.NoError(t, err)
}

func TestDispatchCompanyDeleted(t *testing.T) {
	ctx := context.Background()
	companies := NewCompanyService(newTestDB(t))
	require.NoError(t, companies.Upsert(ctx, &models.Company{ID: "t1", Name: "Acme"}))

	router := NewWebhookRouter(companies)
	require.NoError(t, router.Dispatch(ctx, &models.WebhookEvent{Type: "company.deleted", CompanyID: "t1"}))

	_, err := companies.FindByID(ctx, "t1")
	require.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestDispatchUnknownEventIsIgnored(t *testing.T) {
	ctx := context.Background()
	companies := NewCompanyService(newTestDB(t))
	require.NoError(t, companies.Upsert(ctx, &models.Company{ID: "t1", Name: "Old"}))

	router := NewWebhookRouter(companies)
	err := router.Dispatch(ctx, &models.WebhookEvent{
		Type:      "foo.bar",
		CompanyID: "t1",
		Data:      map[string]interface{}{"name": "Acme"},
	})
	require.NoError(t, err)

	company, err := companies.FindByID(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, "Old", company.Name)
}

func TestDispatchLoggingEvents(t *testing.T) {
	router := NewWebhookRouter(NewCompanyService(newTestDB(t)))

	for _, eventType := range []EventType{EventOrderCreated, EventProductUpdated, EventPaymentFailed, EventSubscriptionCancelled} {
		require.NoError(t, router.Dispatch(context.Background(), &models.WebhookEvent{
			Type:      string(eventType),
			CompanyID: "t1",
			Data:      map[string]interface{}{"id": "x"},
		}))
	}
}

func TestHandleCustomHandler(t *testing.T) {
	router := NewWebhookRouter(NewCompanyService(newTestDB(t)))

	var seen *models.WebhookEvent
	require.NoError(t, router.Handle(EventOrderCreated, func(_ context.Context, event *models.WebhookEvent) error {
		seen = event
		return nil
	}))

	event := &models.WebhookEvent{Type: "order.created", CompanyID: "t1"}
	require.NoError(t, router.Dispatch(context.Background(), event))
	require.Same(t, event, seen)

	failing := errors.New("handler failed")
	require.NoError(t, router.Handle(EventPaymentFailed, func(context.Context, *models.WebhookEvent) error {
		return failing
	}))
	require.ErrorIs(t, router.Dispatch(context.Background(), &models.WebhookEvent{Type: "payment.failed"}), failing)

	err := router.Handle(EventType("foo.bar"), func(context.Context, *models.WebhookEvent) error { return nil })
	require.True(t, HasTextCode(err, ErrorCodeUnknownEvent))
}
