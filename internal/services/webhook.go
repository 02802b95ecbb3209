package services

import (
	"context"
	"errors"
	"sync"

	"genuka-bridge/internal/models"

	"github.com/sirupsen/logrus"
)

// EventType тип webhook події Genuka
type EventType string

const (
	EventCompanyUpdated        EventType = "company.updated"
	EventCompanyDeleted        EventType = "company.deleted"
	EventOrderCreated          EventType = "order.created"
	EventOrderUpdated          EventType = "order.updated"
	EventProductCreated        EventType = "product.created"
	EventProductUpdated        EventType = "product.updated"
	EventSubscriptionCreated   EventType = "subscription.created"
	EventSubscriptionUpdated   EventType = "subscription.updated"
	EventSubscriptionCancelled EventType = "subscription.cancelled"
	EventPaymentSucceeded      EventType = "payment.succeeded"
	EventPaymentFailed         EventType = "payment.failed"
)

// KnownEventTypes повний перелік подій, які розуміє застосунок
var KnownEventTypes = []EventType{
	EventCompanyUpdated,
	EventCompanyDeleted,
	EventOrderCreated,
	EventOrderUpdated,
	EventProductCreated,
	EventProductUpdated,
	EventSubscriptionCreated,
	EventSubscriptionUpdated,
	EventSubscriptionCancelled,
	EventPaymentSucceeded,
	EventPaymentFailed,
}

// ParseEventType повертає відомий тип події; ok == false для невідомих
func ParseEventType(raw string) (EventType, bool) {
	for _, t := range KnownEventTypes {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

// WebhookHandlerFunc обробник однієї події
type WebhookHandlerFunc func(ctx context.Context, event *models.WebhookEvent) error

// webhookRouter реалізація WebhookRouter
type webhookRouter struct {
	companies CompanyService
	handlers  map[EventType]WebhookHandlerFunc
	mutex     sync.RWMutex
}

// NewWebhookRouter створює роутер з обробниками за замовчуванням для всіх відомих подій
func NewWebhookRouter(companies CompanyService) WebhookRouter {
	r := &webhookRouter{
		companies: companies,
		handlers:  make(map[EventType]WebhookHandlerFunc, len(KnownEventTypes)),
	}

	for _, t := range KnownEventTypes {
		r.handlers[t] = logEvent
	}
	r.handlers[EventCompanyUpdated] = r.handleCompanyUpdated
	r.handlers[EventCompanyDeleted] = r.handleCompanyDeleted

	return r
}

// Handle замінює обробник відомої події
func (r *webhookRouter) Handle(eventType EventType, handler WebhookHandlerFunc) error {
	if _, ok := ParseEventType(string(eventType)); !ok {
		return NewUnknownEventError(string(eventType))
	}
	if handler == nil {
		handler = logEvent
	}

	r.mutex.Lock()
	r.handlers[eventType] = handler
	r.mutex.Unlock()
	return nil
}

// Dispatch викликає обробник події. Невідомі типи лише логуються.
func (r *webhookRouter) Dispatch(ctx context.Context, event *models.WebhookEvent) error {
	log := logrus.WithFields(logrus.Fields{
		"event_type": event.Type,
		"company_id": event.CompanyID,
	})
	log.Info("Webhook received")

	eventType, ok := ParseEventType(event.Type)
	if !ok {
		log.Warn("Unhandled webhook event type")
		return nil
	}

	r.mutex.RLock()
	handler := r.handlers[eventType]
	r.mutex.RUnlock()

	return handler(ctx, event)
}

func (r *webhookRouter) handleCompanyUpdated(ctx context.Context, event *models.WebhookEvent) error {
	log := logrus.WithField("company_id", event.CompanyID)
	log.Info("Company updated")

	updates := make(map[string]interface{})
	if name, ok := event.Data["name"].(string); ok {
		updates["name"] = name
	}
	if description, ok := event.Data["description"]; ok {
		switch v := description.(type) {
		case string:
			updates["description"] = v
		case nil:
			updates["description"] = nil
		}
	}

	if len(updates) == 0 || event.CompanyID == "" {
		return nil
	}

	err := r.companies.UpdateByID(ctx, event.CompanyID, updates)
	if errors.Is(err, ErrCompanyNotFound) {
		log.Warn("Company update skipped, company not found")
		return nil
	}
	return err
}

func (r *webhookRouter) handleCompanyDeleted(ctx context.Context, event *models.WebhookEvent) error {
	logrus.WithField("company_id", event.CompanyID).Info("Company deleted")
	if event.CompanyID == "" {
		return nil
	}
	return r.companies.DeleteByID(ctx, event.CompanyID)
}

func logEvent(_ context.Context, event *models.WebhookEvent) error {
	logrus.WithFields(logrus.Fields{
		"event_type": event.Type,
		"company_id": event.CompanyID,
		"data":       event.Data,
	}).Info("Webhook event processed")
	return nil
}
