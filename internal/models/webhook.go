package models

// WebhookEvent представляє подію, яку Genuka надсилає на webhook
type WebhookEvent struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	CompanyID string                 `json:"company_id"`
	Timestamp interface{}            `json:"timestamp,omitempty"`
}
