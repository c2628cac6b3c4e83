package services

import (
	"encoding/json"
	"log"

	"devicestore/internal/models"
	"devicestore/internal/repositories"

	"gorm.io/datatypes"
)

// EventPublisher publishes domain events to the message broker. A nil
// publisher is tolerated everywhere; events are best-effort.
type EventPublisher interface {
	PublishEvent(event string, payload map[string]interface{}) error
}

// appendOrderLog records an audit entry. The trail is best-effort: a
// storage failure is logged and must never fail the domain operation
// being audited.
func appendOrderLog(repo repositories.OrderLogRepository, orderID, userID, action string, details map[string]interface{}, meta models.RequestMeta) {
	if repo == nil {
		return
	}
	body, err := json.Marshal(details)
	if err != nil {
		log.Printf("Warning: failed to marshal %s details for order %s: %v", action, orderID, err)
		body = []byte("{}")
	}
	entry := &models.OrderLog{
		OrderID:   orderID,
		UserID:    userID,
		Action:    action,
		Details:   datatypes.JSON(body),
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
	}
	if err := repo.Append(entry); err != nil {
		log.Printf("Warning: failed to append %s log for order %s: %v", action, orderID, err)
	}
}

// publishEvent sends a domain event, logging instead of failing when the
// broker is absent or unhealthy.
func publishEvent(pub EventPublisher, event string, payload map[string]interface{}) {
	if pub == nil {
		log.Printf("Event publisher not configured. Skipping %s.", event)
		return
	}
	if err := pub.PublishEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
