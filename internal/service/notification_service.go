package service

import (
	"context"
	"encoding/json"
	"fmt"

	"syncpad-be/internal/model"
	"syncpad-be/internal/pkg/logger"
	"syncpad-be/internal/repository/contract"
	"syncpad-be/pkg/events"
	pktNats "syncpad-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       contract.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	repo contract.NotificationRepository,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber configured, realtime notifications disabled", nil)
		return
	}
	if err := s.subscriber.Subscribe("events.>", "syncpad-notif-worker", s.handleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	targetId, message := s.describe(event)
	if targetId == uuid.Nil {
		// Event carries no deliverable target; ack and move on.
		s.logger.Warn("NotificationService", "Event without target user", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	dataJson, _ := json.Marshal(event.Payload())

	notif := model.Notification{
		Id:      uuid.New(),
		UserId:  targetId,
		Type:    event.EventType(),
		Message: message,
		Data:    datatypes.JSON(dataJson),
	}

	if err := s.repo.Create(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Failed to persist notification", map[string]interface{}{"error": err.Error()})
		return err // NATS redelivers
	}

	if s.delivery != nil {
		s.delivery.Send(targetId, notif)
	}
	return nil
}

// describe maps an event to the user who should see it and the inbox text.
func (s *NotificationService) describe(event events.Event) (uuid.UUID, string) {
	payload := event.Payload()

	switch event.EventType() {
	case events.TypeMiniNoteSent:
		senderName, _ := payload["sender_name"].(string)
		if senderName == "" {
			senderName = "Someone"
		}
		return payloadUUID(payload, "recipient_id"), fmt.Sprintf("%s sent you a mini note", senderName)
	case events.TypeNoteShared:
		return payloadUUID(payload, "user_id"), "Your note is now shared publicly"
	case events.TypeNoteUnshared:
		return payloadUUID(payload, "user_id"), "Sharing was turned off for your note"
	case events.TypePasswordChanged:
		return payloadUUID(payload, "user_id"), "Your password was changed"
	case events.TypeUserBlocked:
		return payloadUUID(payload, "user_id"), "Your account has been blocked by an administrator"
	default:
		return payloadUUID(payload, "user_id"), event.EventType()
	}
}

func payloadUUID(payload map[string]interface{}, key string) uuid.UUID {
	str, ok := payload[key].(string)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (s *NotificationService) GetNotifications(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	return s.repo.FindAllByUser(ctx, userId, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userId)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userId)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userId)
}
