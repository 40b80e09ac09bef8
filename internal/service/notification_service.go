package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fashion-oms/oms-service/internal/config"
	"github.com/fashion-oms/oms-service/internal/events"
)

// NotificationService handles emitting operational notifications for domain
// events. The verification email itself is sent inline by the role-upgrade
// initiator; this service covers the surrounding audit/webhook signals.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.EmailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.EmailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRoleUpgradeInitiated, n.handleRoleUpgradeInitiated)
	n.dispatcher.Subscribe(events.EventRoleUpgradeVerified, n.handleRoleUpgradeVerified)
	n.dispatcher.Subscribe(events.EventStaffDeleted, n.handleStaffDeleted)
	n.dispatcher.Subscribe(events.EventOrderCreated, n.handleOrderCreated)
	n.dispatcher.Subscribe(events.EventOrderStatusChanged, n.handleOrderStatusChanged)
}

func (n *NotificationService) handleRoleUpgradeInitiated(ctx context.Context, event events.Event) error {
	n.logger.Info("RoleUpgradeInitiated", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleRoleUpgradeVerified(ctx context.Context, event events.Event) error {
	n.logger.Info("RoleUpgradeVerified", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStaffDeleted(ctx context.Context, event events.Event) error {
	n.logger.Info("StaffDeleted", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOrderCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderCreated", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOrderStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("OrderStatusChanged", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
