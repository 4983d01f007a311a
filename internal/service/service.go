package service

import (
	"context"

	"github.com/koungkub/pushover-notification-service/internal/client"
	"github.com/koungkub/pushover-notification-service/pushover"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("service",
	fx.Provide(
		fx.Annotate(
			NewNotificationService,
			fx.As(new(NotificationProvider)),
		),
	),
)

//go:generate mockgen -package mockservice -destination ./mock/mockservice.go . NotificationProvider
type NotificationProvider interface {
	SendMessage(ctx context.Context, req MessageRequest) (pushover.Response, error)
	SendEmergencyMessage(ctx context.Context, req EmergencyMessageRequest) (pushover.Response, error)
	SendGroupMessage(ctx context.Context, groupKey string, req MessageRequest) (pushover.Response, error)
	ListSounds(ctx context.Context) (pushover.Response, error)
}

var _ NotificationProvider = (*NotificationService)(nil)

type NotificationService struct {
	pushover client.PushoverProvider
	logger   *zap.Logger
}

type NotificationServiceParams struct {
	fx.In

	Pushover client.PushoverProvider
	Logger   *zap.Logger
}

func NewNotificationService(params NotificationServiceParams) *NotificationService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NotificationService{
		pushover: params.Pushover,
		logger:   logger,
	}
}

func (s *NotificationService) SendMessage(ctx context.Context, req MessageRequest) (pushover.Response, error) {
	resp, err := s.pushover.SendMessage(ctx, req.Message, req.options()...)
	if err != nil {
		s.logger.Error("failed to send message", zap.Error(err))
		return nil, err
	}

	s.logger.Info("message sent", zap.String("request", resp.Request()))
	return resp, nil
}

func (s *NotificationService) SendEmergencyMessage(ctx context.Context, req EmergencyMessageRequest) (pushover.Response, error) {
	resp, err := s.pushover.SendEmergencyMessage(ctx, req.Message, req.options()...)
	if err != nil {
		s.logger.Error("failed to send emergency message", zap.Error(err))
		return nil, err
	}

	s.logger.Info("emergency message sent",
		zap.String("request", resp.Request()),
		zap.String("receipt", resp.Receipt()),
	)
	return resp, nil
}

func (s *NotificationService) SendGroupMessage(ctx context.Context, groupKey string, req MessageRequest) (pushover.Response, error) {
	resp, err := s.pushover.SendGroupMessage(ctx, req.Message, groupKey, req.options()...)
	if err != nil {
		s.logger.Error("failed to send group message", zap.Error(err))
		return nil, err
	}

	s.logger.Info("group message sent", zap.String("request", resp.Request()))
	return resp, nil
}

func (s *NotificationService) ListSounds(ctx context.Context) (pushover.Response, error) {
	resp, err := s.pushover.ListSounds(ctx)
	if err != nil {
		s.logger.Error("failed to list sounds", zap.Error(err))
		return nil, err
	}

	s.logger.Debug("sounds listed", zap.Int("count", len(resp.Sounds())))
	return resp, nil
}
