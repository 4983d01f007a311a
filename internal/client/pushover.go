package client

import (
	"context"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/pushover-notification-service/pushover"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// PushoverProvider is the subset of *pushover.Client the service layer uses.
type PushoverProvider interface {
	SendMessage(ctx context.Context, message string, opts ...pushover.MessageOption) (pushover.Response, error)
	SendEmergencyMessage(ctx context.Context, message string, opts ...pushover.EmergencyOption) (pushover.Response, error)
	SendGroupMessage(ctx context.Context, message, groupKey string, opts ...pushover.MessageOption) (pushover.Response, error)
	ListSounds(ctx context.Context) (pushover.Response, error)
}

var _ PushoverProvider = (*pushover.Client)(nil)

type PushoverConfig struct {
	UserKey  string `envconfig:"PUSHOVER_USER_KEY" required:"true"`
	APIToken string `envconfig:"PUSHOVER_API_TOKEN" required:"true"`
	BaseURL  string `envconfig:"PUSHOVER_BASE_URL" default:"https://api.pushover.net/1"`
}

func NewPushoverConfig() PushoverConfig {
	var cfg PushoverConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

type PushoverClientParams struct {
	fx.In

	Config     PushoverConfig
	HTTPClient *HTTPClient
	Logger     *zap.Logger
}

func NewPushoverClient(params PushoverClientParams) (*pushover.Client, error) {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return pushover.New(
		params.Config.UserKey,
		params.Config.APIToken,
		pushover.WithBaseURL(params.Config.BaseURL),
		pushover.WithHTTPClient(params.HTTPClient),
		pushover.WithLogger(logger.Named("pushover")),
	)
}
