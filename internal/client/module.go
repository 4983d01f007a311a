package client

import "go.uber.org/fx"

var Module = fx.Module("http_client",
	fx.Provide(
		NewHTTPClient,
		NewHTTPClientConfig,
		NewCircuitBreakerRegistry,
		NewCircuitBreakerRegistryConfig,
		fx.Annotate(
			NewPushoverClient,
			fx.As(new(PushoverProvider)),
		),
		NewPushoverConfig,
	),
)
