//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/llm/tokens"
	"github.com/yanqian/weather-advisor/internal/infra/mcp"
	"github.com/yanqian/weather-advisor/internal/interface/cli"
	"github.com/yanqian/weather-advisor/pkg/logger"
)

func initializeRunner(ctx context.Context) (*cli.Runner, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRefinerConfig,
		provideCompleter,
		provideWeatherClient,
		tokens.NewCounter,
		advisory.NewRefiner,
		wire.Bind(new(advisory.TokenCounter), new(*tokens.Counter)),
		wire.Bind(new(cli.WeatherClient), new(*mcp.Client)),
		cli.NewRunner,
	)
	return nil, nil
}
