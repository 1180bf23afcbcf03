//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-advisor/internal/bootstrap"
	"github.com/yanqian/weather-advisor/internal/domain/forecast"
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/openmeteo"
	httpiface "github.com/yanqian/weather-advisor/internal/interface/http"
	"github.com/yanqian/weather-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideOpenMeteoClient,
		forecast.NewService,
		wire.Bind(new(forecast.Geocoder), new(*openmeteo.Client)),
		wire.Bind(new(forecast.Provider), new(*openmeteo.Client)),
		httpiface.NewToolHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
