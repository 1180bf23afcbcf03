package main

import (
	"github.com/yanqian/weather-advisor/internal/infra/config"
	"github.com/yanqian/weather-advisor/internal/infra/openmeteo"
)

func provideOpenMeteoClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(cfg.OpenMeteo.GeocodingURL, cfg.OpenMeteo.ForecastURL, cfg.OpenMeteo.Timeout)
}
