package forecast

import "context"

// Location is a geocoded city.
type Location struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
	Timezone  string
}

// Current is the provider's "current weather" block.
type Current struct {
	Time        string
	Temperature *float64
	WindSpeed   *float64
	IsDay       *float64
}

// Hourly holds parallel hourly series; a nil entry is a missing sample.
type Hourly struct {
	Time                     []string
	Temperature              []*float64
	ApparentTemperature      []*float64
	UVIndex                  []*float64
	Precipitation            []*float64
	PrecipitationProbability []*float64
	Humidity                 []*float64
	WindSpeed                []*float64
}

// Forecast is a one-day forecast for a location, times in local wall clock.
type Forecast struct {
	UTCOffsetSeconds int
	Current          Current
	Hourly           Hourly
}

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (Location, error)
}

// Provider returns forecasts for coordinates.
type Provider interface {
	Forecast(ctx context.Context, loc Location) (Forecast, error)
}
