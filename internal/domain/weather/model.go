package weather

// Metrics is the structured payload produced by the weather_now tool.
// Every measurement is optional: nil means unknown, never zero.
type Metrics struct {
	City                     string   `json:"city,omitempty"`
	Temperature              *float64 `json:"temperature,omitempty"`
	WindSpeed                *float64 `json:"windspeed,omitempty"`
	ApparentTemperature      *float64 `json:"apparent_temperature,omitempty"`
	UVIndex                  *float64 `json:"uv_index,omitempty"`
	PrecipitationProbability *float64 `json:"precipitation_probability,omitempty"`
	PrecipitationMM          *float64 `json:"precipitation_mm,omitempty"`
	Humidity                 *float64 `json:"humidity,omitempty"`
	IsDay                    *float64 `json:"is_day,omitempty"`
	ObservedAt               *string  `json:"time_iso,omitempty"`
}

// FeelsLike returns the apparent temperature when known, else the air temperature.
func (m Metrics) FeelsLike() (float64, bool) {
	if m.ApparentTemperature != nil {
		return *m.ApparentTemperature, true
	}
	if m.Temperature != nil {
		return *m.Temperature, true
	}
	return 0, false
}

// Report pairs the structured metrics with the human readable one-line summary.
type Report struct {
	Metrics Metrics
	Summary string
}
