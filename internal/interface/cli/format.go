package cli

import (
	"fmt"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
)

const missing = "NA"

// FormatLine renders the summary line for one city.
func FormatLine(city string, m weather.Metrics, advice string) string {
	return fmt.Sprintf("%s: %s (feels %s), wind %s, UV %s, precip %s / %s | %s",
		city,
		value(m.Temperature, "%.1f°C"),
		value(m.ApparentTemperature, "%.1f°C"),
		value(m.WindSpeed, "%.1f m/s"),
		value(m.UVIndex, "%.1f"),
		value(m.PrecipitationProbability, "%.0f%%"),
		value(m.PrecipitationMM, "%.1f mm"),
		advice,
	)
}

// FormatError renders the failure line for one city.
func FormatError(city string, err error) string {
	return fmt.Sprintf("%s: failed to fetch weather (%v)", city, err)
}

func value(v *float64, format string) string {
	if v == nil {
		return missing
	}
	return fmt.Sprintf(format, *v)
}
