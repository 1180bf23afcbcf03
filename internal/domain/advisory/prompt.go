package advisory

import (
	"fmt"
	"strings"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
)

const outputRules = " Use at most one emoji. Never contradict the rule-based advisory or the policy thresholds. Reply with the advisory text only, without quotes or preamble."

func buildSystemPrompt(tone Tone) string {
	return tone.instruction() + outputRules
}

func buildUserPrompt(city string, m weather.Metrics, base string, detail Detail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "City: %s\n", city)
	sb.WriteString("Observations:\n")
	for _, line := range observationLines(m) {
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Rule-based advisory: %s\n", base)
	sb.WriteString("Policy (keep the advice consistent with these thresholds):\n")
	sb.WriteString(Policy())
	sb.WriteString("\nLength: ")
	sb.WriteString(detail.instruction())
	return sb.String()
}

func observationLines(m weather.Metrics) []string {
	var lines []string
	add := func(label string, v *float64, format string) {
		if v != nil {
			lines = append(lines, label+": "+fmt.Sprintf(format, *v))
		}
	}
	add("temperature", m.Temperature, "%.1f°C")
	add("feels like", m.ApparentTemperature, "%.1f°C")
	add("wind speed", m.WindSpeed, "%.1f m/s")
	add("UV index", m.UVIndex, "%.1f")
	add("precipitation probability", m.PrecipitationProbability, "%.0f%%")
	add("precipitation", m.PrecipitationMM, "%.1f mm")
	add("relative humidity", m.Humidity, "%.0f%%")
	if m.IsDay != nil {
		if *m.IsDay == 1 {
			lines = append(lines, "daytime")
		} else {
			lines = append(lines, "night-time")
		}
	}
	if m.ObservedAt != nil && *m.ObservedAt != "" {
		lines = append(lines, "observed at: "+*m.ObservedAt)
	}
	if len(lines) == 0 {
		lines = append(lines, "no measurements available")
	}
	return lines
}
