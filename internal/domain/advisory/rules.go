package advisory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
)

// band maps an inclusive lower bound to an advisory clause. Tables are ordered from the
// highest bound to the lowest and evaluated top down.
type band struct {
	min   float64
	label string
	text  string
}

const noTemperatureClause = "No temperature data."

var clothingBands = []band{
	{min: 30, label: "severe heat", text: "Severe heat: wear breathable short sleeves or a sleeveless top and keep drinking water."},
	{min: 25, label: "hot", text: "Hot: short sleeves or a thin shirt, with a light layer for air-conditioned rooms."},
	{min: 20, label: "mild/warm", text: "Mild to warm: a light long-sleeve top or a thin cardigan."},
	{min: 13, label: "cool", text: "Cool: a light jacket or cardigan is recommended."},
	{min: 9, label: "chilly", text: "Chilly: a jacket or sweatshirt with long trousers."},
	{min: math.Inf(-1), label: "cold", text: "Cold: a heavy coat or padded jacket and a scarf."},
}

var windBands = []band{
	{min: 10, label: "strong wind warning", text: "Strong wind warning: hold on to umbrellas and hats, and expect it to feel colder."},
	{min: 6, label: "moderate wind note", text: "Moderately windy: it may feel colder than the thermometer says."},
}

var uvBands = []band{
	{min: 11, label: "extreme", text: "UV extreme: avoid the midday sun and cover up completely."},
	{min: 8, label: "very high", text: "UV very high: sunscreen, a hat and sunglasses are essential."},
	{min: 6, label: "high", text: "UV high: apply sunscreen and wear a hat."},
	{min: 3, label: "moderate", text: "UV moderate: consider sunscreen if you stay outside."},
}

const (
	umbrellaProbability = 60.0
	umbrellaAmountMM    = 1.0
	umbrellaClause      = "Take an umbrella."

	humidityThreshold  = 80.0
	humidityFeelsLikeC = 25.0
	humidityNote       = "High humidity will make it feel more oppressive."
)

// Advise derives the rule-based advisory. It never fails: unknown metrics drop their
// clause, except the clothing clause which is always present.
func Advise(m weather.Metrics) string {
	clauses := []string{clothingClause(m)}
	if c, ok := windClause(m); ok {
		clauses = append(clauses, c)
	}
	if c, ok := precipitationClause(m); ok {
		clauses = append(clauses, c)
	}
	if c, ok := uvClause(m); ok {
		clauses = append(clauses, c)
	}
	if c, ok := humidityClause(m); ok {
		clauses = append(clauses, c)
	}
	return strings.Join(clauses, " ")
}

func clothingClause(m weather.Metrics) string {
	feels, ok := m.FeelsLike()
	if !ok {
		return noTemperatureClause
	}
	b, _ := pick(clothingBands, feels)
	return b.text
}

func windClause(m weather.Metrics) (string, bool) {
	if m.WindSpeed == nil {
		return "", false
	}
	b, ok := pick(windBands, *m.WindSpeed)
	return b.text, ok
}

func precipitationClause(m weather.Metrics) (string, bool) {
	// Either signal is enough; err toward carrying an umbrella.
	likely := m.PrecipitationProbability != nil && *m.PrecipitationProbability >= umbrellaProbability
	falling := m.PrecipitationMM != nil && *m.PrecipitationMM >= umbrellaAmountMM
	if likely || falling {
		return umbrellaClause, true
	}
	return "", false
}

func uvClause(m weather.Metrics) (string, bool) {
	if m.UVIndex == nil {
		return "", false
	}
	b, ok := pick(uvBands, *m.UVIndex)
	return b.text, ok
}

func humidityClause(m weather.Metrics) (string, bool) {
	if m.Humidity == nil || *m.Humidity < humidityThreshold {
		return "", false
	}
	feels, ok := m.FeelsLike()
	if !ok || feels < humidityFeelsLikeC {
		return "", false
	}
	return humidityNote, true
}

func pick(bands []band, v float64) (band, bool) {
	for _, b := range bands {
		if v >= b.min {
			return b, true
		}
	}
	return band{}, false
}

// Policy restates every threshold used by Advise as plain text, so free-form rewrites
// can be held to the same numbers.
func Policy() string {
	var sb strings.Builder
	sb.WriteString("- Clothing by feels-like temperature (apparent temperature, else temperature): ")
	sb.WriteString(describeBands(clothingBands, "°C"))
	sb.WriteString(".\n- Wind speed: ")
	sb.WriteString(describeBands(windBands, " m/s"))
	sb.WriteString(", otherwise no wind remark.\n")
	fmt.Fprintf(&sb, "- Recommend an umbrella when precipitation probability >= %s%% or precipitation >= %s mm.\n",
		formatBound(umbrellaProbability), formatBound(umbrellaAmountMM))
	sb.WriteString("- UV index: ")
	sb.WriteString(describeBands(uvBands, ""))
	sb.WriteString(", otherwise no UV remark.\n")
	fmt.Fprintf(&sb, "- Mention oppressive humidity only when humidity >= %s%% and feels-like temperature >= %s°C.",
		formatBound(humidityThreshold), formatBound(humidityFeelsLikeC))
	return sb.String()
}

func describeBands(bands []band, unit string) string {
	parts := make([]string, 0, len(bands))
	for i, b := range bands {
		if math.IsInf(b.min, -1) {
			parts = append(parts, fmt.Sprintf("below %s%s %s", formatBound(bands[i-1].min), unit, b.label))
			continue
		}
		parts = append(parts, fmt.Sprintf(">= %s%s %s", formatBound(b.min), unit, b.label))
	}
	return strings.Join(parts, ", ")
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
