package advisory

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
)

func f(v float64) *float64 { return &v }

func TestAdviseSevereHeatOnly(t *testing.T) {
	got := Advise(weather.Metrics{Temperature: f(32)})
	require.Equal(t, clothingBands[0].text, got)
}

func TestAdviseNoTemperature(t *testing.T) {
	var m weather.Metrics
	require.NoError(t, json.Unmarshal([]byte(`{"temperature":null}`), &m))
	require.Equal(t, noTemperatureClause, Advise(m))
}

func TestAdviseClothingBands(t *testing.T) {
	tests := []struct {
		name  string
		temp  float64
		label string
	}{
		{name: "exactly 30", temp: 30, label: "severe heat"},
		{name: "just below 30", temp: 29.9, label: "hot"},
		{name: "exactly 25", temp: 25, label: "hot"},
		{name: "exactly 20", temp: 20, label: "mild/warm"},
		{name: "exactly 13", temp: 13, label: "cool"},
		{name: "exactly 9", temp: 9, label: "chilly"},
		{name: "just below 9", temp: 8.9, label: "cold"},
		{name: "freezing", temp: -12, label: "cold"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, ok := pick(clothingBands, tt.temp)
			require.True(t, ok)
			require.Equal(t, tt.label, b.label)
			require.Equal(t, b.text, Advise(weather.Metrics{Temperature: f(tt.temp)}))
		})
	}
}

func TestAdvisePrefersApparentTemperature(t *testing.T) {
	got := Advise(weather.Metrics{Temperature: f(12), ApparentTemperature: f(26)})
	require.Equal(t, clothingBands[1].text, got)
}

func TestAdviseWindBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  string
	}{
		{name: "calm", speed: 5.9, want: ""},
		{name: "exactly 6", speed: 6, want: windBands[1].text},
		{name: "just below 10", speed: 9.99, want: windBands[1].text},
		{name: "exactly 10", speed: 10, want: windBands[0].text},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Advise(weather.Metrics{Temperature: f(15), WindSpeed: f(tt.speed)})
			want := clothingBands[3].text
			if tt.want != "" {
				want += " " + tt.want
			}
			require.Equal(t, want, got)
		})
	}
}

func TestAdviseUmbrella(t *testing.T) {
	tests := []struct {
		name string
		m    weather.Metrics
		want bool
	}{
		{name: "probability at threshold", m: weather.Metrics{PrecipitationProbability: f(60)}, want: true},
		{name: "probability below threshold", m: weather.Metrics{PrecipitationProbability: f(59)}, want: false},
		{name: "amount at threshold", m: weather.Metrics{PrecipitationMM: f(1.0)}, want: true},
		{name: "amount alone suffices", m: weather.Metrics{PrecipitationProbability: f(10), PrecipitationMM: f(2.5)}, want: true},
		{name: "both low", m: weather.Metrics{PrecipitationProbability: f(20), PrecipitationMM: f(0.2)}, want: false},
		{name: "both absent", m: weather.Metrics{}, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, strings.Contains(Advise(tt.m), umbrellaClause))
		})
	}
}

func TestAdviseUVBands(t *testing.T) {
	tests := []struct {
		uv   float64
		want string
	}{
		{uv: 2.9, want: ""},
		{uv: 3, want: uvBands[3].text},
		{uv: 6, want: uvBands[2].text},
		{uv: 8, want: uvBands[1].text},
		{uv: 11, want: uvBands[0].text},
		{uv: 13, want: uvBands[0].text},
	}

	for _, tt := range tests {
		got, ok := uvClause(weather.Metrics{UVIndex: f(tt.uv)})
		require.Equal(t, tt.want != "", ok, "uv %v", tt.uv)
		require.Equal(t, tt.want, got, "uv %v", tt.uv)
	}
}

func TestAdviseHumidityNeedsHeat(t *testing.T) {
	_, ok := humidityClause(weather.Metrics{Humidity: f(90), Temperature: f(24.9)})
	require.False(t, ok)

	_, ok = humidityClause(weather.Metrics{Humidity: f(79.9), Temperature: f(30)})
	require.False(t, ok)

	_, ok = humidityClause(weather.Metrics{Humidity: f(80), Temperature: f(20), ApparentTemperature: f(25)})
	require.True(t, ok)

	_, ok = humidityClause(weather.Metrics{Humidity: f(95)})
	require.False(t, ok)
}

func TestAdviseFullScenarioOrder(t *testing.T) {
	m := weather.Metrics{
		Temperature:              f(31),
		WindSpeed:                f(11),
		PrecipitationProbability: f(70),
		UVIndex:                  f(9),
		Humidity:                 f(85),
	}
	want := strings.Join([]string{
		clothingBands[0].text,
		windBands[0].text,
		umbrellaClause,
		uvBands[1].text,
		humidityNote,
	}, " ")
	require.Equal(t, want, Advise(m))
}

func TestAdviseIsDeterministic(t *testing.T) {
	m := weather.Metrics{Temperature: f(18), WindSpeed: f(7), UVIndex: f(4), Humidity: f(40)}
	raw, err := json.Marshal(m)
	require.NoError(t, err)

	var again weather.Metrics
	require.NoError(t, json.Unmarshal(raw, &again))
	require.Equal(t, Advise(m), Advise(again))
	require.Equal(t, Advise(m), Advise(m))
}

func TestPolicyMentionsEveryThreshold(t *testing.T) {
	policy := Policy()
	for _, want := range []string{
		">= 30°C severe heat",
		"below 9°C cold",
		">= 10 m/s strong wind warning",
		">= 6 m/s moderate wind note",
		"probability >= 60%",
		"precipitation >= 1 mm",
		">= 11 extreme",
		">= 3 moderate",
		"humidity >= 80%",
		">= 25°C",
	} {
		require.Contains(t, policy, want)
	}
}
