package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/weather-advisor/internal/domain/forecast"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

var hourlyVariables = []string{
	"temperature_2m",
	"apparent_temperature",
	"uv_index",
	"precipitation",
	"precipitation_probability",
	"relative_humidity_2m",
	"wind_speed_10m",
}

// Client fetches geocoding results and forecasts from Open-Meteo.
type Client struct {
	geocodingURL string
	forecastURL  string
	httpClient   *http.Client
}

// NewClient builds an API client.
func NewClient(geocodingURL, forecastURL string, timeout time.Duration) *Client {
	geo := strings.TrimSpace(geocodingURL)
	if geo == "" {
		geo = defaultGeocodingURL
	}
	fc := strings.TrimSpace(forecastURL)
	if fc == "" {
		fc = defaultForecastURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		geocodingURL: strings.TrimRight(geo, "/"),
		forecastURL:  strings.TrimRight(fc, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Geocode resolves a city to its best matching coordinates.
func (c *Client) Geocode(ctx context.Context, city string) (forecast.Location, error) {
	query := url.Values{}
	query.Set("name", city)
	query.Set("count", "1")
	query.Set("language", "en")
	query.Set("format", "json")

	var raw geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL, query, &raw); err != nil {
		return forecast.Location{}, fmt.Errorf("geocode %q: %w", city, err)
	}
	if len(raw.Results) == 0 {
		return forecast.Location{}, apperrors.Wrap(apperrors.CodeLocationNotFound, fmt.Sprintf("location %q not found", city), nil)
	}

	res := raw.Results[0]
	return forecast.Location{
		Name:      res.Name,
		Country:   res.Country,
		Latitude:  res.Latitude,
		Longitude: res.Longitude,
		Timezone:  res.Timezone,
	}, nil
}

// Forecast fetches current conditions and today's hourly series in metric units.
func (c *Client) Forecast(ctx context.Context, loc forecast.Location) (forecast.Forecast, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', 4, 64))
	query.Set("timezone", "auto")
	query.Set("current_weather", "true")
	query.Set("hourly", strings.Join(hourlyVariables, ","))
	query.Set("forecast_days", "1")
	query.Set("wind_speed_unit", "ms")
	query.Set("precipitation_unit", "mm")

	var raw forecastResponse
	if err := c.getJSON(ctx, c.forecastURL, query, &raw); err != nil {
		return forecast.Forecast{}, fmt.Errorf("forecast %.4f,%.4f: %w", loc.Latitude, loc.Longitude, err)
	}
	if raw.Error {
		return forecast.Forecast{}, fmt.Errorf("forecast api error: %s", raw.Reason)
	}

	return forecast.Forecast{
		UTCOffsetSeconds: raw.UTCOffsetSeconds,
		Current: forecast.Current{
			Time:        raw.CurrentWeather.Time,
			Temperature: raw.CurrentWeather.Temperature,
			WindSpeed:   raw.CurrentWeather.WindSpeed,
			IsDay:       raw.CurrentWeather.IsDay,
		},
		Hourly: forecast.Hourly{
			Time:                     raw.Hourly.Time,
			Temperature:              raw.Hourly.Temperature,
			ApparentTemperature:      raw.Hourly.ApparentTemperature,
			UVIndex:                  raw.Hourly.UVIndex,
			Precipitation:            raw.Hourly.Precipitation,
			PrecipitationProbability: raw.Hourly.PrecipitationProbability,
			Humidity:                 raw.Hourly.Humidity,
			WindSpeed:                raw.Hourly.WindSpeed,
		},
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

type forecastResponse struct {
	Error            bool           `json:"error"`
	Reason           string         `json:"reason"`
	UTCOffsetSeconds int            `json:"utc_offset_seconds"`
	CurrentWeather   currentWeather `json:"current_weather"`
	Hourly           hourlySeries   `json:"hourly"`
}

type currentWeather struct {
	Time        string   `json:"time"`
	Temperature *float64 `json:"temperature"`
	WindSpeed   *float64 `json:"windspeed"`
	IsDay       *float64 `json:"is_day"`
}

type hourlySeries struct {
	Time                     []string   `json:"time"`
	Temperature              []*float64 `json:"temperature_2m"`
	ApparentTemperature      []*float64 `json:"apparent_temperature"`
	UVIndex                  []*float64 `json:"uv_index"`
	Precipitation            []*float64 `json:"precipitation"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	Humidity                 []*float64 `json:"relative_humidity_2m"`
	WindSpeed                []*float64 `json:"wind_speed_10m"`
}
