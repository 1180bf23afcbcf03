package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/weather-advisor/internal/domain/weather"
	apperrors "github.com/yanqian/weather-advisor/pkg/errors"
	"github.com/yanqian/weather-advisor/pkg/util"
)

const localTimeLayout = "2006-01-02T15:04"

// Service answers weather_now tool calls.
type Service interface {
	Current(ctx context.Context, city string) (weather.Report, error)
}

type service struct {
	geocoder Geocoder
	provider Provider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the weather_now tool logic.
func NewService(geocoder Geocoder, provider Provider, logger *slog.Logger) Service {
	return &service{
		geocoder: geocoder,
		provider: provider,
		logger:   logger.With("component", "forecast.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Current(ctx context.Context, city string) (weather.Report, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return weather.Report{}, apperrors.Wrap(apperrors.CodeInvalidInput, "city cannot be empty", nil)
	}

	loc, err := s.geocoder.Geocode(ctx, city)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeLocationNotFound) {
			return weather.Report{}, err
		}
		return weather.Report{}, apperrors.Wrap(apperrors.CodeUpstream, "geocoding failed", err)
	}

	fc, err := s.provider.Forecast(ctx, loc)
	if err != nil {
		return weather.Report{}, apperrors.Wrap(apperrors.CodeUpstream, "forecast request failed", err)
	}

	idx, ok := nearestIndex(fc.Hourly.Time, fc.Current.Time, s.localNow(fc.UTCOffsetSeconds))
	s.logger.Debug("forecast resolved", "city", city, "lat", loc.Latitude, "lon", loc.Longitude, "hour_index", idx, "has_hour", ok)

	m := weather.Metrics{
		City:                     city,
		Temperature:              firstKnown(fc.Current.Temperature, sample(fc.Hourly.Temperature, idx, ok)),
		WindSpeed:                firstKnown(fc.Current.WindSpeed, sample(fc.Hourly.WindSpeed, idx, ok)),
		ApparentTemperature:      sample(fc.Hourly.ApparentTemperature, idx, ok),
		UVIndex:                  sample(fc.Hourly.UVIndex, idx, ok),
		PrecipitationProbability: sample(fc.Hourly.PrecipitationProbability, idx, ok),
		PrecipitationMM:          sample(fc.Hourly.Precipitation, idx, ok),
		Humidity:                 sample(fc.Hourly.Humidity, idx, ok),
		IsDay:                    fc.Current.IsDay,
	}
	if fc.Current.Time != "" {
		observed := fc.Current.Time
		m.ObservedAt = &observed
	}

	return weather.Report{Metrics: m, Summary: Summarize(m)}, nil
}

func (s *service) localNow(offsetSeconds int) time.Time {
	local := s.now().UTC().Add(time.Duration(offsetSeconds) * time.Second)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), 0, 0, time.UTC)
}

// nearestIndex picks the hourly slot closest to the observation time, or to now when the
// observation time is missing. An unparsable observation time selects the last slot.
func nearestIndex(times []string, target string, now time.Time) (int, bool) {
	if len(times) == 0 {
		return 0, false
	}
	ref := now
	if target != "" {
		parsed, err := time.Parse(localTimeLayout, target)
		if err != nil {
			return len(times) - 1, true
		}
		ref = parsed
	}

	best, bestDiff := -1, time.Duration(0)
	for i, raw := range times {
		ts, err := time.Parse(localTimeLayout, raw)
		if err != nil {
			continue
		}
		diff := ts.Sub(ref)
		if diff < 0 {
			diff = -diff
		}
		if best == -1 || diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best == -1 {
		return 0, true
	}
	return best, true
}

func sample(series []*float64, idx int, ok bool) *float64 {
	if !ok || idx < 0 || idx >= len(series) {
		return nil
	}
	return series[idx]
}

func firstKnown(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// Summarize renders the human readable line returned next to the structured payload.
func Summarize(m weather.Metrics) string {
	bits := []string{m.City}
	switch {
	case m.Temperature != nil && m.ApparentTemperature != nil:
		bits = append(bits, fmt.Sprintf("%.1f°C (feels %.1f°C)", *m.Temperature, *m.ApparentTemperature))
	case m.Temperature != nil:
		bits = append(bits, fmt.Sprintf("%.1f°C", *m.Temperature))
	case m.ApparentTemperature != nil:
		bits = append(bits, fmt.Sprintf("feels %.1f°C", *m.ApparentTemperature))
	}
	if m.WindSpeed != nil {
		bits = append(bits, fmt.Sprintf("wind %.1f m/s", *m.WindSpeed))
	}
	if m.UVIndex != nil {
		bits = append(bits, fmt.Sprintf("UV %.1f", *m.UVIndex))
	}
	if m.PrecipitationProbability != nil {
		bits = append(bits, fmt.Sprintf("precipitation %.0f%%", *m.PrecipitationProbability))
	}
	if m.PrecipitationMM != nil && *m.PrecipitationMM >= 0.1 {
		bits = append(bits, fmt.Sprintf("%.1f mm", *m.PrecipitationMM))
	}
	return strings.Join(bits, ", ")
}
