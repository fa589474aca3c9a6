// File: services/weather/advisor.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tablewala/config"
	"tablewala/models"

	"go.uber.org/zap"
)

// Advisor supplies a non-authoritative indoor/outdoor seating hint for a
// date. Failure must never block booking; callers fall back to
// DefaultAdvisory.
type Advisor interface {
	Recommend(ctx context.Context, date string) (*models.SeatingAdvisory, error)
}

// HTTPAdvisor queries an Open-Meteo-style daily forecast endpoint.
type HTTPAdvisor struct {
	BaseURL string
	Lat     string
	Lng     string
	Client  *http.Client
	Logger  *zap.Logger
}

// NewHTTPAdvisor builds an advisor from the application configuration.
func NewHTTPAdvisor(logger *zap.Logger) *HTTPAdvisor {
	timeout := time.Duration(config.AppConfig.WeatherTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPAdvisor{
		BaseURL: config.AppConfig.WeatherAPIURL,
		Lat:     config.AppConfig.RestaurantLat,
		Lng:     config.AppConfig.RestaurantLng,
		Client:  &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

type forecastResponse struct {
	Daily struct {
		WeatherCode    []int     `json:"weather_code"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}

func (a *HTTPAdvisor) Recommend(ctx context.Context, date string) (*models.SeatingAdvisory, error) {
	q := url.Values{}
	q.Set("latitude", a.Lat)
	q.Set("longitude", a.Lng)
	q.Set("daily", "weather_code,temperature_2m_max")
	q.Set("start_date", date)
	q.Set("end_date", date)
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast request returned status %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("decoding forecast failed: %w", err)
	}
	if len(forecast.Daily.WeatherCode) == 0 || len(forecast.Daily.TemperatureMax) == 0 {
		return nil, fmt.Errorf("forecast response missing daily data for %s", date)
	}

	advisory := buildAdvisory(forecast.Daily.WeatherCode[0], forecast.Daily.TemperatureMax[0])
	a.Logger.Debug("weather advisory fetched",
		zap.String("date", date),
		zap.String("condition", advisory.Condition),
		zap.String("recommendation", advisory.Recommendation))
	return advisory, nil
}

// buildAdvisory maps a WMO weather code and peak temperature to a seating
// recommendation. Outdoor needs dry weather and a comfortable range.
func buildAdvisory(code int, tempC float64) *models.SeatingAdvisory {
	condition := describeCode(code)
	dry := code < 45
	comfortable := tempC >= 18 && tempC <= 32

	if dry && comfortable {
		return &models.SeatingAdvisory{
			Condition:      condition,
			TemperatureC:   tempC,
			Recommendation: models.SeatingOutdoor,
			Reason:         fmt.Sprintf("%s and %.0f°C, a good evening for the terrace", condition, tempC),
		}
	}

	reason := fmt.Sprintf("%s expected, indoor seating will be more comfortable", condition)
	if dry && !comfortable {
		reason = fmt.Sprintf("%.0f°C outside, indoor seating will be more comfortable", tempC)
	}
	return &models.SeatingAdvisory{
		Condition:      condition,
		TemperatureC:   tempC,
		Recommendation: models.SeatingIndoor,
		Reason:         reason,
	}
}

func describeCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "foggy"
	case code <= 57:
		return "drizzle"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "rain showers"
	default:
		return "thunderstorm"
	}
}

// DefaultAdvisory is the neutral substitute used when the collaborator fails
// or times out. Booking proceeds regardless.
func DefaultAdvisory() *models.SeatingAdvisory {
	return &models.SeatingAdvisory{
		Condition:      "unknown",
		Recommendation: models.SeatingIndoor,
		Reason:         "weather information unavailable, defaulting to indoor seating",
		Fallback:       true,
	}
}
