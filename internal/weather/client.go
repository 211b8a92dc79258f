package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"

	// DefaultTTL is how long a forecast stays fresh.
	DefaultTTL = 600 * time.Second

	upstreamTimeout = 10 * time.Second
	userAgent       = "beacon-signage/1.0"
	forecastDays    = 3
)

// Client proxies the open-meteo forecast and geocoding APIs, caching
// assembled forecasts per (lat,lon,units) key.
type Client struct {
	httpClient  *http.Client
	cache       Cache
	forecastURL string
	geocodeURL  string
}

func NewClient(cache Cache) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: upstreamTimeout},
		cache:       cache,
		forecastURL: defaultForecastURL,
		geocodeURL:  defaultGeocodeURL,
	}
}

// forecastResponse is the upstream shape we consume.
type forecastResponse struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WeatherCode int      `json:"weather_code"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		Time        []string   `json:"time"`
		WeatherCode []int      `json:"weather_code"`
		TempMax     []*float64 `json:"temperature_2m_max"`
		TempMin     []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// Current is the assembled now-conditions block.
type Current struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
	WeatherCode int      `json:"weather_code"`
	Condition   string   `json:"condition"`
	Emoji       string   `json:"emoji"`
	Unit        string   `json:"unit"`
	WindUnit    string   `json:"wind_unit"`
}

// ForecastDay is one entry of the daily outlook.
type ForecastDay struct {
	Date      string   `json:"date"`
	TempMax   *float64 `json:"temp_max"`
	TempMin   *float64 `json:"temp_min"`
	Condition string   `json:"condition"`
	Emoji     string   `json:"emoji"`
}

// Forecast is the document served to players and stored in the cache.
type Forecast struct {
	Current  Current       `json:"current"`
	Forecast []ForecastDay `json:"forecast"`
}

// GetWeather returns the forecast document for the coordinates, serving from
// the cache when fresh. units is "C" or "F"; anything else means metric.
func (c *Client) GetWeather(ctx context.Context, lat, lon, units string) (json.RawMessage, error) {
	cacheKey := fmt.Sprintf("%s,%s,%s", lat, lon, units)
	if doc, ok := c.cache.Get(ctx, cacheKey); ok {
		return doc, nil
	}

	tempUnit, windUnit := "celsius", "kmh"
	if units == "F" {
		tempUnit, windUnit = "fahrenheit", "mph"
	}

	params := url.Values{}
	params.Set("latitude", lat)
	params.Set("longitude", lon)
	params.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m")
	params.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	params.Set("temperature_unit", tempUnit)
	params.Set("wind_speed_unit", windUnit)
	params.Set("forecast_days", fmt.Sprintf("%d", forecastDays))
	params.Set("timezone", "auto")

	var upstream forecastResponse
	if err := c.getJSON(ctx, c.forecastURL, params, &upstream); err != nil {
		log.Error().Err(err).Str("key", cacheKey).Msg("weather upstream call failed")
		return nil, err
	}

	unitSymbol, windSymbol := "°C", "km/h"
	if units == "F" {
		unitSymbol, windSymbol = "°F", "mph"
	}

	info := CodeLookup(upstream.Current.WeatherCode)
	result := Forecast{
		Current: Current{
			Temperature: upstream.Current.Temperature,
			Humidity:    upstream.Current.Humidity,
			WindSpeed:   upstream.Current.WindSpeed,
			WeatherCode: upstream.Current.WeatherCode,
			Condition:   info.Condition,
			Emoji:       info.Emoji,
			Unit:        unitSymbol,
			WindUnit:    windSymbol,
		},
		Forecast: []ForecastDay{},
	}

	// Daily arrays come index-aligned but may run short; missing slots stay null.
	daily := upstream.Daily
	for i, date := range daily.Time {
		dayCode := 0
		if i < len(daily.WeatherCode) {
			dayCode = daily.WeatherCode[i]
		}
		dayInfo := CodeLookup(dayCode)
		day := ForecastDay{
			Date:      date,
			Condition: dayInfo.Condition,
			Emoji:     dayInfo.Emoji,
		}
		if i < len(daily.TempMax) {
			day.TempMax = daily.TempMax[i]
		}
		if i < len(daily.TempMin) {
			day.TempMin = daily.TempMin[i]
		}
		result.Forecast = append(result.Forecast, day)
	}

	doc, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	c.cache.Set(ctx, cacheKey, doc)
	return doc, nil
}

// GeocodeResult is one candidate location for a name search.
type GeocodeResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeResults wraps the candidate list.
type GeocodeResults struct {
	Results []GeocodeResult `json:"results"`
}

// Geocode resolves a city name to candidate coordinates. Never cached.
func (c *Client) Geocode(ctx context.Context, name string) (*GeocodeResults, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "5")
	params.Set("language", "en")
	params.Set("format", "json")

	var upstream struct {
		Results []GeocodeResult `json:"results"`
	}
	if err := c.getJSON(ctx, c.geocodeURL, params, &upstream); err != nil {
		log.Error().Err(err).Str("name", name).Msg("geocode upstream call failed")
		return nil, err
	}

	results := upstream.Results
	if results == nil {
		results = []GeocodeResult{}
	}
	return &GeocodeResults{Results: results}, nil
}

func (c *Client) getJSON(ctx context.Context, baseURL string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}
