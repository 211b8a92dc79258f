package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamForecast = `{
	"current": {"temperature_2m": 72.5, "relative_humidity_2m": 40, "weather_code": 63, "wind_speed_10m": 8.1},
	"daily": {
		"time": ["2026-03-01", "2026-03-02", "2026-03-03"],
		"weather_code": [0, 95],
		"temperature_2m_max": [75.0, 68.2],
		"temperature_2m_min": [55.1]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(NewMemoryCache(600 * time.Second))
	client.forecastURL = server.URL
	client.geocodeURL = server.URL
	return client, server, &calls
}

func TestGetWeatherAssemblesDocument(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamForecast))
	})

	doc, err := client.GetWeather(context.Background(), "10", "20", "F")
	require.NoError(t, err)

	var result Forecast
	require.NoError(t, json.Unmarshal(doc, &result))

	assert.Equal(t, 63, result.Current.WeatherCode)
	assert.Equal(t, "Rain", result.Current.Condition)
	assert.Equal(t, "°F", result.Current.Unit)
	assert.Equal(t, "mph", result.Current.WindUnit)
	require.NotNil(t, result.Current.Temperature)
	assert.Equal(t, 72.5, *result.Current.Temperature)

	require.Len(t, result.Forecast, 3)
	assert.Equal(t, "Clear", result.Forecast[0].Condition)
	assert.Equal(t, "Thunderstorm", result.Forecast[1].Condition)
	// short daily arrays degrade to nulls, not failures
	assert.Nil(t, result.Forecast[1].TempMin)
	assert.Nil(t, result.Forecast[2].TempMax)
	assert.Equal(t, "Clear", result.Forecast[2].Condition)
}

func TestGetWeatherMetricUnits(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "celsius", r.URL.Query().Get("temperature_unit"))
		assert.Equal(t, "kmh", r.URL.Query().Get("wind_speed_unit"))
		assert.Equal(t, "3", r.URL.Query().Get("forecast_days"))
		assert.Equal(t, "auto", r.URL.Query().Get("timezone"))
		w.Write([]byte(upstreamForecast))
	})

	doc, err := client.GetWeather(context.Background(), "10", "20", "C")
	require.NoError(t, err)

	var result Forecast
	require.NoError(t, json.Unmarshal(doc, &result))
	assert.Equal(t, "°C", result.Current.Unit)
	assert.Equal(t, "km/h", result.Current.WindUnit)
}

func TestGetWeatherCachesPerKey(t *testing.T) {
	client, _, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(upstreamForecast))
	})

	first, err := client.GetWeather(context.Background(), "10", "20", "F")
	require.NoError(t, err)
	second, err := client.GetWeather(context.Background(), "10", "20", "F")
	require.NoError(t, err)

	assert.Equal(t, first, second, "cache hit must return the stored document unchanged")
	assert.Equal(t, int64(1), calls.Load(), "second call within TTL must not hit upstream")

	// a different unit system is a different key
	_, err = client.GetWeather(context.Background(), "10", "20", "C")
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestGetWeatherRefetchesAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(600 * time.Second)
	cache.now = func() time.Time { return now }

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(upstreamForecast))
	}))
	defer server.Close()

	client := NewClient(cache)
	client.forecastURL = server.URL

	_, err := client.GetWeather(context.Background(), "10", "20", "C")
	require.NoError(t, err)

	now = now.Add(601 * time.Second)
	_, err = client.GetWeather(context.Background(), "10", "20", "C")
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestGetWeatherUpstreamFailure(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetWeather(context.Background(), "10", "20", "C")
	assert.Error(t, err)
}

func TestGeocode(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Berlin", r.URL.Query().Get("name"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		w.Write([]byte(`{"results":[{"name":"Berlin","country":"Germany","admin1":"Berlin","latitude":52.52,"longitude":13.41}]}`))
	})

	results, err := client.Geocode(context.Background(), "Berlin")
	require.NoError(t, err)
	require.Len(t, results.Results, 1)
	assert.Equal(t, "Germany", results.Results[0].Country)
}

func TestGeocodeNoMatches(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	results, err := client.Geocode(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.NotNil(t, results.Results)
	assert.Empty(t, results.Results)
}

func TestCodeLookupUnknown(t *testing.T) {
	info := CodeLookup(1234)
	assert.Equal(t, "Unknown", info.Condition)
	assert.NotEmpty(t, info.Emoji)
}
