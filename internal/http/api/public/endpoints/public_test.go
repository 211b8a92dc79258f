package endpoints_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-signage/beacon/internal/db"
	"github.com/beacon-signage/beacon/internal/http/api"
	"github.com/beacon-signage/beacon/internal/http/api/public/endpoints"
	"github.com/beacon-signage/beacon/internal/model"
	"github.com/beacon-signage/beacon/internal/rss"
	"github.com/beacon-signage/beacon/internal/weather"
)

func setupPublicRouter(t *testing.T) (*gin.Engine, *db.MemStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.NewMemStore()
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"},
		endpoints.PlayerModule(store),
		endpoints.IntegrationsModule(weather.NewClient(weather.NewMemoryCache(weather.DefaultTTL)), rss.NewFetcher()),
	)
	return r, store
}

func TestPlayerServesDisplayWithoutAuth(t *testing.T) {
	r, store := setupPublicRouter(t)

	layout := model.DefaultSeedLayout()
	id, err := store.CreateDisplay("Lobby", "front door", layout, model.DefaultBackground())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/player/"+itoa(id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Name             string          `json:"name"`
		LayoutConfig     json.RawMessage `json:"layout_config"`
		BackgroundConfig json.RawMessage `json:"background_config"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Lobby", resp.Name)
	assert.JSONEq(t, string(layout), string(resp.LayoutConfig))
}

func TestPlayerUnknownDisplay(t *testing.T) {
	r, _ := setupPublicRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/player/999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlayerInvalidID(t *testing.T) {
	r, _ := setupPublicRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/player/front-door", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimeEndpoint(t *testing.T) {
	r, _ := setupPublicRouter(t)

	before := time.Now().Unix()
	req := httptest.NewRequest(http.MethodGet, "/api/time", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	after := time.Now().Unix()

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Time      string  `json:"time"`
		Date      string  `json:"date"`
		Timestamp float64 `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`), resp.Time)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z][a-z]+, [A-Z][a-z]+ \d{1,2}, \d{4}$`), resp.Date)
	assert.GreaterOrEqual(t, resp.Timestamp, float64(before))
	assert.LessOrEqual(t, resp.Timestamp, float64(after)+1)
}

func TestRSSRequiresURL(t *testing.T) {
	r, _ := setupPublicRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/rss", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeatherRequiresCoordinates(t *testing.T) {
	r, _ := setupPublicRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/weather?lat=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestGeocodeRequiresName(t *testing.T) {
	r, _ := setupPublicRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/geocode", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
