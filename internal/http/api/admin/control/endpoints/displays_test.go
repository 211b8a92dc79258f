package endpoints_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-signage/beacon/internal/db"
	"github.com/beacon-signage/beacon/internal/http/api"
	"github.com/beacon-signage/beacon/internal/http/api/admin/control/endpoints"
	"github.com/beacon-signage/beacon/internal/http/middleware"
	"github.com/beacon-signage/beacon/internal/model"
)

const testSecret = "test-secret"

func setupDisplayRouter(t *testing.T) (*gin.Engine, *db.MemStore, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.NewMemStore()
	userID, err := store.CreateUser("admin", "irrelevant-hash")
	require.NoError(t, err)

	token, err := middleware.GenerateSessionToken(userID, testSecret)
	require.NoError(t, err)

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api", Auth: true, SecretKey: testSecret, Store: store},
		endpoints.DisplayModule(store),
	)
	return r, store, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDisplaysRequireSession(t *testing.T) {
	r, _, _ := setupDisplayRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/displays", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateDisplayWithoutFieldsUsesPlaceholders(t *testing.T) {
	r, _, token := setupDisplayRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/displays", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Success   bool `json:"success"`
		DisplayID int  `json:"display_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Success)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/displays/%d", created.DisplayID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var display struct {
		Name         string          `json:"name"`
		Description  string          `json:"description"`
		LayoutConfig json.RawMessage `json:"layout_config"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &display))
	assert.Equal(t, "New Display", display.Name)
	assert.Empty(t, display.Description)

	var layout model.Layout
	require.NoError(t, json.Unmarshal(display.LayoutConfig, &layout))
	assert.Len(t, layout.Zones, 4)
	assert.Equal(t, model.Grid{Rows: 2, Cols: 2}, layout.Grid)
}

func TestCreateDisplayIgnoresCallerConfigs(t *testing.T) {
	r, _, token := setupDisplayRouter(t)

	// layout/background in the create body are ignored; defaults always apply
	w := doJSON(t, r, http.MethodPost, "/api/displays", token, map[string]any{
		"name":          "Lobby",
		"layout_config": map[string]any{"grid": map[string]int{"rows": 9, "cols": 9}},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		DisplayID int `json:"display_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/displays/%d", created.DisplayID), token, nil)
	var display struct {
		Name         string          `json:"name"`
		LayoutConfig json.RawMessage `json:"layout_config"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &display))
	assert.Equal(t, "Lobby", display.Name)

	var layout model.Layout
	require.NoError(t, json.Unmarshal(display.LayoutConfig, &layout))
	assert.Equal(t, model.Grid{Rows: 2, Cols: 2}, layout.Grid)
}

func TestUpdateGetRoundTrip(t *testing.T) {
	r, _, token := setupDisplayRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/displays", token, map[string]string{"name": "Atrium"})
	var created struct {
		DisplayID int `json:"display_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	layout := `{"grid":{"rows":3,"cols":2},"zones":[{"id":5,"type":"weather","content":"52.52,13.41","opacity":0.8,"font_family":"Inter","font_size":"18px","background":{"type":"color","value":"#000000"}}],"global_font":"Inter","top_bar":{"mode":"hidden","show_seconds":false}}`
	background := `{"type":"image","value":"/uploads/20260301_093015_bg.png"}`

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/displays/%d", created.DisplayID), token, map[string]any{
		"name":              "Atrium East",
		"description":       "east wing",
		"layout_config":     json.RawMessage(layout),
		"background_config": json.RawMessage(background),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/displays/%d", created.DisplayID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var display struct {
		Name             string          `json:"name"`
		Description      string          `json:"description"`
		LayoutConfig     json.RawMessage `json:"layout_config"`
		BackgroundConfig json.RawMessage `json:"background_config"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &display))
	assert.Equal(t, "Atrium East", display.Name)
	assert.Equal(t, "east wing", display.Description)
	assert.JSONEq(t, layout, string(display.LayoutConfig))
	assert.JSONEq(t, background, string(display.BackgroundConfig))
}

func TestUpdateMissingConfigsCollapseToEmpty(t *testing.T) {
	r, _, token := setupDisplayRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/displays", token, nil)
	var created struct {
		DisplayID int `json:"display_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/displays/%d", created.DisplayID), token, map[string]string{"name": "Bare"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/displays/%d", created.DisplayID), token, nil)
	var display struct {
		LayoutConfig     json.RawMessage `json:"layout_config"`
		BackgroundConfig json.RawMessage `json:"background_config"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &display))
	assert.JSONEq(t, `{}`, string(display.LayoutConfig))
	assert.JSONEq(t, `{}`, string(display.BackgroundConfig))
}

func TestUpdateNotFound(t *testing.T) {
	r, _, token := setupDisplayRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/displays/9999", token, map[string]string{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteDisplay(t *testing.T) {
	r, _, token := setupDisplayRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/displays", token, nil)
	var created struct {
		DisplayID int `json:"display_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/displays/%d", created.DisplayID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/displays/%d", created.DisplayID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteNonexistentDisplayIsNotFound(t *testing.T) {
	r, _, token := setupDisplayRouter(t)

	w := doJSON(t, r, http.MethodDelete, "/api/displays/424242", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListDisplaysNewestFirst(t *testing.T) {
	r, _, token := setupDisplayRouter(t)

	for _, name := range []string{"first", "second", "third"} {
		w := doJSON(t, r, http.MethodPost, "/api/displays", token, map[string]string{"name": name})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/displays", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Name)
	assert.Equal(t, "first", list[2].Name)
}
