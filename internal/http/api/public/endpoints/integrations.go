package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beacon-signage/beacon/internal/http/api"
	"github.com/beacon-signage/beacon/internal/http/api/public/packets"
	"github.com/beacon-signage/beacon/internal/rss"
	"github.com/beacon-signage/beacon/internal/weather"
)

type IntegrationsController struct {
	weather *weather.Client
	rss     *rss.Fetcher
}

// IntegrationsModule mounts the unauthenticated proxy endpoints players poll
// on their own cadence: rss, weather, geocode, and the server clock.
func IntegrationsModule(weatherClient *weather.Client, rssFetcher *rss.Fetcher) api.Module {
	ctl := &IntegrationsController{weather: weatherClient, rss: rssFetcher}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/rss", ctl.getFeed)
		c.PUBLIC_GET("/weather", ctl.getWeather)
		c.PUBLIC_GET("/geocode", ctl.geocode)
		c.PUBLIC_GET("/time", ctl.getTime)
	})
}

// GET /api/rss?url=
func (i *IntegrationsController) getFeed(ctx *gin.Context) (any, *api.APIError) {
	url := ctx.Query("url")
	if url == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "URL required"}
	}

	feed, err := i.rss.Fetch(ctx.Request.Context(), url)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return feed, nil
}

// GET /api/weather?lat=&lon=&units=
func (i *IntegrationsController) getWeather(ctx *gin.Context) (any, *api.APIError) {
	lat := ctx.Query("lat")
	lon := ctx.Query("lon")
	units := ctx.DefaultQuery("units", "C")

	if lat == "" || lon == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "lat and lon parameters required"}
	}

	doc, err := i.weather.GetWeather(ctx.Request.Context(), lat, lon, units)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return doc, nil
}

// GET /api/geocode?name=
func (i *IntegrationsController) geocode(ctx *gin.Context) (any, *api.APIError) {
	name := ctx.Query("name")
	if name == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "name parameter required"}
	}

	results, err := i.weather.Geocode(ctx.Request.Context(), name)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: err.Error()}
	}
	return results, nil
}

// GET /api/time
func (i *IntegrationsController) getTime(ctx *gin.Context) (any, *api.APIError) {
	now := time.Now()
	return packets.TimeResponse{
		Time:      now.Format("15:04:05"),
		Date:      now.Format("Monday, January 2, 2006"),
		Timestamp: float64(now.UnixNano()) / float64(time.Second),
	}, nil
}
