package endpoints

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/beacon-signage/beacon/internal/db"
	"github.com/beacon-signage/beacon/internal/http/api"
	"github.com/beacon-signage/beacon/internal/http/api/admin/control/packets"
	"github.com/beacon-signage/beacon/internal/model"
)

type DisplayController struct {
	store db.Store
}

func newDisplayController(store db.Store) *DisplayController {
	return &DisplayController{store: store}
}

// DisplayModule mounts all authenticated /displays endpoints
func DisplayModule(store db.Store) api.Module {
	ctl := newDisplayController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/displays", ctl.listDisplays)
		c.POST("/displays", ctl.createDisplay)
		c.GET("/displays/:id", ctl.getDisplay)
		c.PUT("/displays/:id", ctl.updateDisplay)
		c.DELETE("/displays/:id", ctl.deleteDisplay)
	})
}

// GET /api/displays
func (d *DisplayController) listDisplays(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	all, err := d.store.ListDisplays()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list displays"}
	}

	out := make([]packets.DisplaySummaryResponse, 0, len(all))
	for _, s := range all {
		out = append(out, packets.DisplaySummaryResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		})
	}

	return out, nil
}

// POST /api/displays
func (d *DisplayController) createDisplay(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.CreateDisplayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	name := request.Name
	if name == "" {
		name = "New Display"
	}

	// every new display starts from the default document set
	id, err := d.store.CreateDisplay(name, request.Description, model.NewDisplayLayout(), model.DefaultBackground())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create display"}
	}

	return packets.CreateDisplayResponse{Success: true, DisplayID: id}, nil
}

// GET /api/displays/:id
func (d *DisplayController) getDisplay(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	display, err := d.store.GetDisplayByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
		}
		log.Error().Err(err).Int("display_id", id).Msg("failed to read display")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "invalid display configuration"}
	}

	return displayResponse(display), nil
}

// PUT /api/displays/:id
func (d *DisplayController) updateDisplay(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.UpdateDisplayRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	layout := request.LayoutConfig
	if len(layout) == 0 {
		layout = model.EmptyDocument
	}
	background := request.BackgroundConfig
	if len(background) == 0 {
		background = model.EmptyDocument
	}

	if err := d.store.UpdateDisplay(id, request.Name, request.Description, layout, background); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update display"}
	}

	return packets.StatusResponse{Success: true}, nil
}

// DELETE /api/displays/:id
func (d *DisplayController) deleteDisplay(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if err := d.store.DeleteDisplay(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete display"}
	}

	return packets.StatusResponse{Success: true, Message: "display deleted successfully"}, nil
}

func displayResponse(display *model.Display) packets.DisplayResponse {
	return packets.DisplayResponse{
		ID:               display.ID,
		Name:             display.Name,
		Description:      display.Description,
		LayoutConfig:     display.LayoutConfig,
		BackgroundConfig: display.BackgroundConfig,
		CreatedAt:        display.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        display.UpdatedAt.Format(time.RFC3339),
	}
}
