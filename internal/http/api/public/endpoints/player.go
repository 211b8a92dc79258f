package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/beacon-signage/beacon/internal/db"
	"github.com/beacon-signage/beacon/internal/http/api"
	"github.com/beacon-signage/beacon/internal/http/api/public/packets"
)

type PlayerController struct {
	store db.Store
}

// PlayerModule mounts the unauthenticated display read path used by
// public-screen players.
func PlayerModule(store db.Store) api.Module {
	ctl := &PlayerController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/player/:id", ctl.getDisplay)
	})
}

// GET /api/player/:id
func (p *PlayerController) getDisplay(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	display, err := p.store.GetDisplayByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "display not found"}
		}
		log.Error().Err(err).Int("display_id", id).Msg("failed to load display for player")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "invalid display configuration"}
	}

	return packets.PlayerDisplayResponse{
		ID:               display.ID,
		Name:             display.Name,
		Description:      display.Description,
		LayoutConfig:     display.LayoutConfig,
		BackgroundConfig: display.BackgroundConfig,
	}, nil
}
