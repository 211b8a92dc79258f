package endpoints

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/beacon-signage/beacon/internal/http/api"
	"github.com/beacon-signage/beacon/internal/http/api/admin/control/packets"
	"github.com/beacon-signage/beacon/internal/model"
	"github.com/beacon-signage/beacon/internal/storage"
)

type UploadController struct {
	storage           storage.Storage
	allowedExtensions map[string]bool
	maxUploadSize     int64
}

func newUploadController(storageSystem storage.Storage, allowedExtensions map[string]bool, maxUploadSize int64) *UploadController {
	return &UploadController{
		storage:           storageSystem,
		allowedExtensions: allowedExtensions,
		maxUploadSize:     maxUploadSize,
	}
}

// UploadModule mounts the authenticated image upload endpoint
func UploadModule(storageSystem storage.Storage, allowedExtensions map[string]bool, maxUploadSize int64) api.Module {
	ctl := newUploadController(storageSystem, allowedExtensions, maxUploadSize)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/upload", ctl.uploadImage)
	})
}

// POST /api/upload
func (u *UploadController) uploadImage(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "no file provided"}
	}
	if fileHeader.Filename == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "no file selected"}
	}
	if fileHeader.Size > u.maxUploadSize {
		return nil, &api.APIError{Code: http.StatusRequestEntityTooLarge, Message: "file too large"}
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if !u.allowedExtensions[ext] {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid file type"}
	}

	stored, url, err := u.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to save upload")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
	}

	return packets.UploadResponse{Success: true, Filename: stored, URL: url}, nil
}
