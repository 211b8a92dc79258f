package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/beacon-signage/beacon/internal/db"
	"github.com/beacon-signage/beacon/internal/http/api"
	"github.com/beacon-signage/beacon/internal/http/api/admin/auth/packets"
	"github.com/beacon-signage/beacon/internal/http/middleware"
	"github.com/beacon-signage/beacon/internal/model"
)

// AuthPublicModule mounts public auth endpoints (/auth/login, /auth/logout)
func AuthPublicModule(secretKey string, store db.Store) api.Module {
	ctl := newSessionManager(secretKey, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/login", ctl.login)
		c.PUBLIC_GET("/auth/logout", ctl.logout)
	})
}

// AuthSessionModule mounts private session endpoints (valid session required)
func AuthSessionModule(store db.Store) api.Module {
	ctl := newSessionManager("", store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/session", ctl.currentSession)
	})
}

type SessionManager struct {
	secretKey string
	store     db.Store
}

func newSessionManager(secret string, store db.Store) *SessionManager {
	return &SessionManager{secretKey: secret, store: store}
}

// POST /api/auth/login
func (s *SessionManager) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "username and password required"}
	}

	user, err := s.store.GetUserByUsername(request.Username)
	if err != nil || user == nil || !middleware.CheckPassword(user.HashedPassword, request.Password) {
		log.Warn().Str("username", request.Username).Msg("failed login attempt")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	token, err := middleware.GenerateSessionToken(user.ID, s.secretKey)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create session"}
	}

	ctx.SetCookie(middleware.SessionCookieName, token, int(middleware.SessionTTL.Seconds()), "/", "", false, true)

	return packets.LoginResponse{Success: true, Message: "login successful", Token: token}, nil
}

// GET /api/auth/logout
func (s *SessionManager) logout(ctx *gin.Context) (any, *api.APIError) {
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	return packets.LoginResponse{Success: true, Message: "logged out"}, nil
}

// GET /api/auth/session
func (s *SessionManager) currentSession(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return packets.SessionResponse{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}, nil
}
