package identity

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/todoapi/auth/authctx"
	apperrors "github.com/kbukum/todoapi/errors"
	"github.com/kbukum/todoapi/server"
	"github.com/kbukum/todoapi/validation"
)

// Handler exposes registration, login and the current-user endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the identity routes. requireAuth guards /users/me;
// loginLimit, when non-nil, guards POST /token.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth, loginLimit gin.HandlerFunc) {
	r.POST("/users", h.Register)

	login := []gin.HandlerFunc{h.Login}
	if loginLimit != nil {
		login = append([]gin.HandlerFunc{loginLimit}, login...)
	}
	r.POST("/token", login...)

	me := r.Group("/users/me", requireAuth)
	me.GET("", h.Me)
	me.DELETE("", h.DeleteMe)
}

// Register handles POST /users with a JSON body.
func (h *Handler) Register(c *gin.Context) {
	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("body", "request body must be a JSON object").WithCause(err))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, user.Public())
}

// Login handles POST /token with form-encoded username and password.
func (h *Handler) Login(c *gin.Context) {
	username, pw := c.PostForm("username"), c.PostForm("password")
	if appErr := validation.New().
		Required("username", username).
		Required("password", pw).
		Validate(); appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), username, pw)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	server.RespondOK(c, resp)
}

// Me handles GET /users/me.
func (h *Handler) Me(c *gin.Context) {
	user, err := CurrentUser(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, user.Public())
}

// DeleteMe handles DELETE /users/me.
func (h *Handler) DeleteMe(c *gin.Context) {
	user, err := CurrentUser(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if err := h.svc.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

// CurrentUser returns the user resolved by the auth middleware.
func CurrentUser(c *gin.Context) (*User, error) {
	user, err := authctx.GetOrError[*User](c.Request.Context())
	if err != nil {
		return nil, apperrors.Unauthorized("").WithCause(err)
	}
	return user, nil
}
