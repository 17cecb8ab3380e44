package todo

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/todoapi/errors"
	"github.com/kbukum/todoapi/internal/identity"
	"github.com/kbukum/todoapi/server"
	"github.com/kbukum/todoapi/validation"
)

// Handler exposes the owner-scoped /todos routes.
type Handler struct {
	svc *Service
}

// NewHandler creates a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts /todos behind requireAuth.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	g := r.Group("/todos", requireAuth)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /todos.
func (h *Handler) List(c *gin.Context) {
	user, err := identity.CurrentUser(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	todos, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, todos)
}

// Get handles GET /todos/:id.
func (h *Handler) Get(c *gin.Context) {
	user, id, ok := ownerAndID(c)
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, t)
}

// Create handles POST /todos.
func (h *Handler) Create(c *gin.Context) {
	user, err := identity.CurrentUser(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	t, err := h.svc.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, t)
}

// Update handles PUT /todos/:id.
func (h *Handler) Update(c *gin.Context) {
	user, id, ok := ownerAndID(c)
	if !ok {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	t, err := h.svc.Update(c.Request.Context(), user.ID, id, in)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, t)
}

// Delete handles DELETE /todos/:id.
func (h *Handler) Delete(c *gin.Context) {
	user, id, ok := ownerAndID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

func ownerAndID(c *gin.Context) (*identity.User, int64, bool) {
	user, err := identity.CurrentUser(c)
	if err != nil {
		server.RespondWithError(c, err)
		return nil, 0, false
	}
	id, err := validation.ValidateID("todo_id", c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return nil, 0, false
	}
	return user, id, true
}

func bindInput(c *gin.Context) (Input, bool) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("body", "request body must be a JSON object").WithCause(err))
		return Input{}, false
	}
	return in, true
}
