package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/todoapi/errors"
	"github.com/kbukum/todoapi/logger"
	"github.com/kbukum/todoapi/server"
	"github.com/kbukum/todoapi/validation"
)

// Handler exposes the public /books routes.
type Handler struct {
	books *Catalog
	log   *logger.Logger
}

// NewHandler creates a Handler over books.
func NewHandler(books *Catalog, log *logger.Logger) *Handler {
	return &Handler{books: books, log: log.WithComponent("catalog")}
}

// RegisterRoutes mounts /books.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/books")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.GET("/:id/summary", h.Summary)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /books?limit=n.
func (h *Handler) List(c *gin.Context) {
	limit, err := validation.OptionalInt("limit", c.Query("limit"), 0)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	if appErr := validation.New().Min("limit", limit, 0).Validate(); appErr != nil {
		server.RespondWithError(c, appErr)
		return
	}
	server.RespondOK(c, h.books.List(limit))
}

// Get handles GET /books/:id.
func (h *Handler) Get(c *gin.Context) {
	b, ok := h.lookup(c)
	if !ok {
		return
	}
	server.RespondOK(c, b)
}

// Summary handles GET /books/:id/summary.
func (h *Handler) Summary(c *gin.Context) {
	b, ok := h.lookup(c)
	if !ok {
		return
	}
	server.RespondOK(c, b.Summary())
}

// Create handles POST /books.
func (h *Handler) Create(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	id := uuid.New()
	if in.ID != nil && *in.ID != uuid.Nil {
		id = *in.ID
	}
	b := in.book(id)
	if err := h.books.Add(b); err != nil {
		server.RespondWithError(c, apperrors.AlreadyExists("book").WithCause(err))
		return
	}
	h.log.WithContext(c.Request.Context()).Info("Book added", logger.Fields("book_id", id.String()))
	server.RespondCreated(c, b)
}

// Update handles PUT /books/:id. The path id wins over any id in the body.
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	b, err := h.books.Replace(id, in.book(id))
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	server.RespondOK(c, b)
}

// Delete handles DELETE /books/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.books.Delete(id); err != nil {
		respondCatalogError(c, err)
		return
	}
	server.RespondNoContent(c)
}

func (h *Handler) lookup(c *gin.Context) (Book, bool) {
	id, ok := pathID(c)
	if !ok {
		return Book{}, false
	}
	b, err := h.books.Get(id)
	if err != nil {
		respondCatalogError(c, err)
		return Book{}, false
	}
	return b, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := validation.ValidateUUID("book_id", c.Param("id"))
	if err != nil {
		server.RespondWithError(c, err)
		return uuid.Nil, false
	}
	return id, true
}

func bindInput(c *gin.Context) (BookInput, bool) {
	var in BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		server.RespondWithError(c, apperrors.InvalidInput("body", "request body must be a JSON object").WithCause(err))
		return BookInput{}, false
	}
	if err := validation.Validate(in); err != nil {
		server.RespondWithError(c, err)
		return BookInput{}, false
	}
	return in, true
}

func respondCatalogError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		server.RespondWithError(c, itemNotFound())
		return
	}
	server.RespondWithError(c, err)
}

func itemNotFound() *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeNotFound, "Item not found", http.StatusNotFound).
		WithHeader("X-Error", "Cannot find item with that ID")
}
