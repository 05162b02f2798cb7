package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/catalog/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new catalog handler.
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// CreateBook handles POST /api/v1/books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBookAlreadyExists):
			response.Error(c, http.StatusConflict, "Book already exists", err.Error())
		case errors.Is(err, model.ErrInvalidPayload):
			response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create book", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Book created successfully", book)
}

// GetBook handles GET /api/v1/books/:id
func (h *Handler) GetBook(c *gin.Context) {
	id := c.Param("id")

	book, err := h.service.GetBook(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get book", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Book retrieved successfully", book)
}

// ListBooks handles GET /api/v1/books?page=1&limit=20&search=&genre=
func (h *Handler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := h.service.ListBooks(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list books", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Books retrieved successfully", result.Items, &response.Meta{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.TotalItems,
	})
}

// GetAvailability handles GET /api/v1/books/:id/availability
func (h *Handler) GetAvailability(c *gin.Context) {
	id := c.Param("id")

	availability, err := h.service.GetAvailability(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get availability", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Availability retrieved successfully", availability)
}
