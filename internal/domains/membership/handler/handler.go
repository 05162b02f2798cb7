package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/membership/model"
	"library-backend/internal/domains/membership/service"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new membership handler.
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Register handles POST /api/v1/members
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterMemberRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	member, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "Email already registered", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to register member", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Member registered successfully", member)
}

// GetMember handles GET /api/v1/members/:id
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid member ID format", err.Error())
		return
	}

	member, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Member not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get member", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Member retrieved successfully", member)
}

// ListMembers handles GET /api/v1/members?page=1&limit=20
func (h *Handler) ListMembers(c *gin.Context) {
	var req model.ListMembersRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := h.service.ListMembers(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list members", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Members retrieved successfully", result.Items, &response.Meta{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.TotalItems,
	})
}
