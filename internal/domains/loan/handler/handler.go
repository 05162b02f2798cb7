package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogModel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	membershipModel "library-backend/internal/domains/membership/model"
	"library-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new loan handler.
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// Borrow handles POST /api/v1/loans
func (h *Handler) Borrow(c *gin.Context) {
	var req model.BorrowRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	loan, err := h.service.Borrow(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, membershipModel.ErrMemberNotFound):
			response.Error(c, http.StatusNotFound, "Member not found", err.Error())
		case errors.Is(err, catalogModel.ErrBookNotFound):
			response.Error(c, http.StatusNotFound, "Book not found", err.Error())
		case catalogModel.IsOutOfStockError(err):
			response.Error(c, http.StatusConflict, "No copies available", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create loan", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Loan created successfully", loan)
}

// Return handles POST /api/v1/loans/:id/return
func (h *Handler) Return(c *gin.Context) {
	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid loan id", err.Error())
		return
	}

	// Body is optional; an empty body means "returned now".
	var req model.ReturnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
			return
		}
	}

	loan, err := h.service.Return(c.Request.Context(), loanID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrLoanNotFound):
			response.Error(c, http.StatusNotFound, "Loan not found", err.Error())
		case errors.Is(err, model.ErrLoanAlreadyReturned):
			response.Error(c, http.StatusConflict, "Loan already returned", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to return loan", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Loan returned successfully", loan)
}

// GetLoan handles GET /api/v1/loans/:id
func (h *Handler) GetLoan(c *gin.Context) {
	loanID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid loan id", err.Error())
		return
	}

	loan, err := h.service.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		if model.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Loan not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get loan", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Loan retrieved successfully", loan)
}

// ListForMember handles GET /api/v1/members/:id/loans
func (h *Handler) ListForMember(c *gin.Context) {
	memberID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid member id", err.Error())
		return
	}

	var req model.ListLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := h.service.ListForMember(c.Request.Context(), memberID, req)
	if err != nil {
		if membershipModel.IsNotFoundError(err) {
			response.Error(c, http.StatusNotFound, "Member not found", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to list loans", err.Error())
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Loans retrieved successfully", result.Items, &response.Meta{
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.TotalItems,
	})
}

// ListOverdue handles GET /api/v1/loans/overdue?as_of=2025-01-01
func (h *Handler) ListOverdue(c *gin.Context) {
	var req model.ListOverdueRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := h.service.ListOverdue(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list overdue loans", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Overdue loans retrieved successfully", result)
}
