package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/porikkha/porikkha-backend/internal/model"
	"github.com/porikkha/porikkha-backend/internal/repository"
	"github.com/porikkha/porikkha-backend/internal/response"
	"github.com/porikkha/porikkha-backend/internal/service"
	"github.com/porikkha/porikkha-backend/internal/validator"
)

// BillingHandler handles payment and subscription endpoints.
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// CreatePayment godoc
// POST /api/v1/payments
func (h *BillingHandler) CreatePayment(c *gin.Context) {
	var req model.CreatePaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	transaction, err := h.billingService.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTransaction) {
			response.Fail(c, http.StatusConflict, response.ErrDuplicateTransaction)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": transaction})
}

// GetPayment godoc
// GET /api/v1/payments/:transaction_id
func (h *BillingHandler) GetPayment(c *gin.Context) {
	transaction, err := h.billingService.GetPayment(c.Request.Context(), c.Param("transaction_id"))
	if err != nil {
		if errors.Is(err, service.ErrTransactionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": transaction})
}

// UpdatePaymentStatus godoc
// POST /api/v1/payments/:transaction_id/status
func (h *BillingHandler) UpdatePaymentStatus(c *gin.Context) {
	var req model.UpdatePaymentStatusRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	transaction, err := h.billingService.AdvanceStatus(c.Request.Context(),
		c.Param("transaction_id"), model.PaymentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrIllegalStatusTransition):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidTransition)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": transaction})
}

// GetSubscription godoc
// GET /api/v1/users/:user_id/subscription
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	subscription, err := h.billingService.GetSubscription(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"subscription": subscription})
}

// ListUserPayments godoc
// GET /api/v1/users/:user_id/payments
func (h *BillingHandler) ListUserPayments(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	transactions, err := h.billingService.ListUserPayments(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if transactions == nil {
		transactions = []model.PaymentTransaction{}
	}

	response.Success(c, http.StatusOK, gin.H{"transactions": transactions})
}
