// Package handlers contains the gin HTTP handlers. They translate requests
// into use case commands; the caller identity always comes from the verified
// token, never from the request body.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lutrii-inc/lutrii/internal/application/subscription/usecases"
	"github.com/lutrii-inc/lutrii/internal/interfaces/http/middleware"
	"github.com/lutrii-inc/lutrii/internal/shared/constants"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
	"github.com/lutrii-inc/lutrii/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC       *usecases.CreateSubscriptionUseCase
	getUC          *usecases.GetSubscriptionUseCase
	listUC         *usecases.ListSubscriptionsUseCase
	pauseUC        *usecases.PauseSubscriptionUseCase
	resumeUC       *usecases.ResumeSubscriptionUseCase
	cancelUC       *usecases.CancelSubscriptionUseCase
	closeUC        *usecases.CloseSubscriptionUseCase
	updateLimitsUC *usecases.UpdateLimitsUseCase
	updateAmountUC *usecases.UpdateAmountUseCase
	executeUC      *usecases.ExecutePaymentUseCase
	logger         logger.Interface
}

func NewSubscriptionHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	getUC *usecases.GetSubscriptionUseCase,
	listUC *usecases.ListSubscriptionsUseCase,
	pauseUC *usecases.PauseSubscriptionUseCase,
	resumeUC *usecases.ResumeSubscriptionUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	closeUC *usecases.CloseSubscriptionUseCase,
	updateLimitsUC *usecases.UpdateLimitsUseCase,
	updateAmountUC *usecases.UpdateAmountUseCase,
	executeUC *usecases.ExecutePaymentUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:       createUC,
		getUC:          getUC,
		listUC:         listUC,
		pauseUC:        pauseUC,
		resumeUC:       resumeUC,
		cancelUC:       cancelUC,
		closeUC:        closeUC,
		updateLimitsUC: updateLimitsUC,
		updateAmountUC: updateAmountUC,
		executeUC:      executeUC,
		logger:         logger.NewLogger(),
	}
}

type CreateSubscriptionRequest struct {
	MerchantAddress   string `json:"merchant_address" binding:"required"`
	Amount            uint64 `json:"amount" binding:"required,gt=0"`
	FrequencySeconds  int64  `json:"frequency_seconds" binding:"required,gt=0"`
	MaxPerTransaction uint64 `json:"max_per_transaction" binding:"required,gt=0"`
	LifetimeCap       uint64 `json:"lifetime_cap" binding:"required,gt=0"`
	MerchantName      string `json:"merchant_name" binding:"required,max=32"`
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	cmd := usecases.CreateSubscriptionCommand{
		Payer:             middleware.CallerAddress(c),
		MerchantAddress:   req.MerchantAddress,
		Amount:            req.Amount,
		FrequencySeconds:  req.FrequencySeconds,
		MaxPerTransaction: req.MaxPerTransaction,
		LifetimeCap:       req.LifetimeCap,
		MerchantName:      req.MerchantName,
	}

	result, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, result)
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), c.Param("addr"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	offset, limit := paginationParams(c)

	q := usecases.ListSubscriptionsQuery{
		Payer:    c.Query("payer"),
		Merchant: c.Query("merchant"),
		Offset:   offset,
		Limit:    limit,
	}
	if q.Payer == "" && q.Merchant == "" {
		q.Payer = middleware.CallerAddress(c)
	}

	result, err := h.listUC.Execute(c.Request.Context(), q)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *SubscriptionHandler) Pause(c *gin.Context) {
	result, err := h.pauseUC.Execute(c.Request.Context(), usecases.PauseSubscriptionCommand{
		SubscriptionAddress: c.Param("addr"),
		Caller:              middleware.CallerAddress(c),
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *SubscriptionHandler) Resume(c *gin.Context) {
	result, err := h.resumeUC.Execute(c.Request.Context(), usecases.ResumeSubscriptionCommand{
		SubscriptionAddress: c.Param("addr"),
		Caller:              middleware.CallerAddress(c),
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		SubscriptionAddress: c.Param("addr"),
		Caller:              middleware.CallerAddress(c),
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *SubscriptionHandler) Close(c *gin.Context) {
	err := h.closeUC.Execute(c.Request.Context(), usecases.CloseSubscriptionCommand{
		SubscriptionAddress: c.Param("addr"),
		Caller:              middleware.CallerAddress(c),
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type UpdateLimitsRequest struct {
	MaxPerTransaction *uint64 `json:"max_per_transaction"`
	LifetimeCap       *uint64 `json:"lifetime_cap"`
}

func (h *SubscriptionHandler) UpdateLimits(c *gin.Context) {
	var req UpdateLimitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update limits", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.updateLimitsUC.Execute(c.Request.Context(), usecases.UpdateLimitsCommand{
		SubscriptionAddress: c.Param("addr"),
		Caller:              middleware.CallerAddress(c),
		MaxPerTransaction:   req.MaxPerTransaction,
		LifetimeCap:         req.LifetimeCap,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

type UpdateAmountRequest struct {
	Amount uint64 `json:"amount" binding:"required,gt=0"`
}

func (h *SubscriptionHandler) UpdateAmount(c *gin.Context) {
	var req UpdateAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update amount", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.updateAmountUC.Execute(c.Request.Context(), usecases.UpdateAmountCommand{
		SubscriptionAddress: c.Param("addr"),
		Caller:              middleware.CallerAddress(c),
		Amount:              req.Amount,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

// Execute runs a due payment. Any authenticated caller may trigger it; the
// engine's own guards decide whether the payment goes through.
func (h *SubscriptionHandler) Execute(c *gin.Context) {
	result, err := h.executeUC.Execute(c.Request.Context(), usecases.ExecutePaymentCommand{
		SubscriptionAddress: c.Param("addr"),
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func paginationParams(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil || page < 1 {
		page = constants.DefaultPage
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || size < 1 {
		size = constants.DefaultPageSize
	}
	if size > constants.MaxPageSize {
		size = constants.MaxPageSize
	}
	return (page - 1) * size, size
}
