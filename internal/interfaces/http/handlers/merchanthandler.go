package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lutrii-inc/lutrii/internal/application/merchant/usecases"
	"github.com/lutrii-inc/lutrii/internal/interfaces/http/middleware"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
	"github.com/lutrii-inc/lutrii/internal/shared/utils"
)

type MerchantHandler struct {
	applyUC        *usecases.ApplyForVerificationUseCase
	approveUC      *usecases.ApproveMerchantUseCase
	suspendUC      *usecases.SuspendMerchantUseCase
	updateInfoUC   *usecases.UpdateMerchantInfoUseCase
	premiumBadgeUC *usecases.SubscribePremiumBadgeUseCase
	submitReviewUC *usecases.SubmitReviewUseCase
	getUC          *usecases.GetMerchantUseCase
	listUC         *usecases.ListMerchantsUseCase
	listReviewsUC  *usecases.ListReviewsUseCase
	logger         logger.Interface
}

func NewMerchantHandler(
	applyUC *usecases.ApplyForVerificationUseCase,
	approveUC *usecases.ApproveMerchantUseCase,
	suspendUC *usecases.SuspendMerchantUseCase,
	updateInfoUC *usecases.UpdateMerchantInfoUseCase,
	premiumBadgeUC *usecases.SubscribePremiumBadgeUseCase,
	submitReviewUC *usecases.SubmitReviewUseCase,
	getUC *usecases.GetMerchantUseCase,
	listUC *usecases.ListMerchantsUseCase,
	listReviewsUC *usecases.ListReviewsUseCase,
) *MerchantHandler {
	return &MerchantHandler{
		applyUC:        applyUC,
		approveUC:      approveUC,
		suspendUC:      suspendUC,
		updateInfoUC:   updateInfoUC,
		premiumBadgeUC: premiumBadgeUC,
		submitReviewUC: submitReviewUC,
		getUC:          getUC,
		listUC:         listUC,
		listReviewsUC:  listReviewsUC,
		logger:         logger.NewLogger(),
	}
}

type ApplyForVerificationRequest struct {
	BusinessName string `json:"business_name" binding:"required,max=64"`
	WebhookURL   string `json:"webhook_url" binding:"required,max=128"`
	Category     string `json:"category" binding:"required,max=32"`
}

func (h *MerchantHandler) Apply(c *gin.Context) {
	var req ApplyForVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for merchant application", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.applyUC.Execute(c.Request.Context(), usecases.ApplyForVerificationCommand{
		Owner:        middleware.CallerAddress(c),
		BusinessName: req.BusinessName,
		WebhookURL:   req.WebhookURL,
		Category:     req.Category,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, result)
}

func (h *MerchantHandler) Get(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), c.Param("addr"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *MerchantHandler) List(c *gin.Context) {
	offset, limit := paginationParams(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListMerchantsQuery{
		Tier:   c.Query("tier"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

type ApproveMerchantRequest struct {
	Tier string `json:"tier" binding:"required,oneof=unverified verified suspended"`
}

func (h *MerchantHandler) Approve(c *gin.Context) {
	var req ApproveMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for merchant approval", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.approveUC.Execute(c.Request.Context(), usecases.ApproveMerchantCommand{
		MerchantAddress: c.Param("addr"),
		Tier:            req.Tier,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

type SuspendMerchantRequest struct {
	Reason string `json:"reason" binding:"required,max=256"`
}

func (h *MerchantHandler) Suspend(c *gin.Context) {
	var req SuspendMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for merchant suspension", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.suspendUC.Execute(c.Request.Context(), usecases.SuspendMerchantCommand{
		MerchantAddress: c.Param("addr"),
		Reason:          req.Reason,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

type UpdateMerchantInfoRequest struct {
	BusinessName *string `json:"business_name"`
	WebhookURL   *string `json:"webhook_url"`
	Category     *string `json:"category"`
}

func (h *MerchantHandler) UpdateInfo(c *gin.Context) {
	var req UpdateMerchantInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for merchant info update", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.updateInfoUC.Execute(c.Request.Context(), usecases.UpdateMerchantInfoCommand{
		MerchantAddress: c.Param("addr"),
		Caller:          middleware.CallerAddress(c),
		BusinessName:    req.BusinessName,
		WebhookURL:      req.WebhookURL,
		Category:        req.Category,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *MerchantHandler) SubscribePremiumBadge(c *gin.Context) {
	result, err := h.premiumBadgeUC.Execute(c.Request.Context(), usecases.SubscribePremiumBadgeCommand{
		MerchantAddress: c.Param("addr"),
		Caller:          middleware.CallerAddress(c),
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

type SubmitReviewRequest struct {
	Rating  uint8  `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,max=256"`
}

func (h *MerchantHandler) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for review submission", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.submitReviewUC.Execute(c.Request.Context(), usecases.SubmitReviewCommand{
		MerchantAddress: c.Param("addr"),
		Reviewer:        middleware.CallerAddress(c),
		Rating:          req.Rating,
		Comment:         req.Comment,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, result)
}

func (h *MerchantHandler) ListReviews(c *gin.Context) {
	offset, limit := paginationParams(c)

	result, err := h.listReviewsUC.Execute(c.Request.Context(), c.Param("addr"), offset, limit)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}
